// Package store provides the in-memory ledger.Store implementation.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/inventory-ledger/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory holds events in append-only slices guarded by a RWMutex. Reads copy,
// so a returned slice is a consistent snapshot even under concurrent appends.
type Memory struct {
	mu        sync.RWMutex
	inventory []ledger.InventoryEvent
	sales     []ledger.SaleEvent
}

func NewMemory() *Memory {
	return &Memory{}
}

// AppendInventoryEvents adds a batch under one lock hold, so readers see
// either the whole batch or none of it.
func (m *Memory) AppendInventoryEvents(_ context.Context, events []ledger.InventoryEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inventory = append(m.inventory, events...)
	return nil
}

// InventoryEvents returns events matching the given ids; missing ids are
// silently omitted.
func (m *Memory) InventoryEvents(_ context.Context, ids []ledger.EventID) ([]ledger.InventoryEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	want := make(map[ledger.EventID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	var result []ledger.InventoryEvent
	for _, ev := range m.inventory {
		if _, ok := want[ev.ID]; ok {
			result = append(result, ev)
		}
	}
	return result, nil
}

// InventoryEventsByProduct returns events for the given products, unordered.
// A nil slice means the whole ledger; an empty non-nil slice means nothing.
func (m *Memory) InventoryEventsByProduct(_ context.Context, productIDs []ledger.ProductID) ([]ledger.InventoryEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if productIDs == nil {
		result := make([]ledger.InventoryEvent, len(m.inventory))
		copy(result, m.inventory)
		return result, nil
	}

	want := make(map[ledger.ProductID]struct{}, len(productIDs))
	for _, id := range productIDs {
		want[id] = struct{}{}
	}

	var result []ledger.InventoryEvent
	for _, ev := range m.inventory {
		if _, ok := want[ev.ProductID]; ok {
			result = append(result, ev)
		}
	}
	return result, nil
}

// AppendSaleEvents adds a batch under one lock hold.
func (m *Memory) AppendSaleEvents(_ context.Context, events []ledger.SaleEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales = append(m.sales, events...)
	return nil
}

// SaleEventsByRange returns sales in [start, end] inclusive at day
// granularity, ordered by CreatedAt ascending.
func (m *Memory) SaleEventsByRange(_ context.Context, start, end time.Time) ([]ledger.SaleEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	from, to := ledger.DayRange(start, end)

	var result []ledger.SaleEvent
	for _, ev := range m.sales {
		if !ev.CreatedAt.Before(from) && ev.CreatedAt.Before(to) {
			result = append(result, ev)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
