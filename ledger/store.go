/*
store.go - Persistence interfaces for the event ledger

PURPOSE:
  Defines the contract between the derived-view engines and the database.
  The Store handles persistence while maintaining append-only semantics.
  Two implementations exist and are held to behavioral parity by the shared
  contract suite in ledger/storetest.

APPEND-ONLY CONTRACT:
  - AppendInventoryEvents / AppendSaleEvents are the ONLY write operations
  - NO Update() or Delete() methods exist
  - Batches are atomic: all events in a call become visible or none do

READ CONTRACT:
  - Missing ids are silently omitted, never an error
  - InventoryEventsByProduct is tri-state on its argument: nil means the
    whole ledger, an empty non-nil slice means nothing, a populated slice
    means the union over those products
  - Inventory reads are unordered (folds are sums; order cannot matter)
  - SaleEventsByRange IS ordered by CreatedAt ascending: sales listings
    are presented to users chronologically, so ordering is a contract here

IMPLEMENTATIONS:
  - ledger/store/memory.go: In-memory (testing/dev)
  - store/sqlite/sqlite.go: SQLite

SEE ALSO:
  - storetest/storetest.go: Contract suite run against both implementations
*/
package ledger

import (
	"context"
	"time"
)

// =============================================================================
// STORE - Append-only event persistence
// =============================================================================

// InventoryStore persists inventory events.
type InventoryStore interface {
	// AppendInventoryEvents persists a batch atomically. Events are already
	// validated (non-zero deltas) at construction; the store does not
	// re-check them.
	AppendInventoryEvents(ctx context.Context, events []InventoryEvent) error

	// InventoryEvents returns events matching the given ids. Missing ids
	// are silently omitted.
	InventoryEvents(ctx context.Context, ids []EventID) ([]InventoryEvent, error)

	// InventoryEventsByProduct returns all events for any of the given
	// products, unordered. A nil slice means every event in the ledger;
	// an empty non-nil slice means none.
	InventoryEventsByProduct(ctx context.Context, productIDs []ProductID) ([]InventoryEvent, error)
}

// SaleStore persists sale events.
type SaleStore interface {
	// AppendSaleEvents persists a batch atomically.
	AppendSaleEvents(ctx context.Context, events []SaleEvent) error

	// SaleEventsByRange returns sale events with CreatedAt inside the
	// range, inclusive of both endpoints at day granularity, ordered by
	// CreatedAt ascending.
	SaleEventsByRange(ctx context.Context, start, end time.Time) ([]SaleEvent, error)
}

// Store is the full ledger persistence contract.
type Store interface {
	InventoryStore
	SaleStore
}

// =============================================================================
// DAY-GRANULARITY RANGE
// =============================================================================

// DayRange widens [start, end] to whole UTC days and returns the half-open
// interval [from, to) that SaleEventsByRange implementations query. Both
// endpoints are inclusive at day granularity: an event at 23:59 on the end
// date is in range.
func DayRange(start, end time.Time) (from, to time.Time) {
	from = startOfDay(start.UTC())
	to = startOfDay(end.UTC()).AddDate(0, 0, 1)
	return from, to
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
