package catalog

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/warp/inventory-ledger/ledger"
)

// ErrNotFound is returned by single-entity lookups and mutations that name
// a missing product or category. Collection queries never return it; they
// omit missing entries instead.
var ErrNotFound = errors.New("catalog: not found")

// =============================================================================
// STORE - Catalog persistence (plain CRUD, unlike the append-only ledger)
// =============================================================================

type Store interface {
	CreateProduct(ctx context.Context, p Product) error
	Product(ctx context.Context, id ledger.ProductID) (*Product, error)
	Products(ctx context.Context) ([]Product, error)
	UpdateProduct(ctx context.Context, p Product) error
	DeleteProduct(ctx context.Context, id ledger.ProductID) error

	CreateCategory(ctx context.Context, c Category) error
	Category(ctx context.Context, id string) (*Category, error)
	Categories(ctx context.Context) ([]Category, error)

	// ProductsByCategory returns the category's member products. An unknown
	// or empty category yields an empty list, not an error.
	ProductsByCategory(ctx context.Context, categoryID string) ([]Product, error)
}

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu         sync.RWMutex
	products   map[ledger.ProductID]Product
	categories map[string]Category
}

func NewMemory() *Memory {
	return &Memory{
		products:   make(map[ledger.ProductID]Product),
		categories: make(map[string]Category),
	}
}

func (m *Memory) CreateProduct(_ context.Context, p Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *Memory) Product(_ context.Context, id ledger.ProductID) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *Memory) Products(_ context.Context) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *Memory) UpdateProduct(_ context.Context, p Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return ErrNotFound
	}
	m.products[p.ID] = p
	return nil
}

func (m *Memory) DeleteProduct(_ context.Context, id ledger.ProductID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *Memory) CreateCategory(_ context.Context, c Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[c.ID] = c
	return nil
}

func (m *Memory) Category(_ context.Context, id string) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *Memory) Categories(_ context.Context) ([]Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]Category, 0, len(m.categories))
	for _, c := range m.categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *Memory) ProductsByCategory(_ context.Context, categoryID string) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []Product
	for _, p := range m.products {
		if p.CategoryID == categoryID && categoryID != "" {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
