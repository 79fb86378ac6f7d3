package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/inventory-ledger/catalog"
	"github.com/warp/inventory-ledger/ledger"
	"github.com/warp/inventory-ledger/ledger/storetest"
	"github.com/warp/inventory-ledger/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// The SQLite store must behave exactly like the in-memory store; both run
// the same contract suite.
func TestSQLiteStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) ledger.Store {
		return newTestStore(t)
	})
}

// =============================================================================
// ROUND-TRIP FIDELITY
// =============================================================================

func TestSQLite_SaleEventRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	at := time.Date(2025, time.March, 2, 13, 45, 10, 0, time.UTC)
	ev := ledger.NewSaleEventAt("prod-1", 3, decimal.RequireFromString("12.37"), at)
	require.NoError(t, s.AppendSaleEvents(ctx, []ledger.SaleEvent{ev}))

	got, err := s.SaleEventsByRange(ctx, at, at)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, ev.ID, got[0].ID)
	assert.Equal(t, ev.ProductID, got[0].ProductID)
	assert.Equal(t, 3, got[0].Quantity)
	assert.True(t, ev.TotalPrice.Equal(got[0].TotalPrice), "decimal survives the TEXT column exactly")
	assert.True(t, ev.CreatedAt.Equal(got[0].CreatedAt))
}

// =============================================================================
// CATALOG CRUD
// =============================================================================

func TestSQLite_ProductCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := catalog.NewProduct("Espresso Beans", "cat-coffee", "1kg bag", decimal.RequireFromString("18.50"))
	require.NoError(t, s.CreateProduct(ctx, p))

	got, err := s.Product(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Espresso Beans", got.Name)
	assert.True(t, got.Price.Equal(p.Price))

	got.Price = decimal.RequireFromString("19.99")
	require.NoError(t, s.UpdateProduct(ctx, *got))

	updated, err := s.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "19.99", updated.Price.String())

	require.NoError(t, s.DeleteProduct(ctx, p.ID))
	gone, err := s.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "missing product is nil, not an error")

	assert.ErrorIs(t, s.DeleteProduct(ctx, p.ID), catalog.ErrNotFound)
	assert.ErrorIs(t, s.UpdateProduct(ctx, p), catalog.ErrNotFound)
}

func TestSQLite_ProductsByCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := catalog.NewCategory("coffee", "")
	require.NoError(t, s.CreateCategory(ctx, c))

	inCat := catalog.NewProduct("Beans", c.ID, "", decimal.RequireFromString("10"))
	outCat := catalog.NewProduct("Tea", "other", "", decimal.RequireFromString("5"))
	require.NoError(t, s.CreateProduct(ctx, inCat))
	require.NoError(t, s.CreateProduct(ctx, outCat))

	members, err := s.ProductsByCategory(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, inCat.ID, members[0].ID)

	// Unknown category: empty, not an error.
	none, err := s.ProductsByCategory(ctx, "no-such-category")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLite_Categories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := catalog.NewCategory("bakery", "bread and pastry")
	b := catalog.NewCategory("coffee", "")
	require.NoError(t, s.CreateCategory(ctx, a))
	require.NoError(t, s.CreateCategory(ctx, b))

	all, err := s.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "bakery", all[0].Name, "ordered by name")

	got, err := s.Category(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bread and pastry", got.Description)

	missing, err := s.Category(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// =============================================================================
// ATOMIC BATCHES
// =============================================================================

func TestSQLite_BatchAppendAtomic(t *testing.T) {
	// A batch containing a duplicate primary key fails as a whole: the
	// valid leading events must not become visible.

	s := newTestStore(t)
	ctx := context.Background()

	ok, err := ledger.NewInventoryEventAt("P", +1, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, s.AppendInventoryEvents(ctx, []ledger.InventoryEvent{ok}))

	fresh, err := ledger.NewInventoryEventAt("P", +2, time.Now().UTC())
	require.NoError(t, err)
	dup := ok // same id as an already-stored event

	err = s.AppendInventoryEvents(ctx, []ledger.InventoryEvent{fresh, dup})
	require.Error(t, err)

	events, err := s.InventoryEventsByProduct(ctx, []ledger.ProductID{"P"})
	require.NoError(t, err)
	assert.Len(t, events, 1, "failed batch leaves no partial state")
}
