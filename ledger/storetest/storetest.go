/*
Package storetest is the shared contract suite for ledger.Store.

PURPOSE:
  Guarantees behavioral parity between the in-memory store and the
  SQLite-backed store: both implementations are exercised by the identical
  suite, so the fast fake used in engine tests provably behaves like the
  real thing. Store implementations call Run from their own _test.go.

USAGE:
    func TestMemoryStoreContract(t *testing.T) {
        storetest.Run(t, func(t *testing.T) ledger.Store {
            return store.NewMemory()
        })
    }
*/
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/inventory-ledger/ledger"
)

// Factory returns a fresh, empty store for one test.
type Factory func(t *testing.T) ledger.Store

// Run executes the full contract suite against the given implementation.
func Run(t *testing.T, newStore Factory) {
	t.Run("AppendAndGetInventoryEvents", func(t *testing.T) { testAppendAndGet(t, newStore(t)) })
	t.Run("MissingIDsSilentlyOmitted", func(t *testing.T) { testMissingIDs(t, newStore(t)) })
	t.Run("InventoryEventsByProduct", func(t *testing.T) { testByProduct(t, newStore(t)) })
	t.Run("ByProductTriState", func(t *testing.T) { testByProductTriState(t, newStore(t)) })
	t.Run("SaleEventsByRangeOrdered", func(t *testing.T) { testSaleRangeOrdered(t, newStore(t)) })
	t.Run("SaleRangeInclusiveAtDayGranularity", func(t *testing.T) { testSaleRangeInclusive(t, newStore(t)) })
	t.Run("EmptyAppendsAreNoops", func(t *testing.T) { testEmptyAppends(t, newStore(t)) })
}

func inventoryEvent(t *testing.T, productID ledger.ProductID, delta int, at time.Time) ledger.InventoryEvent {
	t.Helper()
	ev, err := ledger.NewInventoryEventAt(productID, delta, at)
	require.NoError(t, err)
	return ev
}

func saleEvent(productID ledger.ProductID, total string, at time.Time) ledger.SaleEvent {
	return ledger.NewSaleEventAt(productID, 1, decimal.RequireFromString(total), at)
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 12, 0, 0, 0, time.UTC)
}

func testAppendAndGet(t *testing.T, s ledger.Store) {
	ctx := context.Background()

	ev1 := inventoryEvent(t, "prod-1", +10, day(1))
	ev2 := inventoryEvent(t, "prod-2", -3, day(2))
	require.NoError(t, s.AppendInventoryEvents(ctx, []ledger.InventoryEvent{ev1, ev2}))

	got, err := s.InventoryEvents(ctx, []ledger.EventID{ev1.ID, ev2.ID})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	byID := map[ledger.EventID]ledger.InventoryEvent{}
	for _, ev := range got {
		byID[ev.ID] = ev
	}
	assert.Equal(t, +10, byID[ev1.ID].QuantityDelta)
	assert.Equal(t, ledger.ProductID("prod-1"), byID[ev1.ID].ProductID)
	assert.Equal(t, -3, byID[ev2.ID].QuantityDelta)
}

func testMissingIDs(t *testing.T, s ledger.Store) {
	ctx := context.Background()

	ev := inventoryEvent(t, "prod-1", +5, day(1))
	require.NoError(t, s.AppendInventoryEvents(ctx, []ledger.InventoryEvent{ev}))

	// Unknown ids are omitted from the result, never an error.
	got, err := s.InventoryEvents(ctx, []ledger.EventID{ev.ID, "no-such-event"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.InventoryEvents(ctx, []ledger.EventID{"no-such-event"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func testByProduct(t *testing.T, s ledger.Store) {
	ctx := context.Background()

	require.NoError(t, s.AppendInventoryEvents(ctx, []ledger.InventoryEvent{
		inventoryEvent(t, "prod-1", +10, day(1)),
		inventoryEvent(t, "prod-1", -4, day(2)),
		inventoryEvent(t, "prod-2", +7, day(3)),
		inventoryEvent(t, "prod-3", +1, day(4)),
	}))

	got, err := s.InventoryEventsByProduct(ctx, []ledger.ProductID{"prod-1", "prod-2"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	for _, ev := range got {
		assert.NotEqual(t, ledger.ProductID("prod-3"), ev.ProductID)
	}
}

func testByProductTriState(t *testing.T, s ledger.Store) {
	ctx := context.Background()

	require.NoError(t, s.AppendInventoryEvents(ctx, []ledger.InventoryEvent{
		inventoryEvent(t, "prod-1", +10, day(1)),
		inventoryEvent(t, "prod-2", +7, day(2)),
	}))

	// nil: the whole ledger
	all, err := s.InventoryEventsByProduct(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// empty non-nil: nothing
	none, err := s.InventoryEventsByProduct(ctx, []ledger.ProductID{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testSaleRangeOrdered(t *testing.T, s ledger.Store) {
	ctx := context.Background()

	// Appended out of chronological order on purpose.
	require.NoError(t, s.AppendSaleEvents(ctx, []ledger.SaleEvent{
		saleEvent("prod-1", "30", day(3)),
		saleEvent("prod-1", "10", day(1)),
		saleEvent("prod-2", "20", day(2)),
	}))

	got, err := s.SaleEventsByRange(ctx, day(1), day(3))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].CreatedAt.Before(got[1].CreatedAt))
	assert.True(t, got[1].CreatedAt.Before(got[2].CreatedAt))
	assert.Equal(t, "10", got[0].TotalPrice.String())
	assert.Equal(t, "30", got[2].TotalPrice.String())
}

func testSaleRangeInclusive(t *testing.T, s ledger.Store) {
	ctx := context.Background()

	late := time.Date(2025, time.March, 5, 23, 59, 0, 0, time.UTC)
	early := time.Date(2025, time.March, 3, 0, 1, 0, 0, time.UTC)
	outside := time.Date(2025, time.March, 6, 0, 1, 0, 0, time.UTC)

	require.NoError(t, s.AppendSaleEvents(ctx, []ledger.SaleEvent{
		saleEvent("prod-1", "1", early),
		saleEvent("prod-1", "2", late),
		saleEvent("prod-1", "3", outside),
	}))

	// Both endpoints are inclusive at day granularity: a sale at 23:59 on
	// the end date is in range, the next morning is not.
	got, err := s.SaleEventsByRange(ctx, day(3), day(5))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].TotalPrice.String())
	assert.Equal(t, "2", got[1].TotalPrice.String())
}

func testEmptyAppends(t *testing.T, s ledger.Store) {
	ctx := context.Background()

	require.NoError(t, s.AppendInventoryEvents(ctx, nil))
	require.NoError(t, s.AppendSaleEvents(ctx, nil))

	all, err := s.InventoryEventsByProduct(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}
