/*
Package inventory answers "what is on hand" questions by folding events.

PURPOSE:
  The read side of the inventory ledger. Current quantities are never
  stored; every query re-folds the relevant events into a per-product sum.
  This trades read-time work for the absence of a whole class of
  update-anomaly bugs (lost updates, stale counters). Any future optimized
  path (materialized view, incremental counter) must be provably equivalent
  to the fold implemented here.

KEY INVARIANT:
  Addition is commutative, so the order in which events are folded never
  affects the result. Only the final sum matters.

SEE ALSO:
  - ledger/store.go: Event retrieval contract
  - sales: The revenue-side fold engines
*/
package inventory

import (
	"context"

	"github.com/warp/inventory-ledger/ledger"
)

// Engine folds inventory events into derived views. It never writes.
type Engine struct {
	Store ledger.InventoryStore
}

func NewEngine(store ledger.InventoryStore) *Engine {
	return &Engine{Store: store}
}

// QuantityForProducts returns the current quantity per product, defined as
// the sum of QuantityDelta over all of the product's events. Products with
// no events are omitted, not reported as zero: callers distinguish "no data"
// from "confirmed zero stock". A nil productIDs slice folds the whole
// ledger (the full current-inventory listing).
func (e *Engine) QuantityForProducts(ctx context.Context, productIDs []ledger.ProductID) (map[ledger.ProductID]int, error) {
	events, err := e.Store.InventoryEventsByProduct(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	return fold(events), nil
}

// LowStock folds the whole ledger and keeps products whose summed delta is
// at or below the threshold. The threshold is inclusive: a product with
// net-zero movement is a valid member when threshold >= 0.
//
// This scans every inventory event. At scale it is the first candidate for
// an incremental materialized view, but the full recompute is the
// trivially-correct baseline any optimization must match.
func (e *Engine) LowStock(ctx context.Context, threshold int) (map[ledger.ProductID]int, error) {
	events, err := e.Store.InventoryEventsByProduct(ctx, nil)
	if err != nil {
		return nil, err
	}

	totals := fold(events)
	for id, qty := range totals {
		if qty > threshold {
			delete(totals, id)
		}
	}
	return totals, nil
}

// Quantity returns the current quantity for one product. The second return
// is false when the product has no events at all.
func (e *Engine) Quantity(ctx context.Context, productID ledger.ProductID) (int, bool, error) {
	totals, err := e.QuantityForProducts(ctx, []ledger.ProductID{productID})
	if err != nil {
		return 0, false, err
	}
	qty, ok := totals[productID]
	return qty, ok, nil
}

func fold(events []ledger.InventoryEvent) map[ledger.ProductID]int {
	totals := make(map[ledger.ProductID]int)
	for _, ev := range events {
		totals[ev.ProductID] += ev.QuantityDelta
	}
	return totals
}
