/*
Package sales computes revenue aggregates from the sale-event ledger.

PURPOSE:
  The read side of the sales ledger. Two engines live here:

  AGGREGATION (engine.go):
    Revenue bucketed by a caller-chosen granularity, truncating each event's
    timestamp to its containing UTC calendar period. Buckets exist only for
    periods with at least one matching sale (no zero-filled gaps) and are
    returned ordered by period start.

  COMPARISON (compare.go):
    Two equal-duration windows cut into fixed-width sub-windows and paired
    positionally. Empty sub-windows ARE emitted with zero totals, because
    comparison output must be two equal-length series.

  The month-handling divergence between the two (calendar month vs flat 28
  days) is intentional and documented in ledger/bucket.go.

FILTERING:
  Both engines take a tri-state ledger.ProductSet. Category filtering is an
  anti-corruption lookup: the engine resolves a category to its member
  product ids through the narrow CategoryResolver interface and never sees
  the catalog's internal model.

SEE ALSO:
  - ledger/bucket.go: Truncation, steps and labels
  - catalog: The CategoryResolver implementation
*/
package sales

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/inventory-ledger/ledger"
)

// CategoryResolver resolves a category to its member product ids. An unknown
// or empty category resolves to an empty (non-nil) set, not an error.
type CategoryResolver interface {
	CategoryMembers(ctx context.Context, categoryID string) (ledger.ProductSet, error)
}

// Engine folds sale events into time-bucketed aggregates. It never writes.
type Engine struct {
	Store   ledger.SaleStore
	Catalog CategoryResolver
}

func NewEngine(store ledger.SaleStore, catalog CategoryResolver) *Engine {
	return &Engine{Store: store, Catalog: catalog}
}

// =============================================================================
// AGGREGATION - Calendar-truncated revenue buckets
// =============================================================================

// SalesByPeriod sums TotalPrice per UTC calendar period over [start, end].
// A zero end defaults to start (single-day window). The filter is tri-state:
// nil includes every product, an explicit empty set includes none.
func (e *Engine) SalesByPeriod(ctx context.Context, period ledger.TimePeriod, start, end time.Time, filter ledger.ProductSet) ([]ledger.SalesBucket, error) {
	if _, err := ledger.ParseTimePeriod(string(period)); err != nil {
		return nil, err
	}
	if end.IsZero() {
		end = start
	}

	events, err := e.Store.SaleEventsByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	totals := make(map[time.Time]decimal.Decimal)
	for _, ev := range events {
		if !filter.Match(ev.ProductID) {
			continue
		}
		key := period.Truncate(ev.CreatedAt)
		totals[key] = totals[key].Add(ev.TotalPrice)
	}

	buckets := make([]ledger.SalesBucket, 0, len(totals))
	for at, total := range totals {
		buckets = append(buckets, ledger.SalesBucket{PeriodStart: at, Total: total})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].PeriodStart.Before(buckets[j].PeriodStart)
	})
	return buckets, nil
}

// SalesBySKU restricts SalesByPeriod to a single product.
func (e *Engine) SalesBySKU(ctx context.Context, period ledger.TimePeriod, start, end time.Time, skuID ledger.ProductID) ([]ledger.SalesBucket, error) {
	return e.SalesByPeriod(ctx, period, start, end, ledger.NewProductSet(skuID))
}

// SalesByCategory restricts SalesByPeriod to a category's member products.
// A category with zero members yields an empty bucket list, not an error.
func (e *Engine) SalesByCategory(ctx context.Context, period ledger.TimePeriod, start, end time.Time, categoryID string) ([]ledger.SalesBucket, error) {
	members, err := e.CategoryFilter(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return e.SalesByPeriod(ctx, period, start, end, members)
}

// =============================================================================
// LISTING - Chronological sale events for a range
// =============================================================================

// SalesBetween returns the matching sale events for [start, end] in
// chronological order. Same defaulting and tri-state filter rules as
// SalesByPeriod.
func (e *Engine) SalesBetween(ctx context.Context, start, end time.Time, filter ledger.ProductSet) ([]ledger.SaleEvent, error) {
	if end.IsZero() {
		end = start
	}

	events, err := e.Store.SaleEventsByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	result := make([]ledger.SaleEvent, 0, len(events))
	for _, ev := range events {
		if filter.Match(ev.ProductID) {
			result = append(result, ev)
		}
	}
	return result, nil
}

// CategoryFilter resolves a category id to an explicit product filter.
// The result is always non-nil: an unknown category filters to nothing
// rather than to everything.
func (e *Engine) CategoryFilter(ctx context.Context, categoryID string) (ledger.ProductSet, error) {
	members, err := e.Catalog.CategoryMembers(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = ledger.NewProductSet()
	}
	return members, nil
}
