/*
Package ledger provides the core event-sourced inventory and sales ledger.

PURPOSE:
  This package contains the domain types and storage contracts for tracking
  retail inventory as an append-only log of signed quantity deltas, and
  sales as an append-only log of transaction facts. Current stock levels
  and revenue aggregates are never stored; they are derived on demand by
  folding over the events.

KEY CONCEPTS IN THIS FILE (types.go):
  - InventoryEvent: An immutable signed quantity change for a product
  - SaleEvent: An immutable record of a completed sale
  - InventoryItem: A read-time projection (product + current quantity)
  - SalesBucket: A read-time projection (period start + revenue sum)
  - ProductSet: A tri-state product filter (nil / empty / populated)

DESIGN PRINCIPLES:
  1. Immutability: Events are appended once and never updated or deleted
  2. Precision: Uses decimal.Decimal so revenue sums are exact
  3. Commutativity: Quantity folds are sums, so apply order never matters
  4. Derivation: Views are recomputed from events on every read, never cached

USAGE:
  ev, err := ledger.NewInventoryEvent("prod-1", +10)
  if err != nil { ... }
  store.AppendInventoryEvents(ctx, []ledger.InventoryEvent{ev})

SEE ALSO:
  - factory.go: Event construction (identity, timestamps, validation)
  - store.go: Persistence interfaces
  - bucket.go: Time-period truncation and labels
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// EventID uniquely identifies a ledger event. Opaque, never reused.
type EventID string

// ProductID references a catalog product. The ledger does not check that the
// product exists; referential integrity is the catalog's concern.
type ProductID string

// =============================================================================
// INVENTORY EVENT - Immutable signed quantity change
// =============================================================================

// InventoryEvent records a single change to a product's stock level.
// The current quantity for a product is the sum of QuantityDelta over all of
// its events, in any order. There is no zero floor: a negative derived
// quantity is a valid (if alarming) outcome, not an error.
type InventoryEvent struct {
	ID            EventID
	ProductID     ProductID
	QuantityDelta int       // never zero; enforced at construction
	CreatedAt     time.Time // UTC, assigned at construction
}

// =============================================================================
// SALE EVENT - Immutable transaction fact
// =============================================================================

// SaleEvent records a completed sale. Quantity and TotalPrice are historical
// facts captured at sale time; they are never re-derived from the catalog,
// so later price changes do not rewrite history.
type SaleEvent struct {
	ID         EventID
	ProductID  ProductID
	Quantity   int
	TotalPrice decimal.Decimal
	CreatedAt  time.Time // UTC, assigned at construction
}

// =============================================================================
// DERIVED VIEWS - Computed at read time, never persisted
// =============================================================================

// InventoryItem is the read-time projection of a product's current quantity.
type InventoryItem struct {
	ProductID ProductID
	Quantity  int
}

// SalesBucket is one aggregation bucket: the boundary of the containing
// period (truncated in the UTC calendar) and the revenue sum for sales
// falling in [PeriodStart, PeriodStart+granularity).
type SalesBucket struct {
	PeriodStart time.Time
	Total       decimal.Decimal
}

// ComparisonBucket pairs the i-th sub-window of two equal-duration windows.
// Unlike SalesBucket, empty sub-windows are emitted with an explicit zero
// total so the two series always have equal length.
type ComparisonBucket struct {
	Label       string
	FirstTotal  decimal.Decimal
	SecondTotal decimal.Decimal
}

// =============================================================================
// PRODUCT SET - Tri-state filter
// =============================================================================

// ProductSet restricts a query to a set of products. The three states are
// meaningfully different:
//   - nil:       no restriction, every product matches
//   - empty:     explicit restriction to nothing, no product matches
//   - populated: only listed products match
type ProductSet map[ProductID]struct{}

// NewProductSet builds a non-nil set from the given ids. Called with no
// arguments it returns the explicit match-nothing set.
func NewProductSet(ids ...ProductID) ProductSet {
	s := make(ProductSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Match reports whether the product passes the filter.
func (s ProductSet) Match(id ProductID) bool {
	if s == nil {
		return true
	}
	_, ok := s[id]
	return ok
}

// IDs returns the members as a slice. Returns a non-nil empty slice for the
// explicit empty set and nil for the unrestricted set, preserving tri-state
// through store calls.
func (s ProductSet) IDs() []ProductID {
	if s == nil {
		return nil
	}
	ids := make([]ProductID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}
