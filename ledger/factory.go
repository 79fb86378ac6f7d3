/*
factory.go - Event construction

PURPOSE:
  The only place where event identity and timestamps are assigned. Events
  are validated here, at construction, not at the storage boundary: a store
  receives only well-formed events.

IDENTITY:
  Random UUIDs. No sequencing, no coordination between writers. Collisions
  are astronomically unlikely, and the store does not check for them beyond
  the primary-key constraint.

TIMESTAMPS:
  UTC "now" at construction. Monotonically informative but not required to
  be strictly increasing across concurrent writers; folds are sums, so
  ordering never affects derived quantities.

SEE ALSO:
  - types.go: Event definitions
  - errors.go: ErrZeroQuantityDelta
*/
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewInventoryEvent creates an inventory event for the given product with a
// fresh id and a UTC timestamp. A zero delta carries no information and is
// rejected here, before any append.
func NewInventoryEvent(productID ProductID, quantityDelta int) (InventoryEvent, error) {
	return NewInventoryEventAt(productID, quantityDelta, time.Now().UTC())
}

// NewInventoryEventAt is NewInventoryEvent with an explicit timestamp.
// Used by seed data and tests that need deterministic event times.
func NewInventoryEventAt(productID ProductID, quantityDelta int, at time.Time) (InventoryEvent, error) {
	if quantityDelta == 0 {
		return InventoryEvent{}, ErrZeroQuantityDelta
	}
	return InventoryEvent{
		ID:            EventID(uuid.NewString()),
		ProductID:     productID,
		QuantityDelta: quantityDelta,
		CreatedAt:     at.UTC(),
	}, nil
}

// NewSaleEvent creates a sale event with a fresh id and a UTC timestamp.
// Quantity and total price are recorded as given; a sale is a historical
// fact independent of later catalog price changes.
func NewSaleEvent(productID ProductID, quantity int, totalPrice decimal.Decimal) SaleEvent {
	return NewSaleEventAt(productID, quantity, totalPrice, time.Now().UTC())
}

// NewSaleEventAt is NewSaleEvent with an explicit timestamp.
func NewSaleEventAt(productID ProductID, quantity int, totalPrice decimal.Decimal, at time.Time) SaleEvent {
	return SaleEvent{
		ID:         EventID(uuid.NewString()),
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: totalPrice,
		CreatedAt:  at.UTC(),
	}
}
