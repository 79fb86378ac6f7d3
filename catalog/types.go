/*
Package catalog is the product/category entity store.

PURPOSE:
  A plain CRUD store with no derived computation. Products carry a listed
  price, but the sales ledger never consults it: a sale records its own
  total, so catalog price changes do not rewrite sales history.

  The ledger engines consume this package only through catalog.Lookup, a
  narrow read-only adapter that resolves category membership. They never
  depend on the catalog's internal model.

SEE ALSO:
  - lookup.go: The anti-corruption adapter for the sales engine
  - store.go: Persistence interface + in-memory implementation
*/
package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/inventory-ledger/ledger"
)

// Product is a catalog entry. CategoryID may be empty for uncategorized
// products.
type Product struct {
	ID          ledger.ProductID
	Name        string
	CategoryID  string
	Description string
	Price       decimal.Decimal
	CreatedAt   time.Time
}

// Category groups products for filtering and browsing.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// NewProduct assigns identity and a UTC timestamp.
func NewProduct(name, categoryID, description string, price decimal.Decimal) Product {
	return Product{
		ID:          ledger.ProductID(uuid.NewString()),
		Name:        name,
		CategoryID:  categoryID,
		Description: description,
		Price:       price,
		CreatedAt:   time.Now().UTC(),
	}
}

// NewCategory assigns identity and a UTC timestamp.
func NewCategory(name, description string) Category {
	return Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}
