package catalog

import (
	"context"

	"github.com/warp/inventory-ledger/ledger"
)

// Lookup is the read-only adapter the sales engine uses to resolve category
// membership. It implements sales.CategoryResolver without the sales package
// depending on catalog internals.
type Lookup struct {
	Store Store
}

func NewLookup(store Store) *Lookup {
	return &Lookup{Store: store}
}

// CategoryMembers returns the product ids belonging to the category.
// Unknown and empty categories both resolve to an empty, non-nil set: as a
// filter that means "match nothing", never "match everything".
func (l *Lookup) CategoryMembers(ctx context.Context, categoryID string) (ledger.ProductSet, error) {
	products, err := l.Store.ProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	members := make(ledger.ProductSet, len(products))
	for _, p := range products {
		members[p.ID] = struct{}{}
	}
	return members, nil
}
