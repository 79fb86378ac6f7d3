package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/inventory-ledger/catalog"
)

// =============================================================================
// MEMORY STORE CRUD
// =============================================================================

func TestMemory_ProductLifecycle(t *testing.T) {
	s := catalog.NewMemory()
	ctx := context.Background()

	p := catalog.NewProduct("Sourdough", "bakery", "800g loaf", decimal.RequireFromString("6.50"))
	require.NoError(t, s.CreateProduct(ctx, p))
	assert.NotEmpty(t, p.ID)

	got, err := s.Product(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Sourdough", got.Name)

	got.Name = "Sourdough Loaf"
	require.NoError(t, s.UpdateProduct(ctx, *got))
	renamed, err := s.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sourdough Loaf", renamed.Name)

	require.NoError(t, s.DeleteProduct(ctx, p.ID))
	gone, err := s.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "missing product is nil, not an error")

	assert.ErrorIs(t, s.UpdateProduct(ctx, p), catalog.ErrNotFound)
	assert.ErrorIs(t, s.DeleteProduct(ctx, p.ID), catalog.ErrNotFound)
}

func TestMemory_ProductsSortedByName(t *testing.T) {
	s := catalog.NewMemory()
	ctx := context.Background()

	for _, name := range []string{"Rye", "Baguette", "Ciabatta"} {
		require.NoError(t, s.CreateProduct(ctx, catalog.NewProduct(name, "", "", decimal.Zero)))
	}

	all, err := s.Products(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Baguette", all[0].Name)
	assert.Equal(t, "Ciabatta", all[1].Name)
	assert.Equal(t, "Rye", all[2].Name)
}

func TestMemory_CategoryLifecycle(t *testing.T) {
	s := catalog.NewMemory()
	ctx := context.Background()

	c := catalog.NewCategory("drinks", "cold and hot")
	require.NoError(t, s.CreateCategory(ctx, c))

	got, err := s.Category(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "drinks", got.Name)

	missing, err := s.Category(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemory_ProductsByCategory(t *testing.T) {
	s := catalog.NewMemory()
	ctx := context.Background()

	cola := catalog.NewProduct("Cola", "drinks", "", decimal.RequireFromString("2"))
	bread := catalog.NewProduct("Bread", "bakery", "", decimal.RequireFromString("3"))
	loose := catalog.NewProduct("Loose", "", "", decimal.Zero)
	require.NoError(t, s.CreateProduct(ctx, cola))
	require.NoError(t, s.CreateProduct(ctx, bread))
	require.NoError(t, s.CreateProduct(ctx, loose))

	drinks, err := s.ProductsByCategory(ctx, "drinks")
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, cola.ID, drinks[0].ID)

	// The empty category id never sweeps up uncategorized products.
	none, err := s.ProductsByCategory(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

// =============================================================================
// LOOKUP ADAPTER
// =============================================================================

func TestLookup_CategoryMembers(t *testing.T) {
	s := catalog.NewMemory()
	ctx := context.Background()

	cola := catalog.NewProduct("Cola", "drinks", "", decimal.Zero)
	bread := catalog.NewProduct("Bread", "bakery", "", decimal.Zero)
	require.NoError(t, s.CreateProduct(ctx, cola))
	require.NoError(t, s.CreateProduct(ctx, bread))

	lookup := catalog.NewLookup(s)

	members, err := lookup.CategoryMembers(ctx, "drinks")
	require.NoError(t, err)
	assert.True(t, members.Match(cola.ID))
	assert.False(t, members.Match(bread.ID))
}

func TestLookup_UnknownCategory_MatchesNothing(t *testing.T) {
	// The adapter must return an explicit empty set for unknown categories:
	// a nil set would silently widen the filter to every product.

	s := catalog.NewMemory()
	ctx := context.Background()
	require.NoError(t, s.CreateProduct(ctx, catalog.NewProduct("Cola", "drinks", "", decimal.Zero)))

	lookup := catalog.NewLookup(s)

	members, err := lookup.CategoryMembers(ctx, "no-such-category")
	require.NoError(t, err)
	require.NotNil(t, members)
	assert.False(t, members.Match("anything"))
}
