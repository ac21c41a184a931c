package service

import (
	"context"
	"testing"

	"github.com/mercatohq/mercato/internal/mercato/store"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Electronics":       "electronics",
		"Home & Garden":     "home-garden",
		"  Spaced  Out  ":   "spaced-out",
		"Déjà Vu":           "d-j-vu",
		"100% Cotton Shirt": "100-cotton-shirt",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	svc := &CatalogService{Store: newTestStore(t)}

	t.Run("derives slug from name", func(t *testing.T) {
		c, err := svc.CreateCategory(ctx, CategoryParams{Name: "Home & Garden"})
		require.NoError(t, err)
		require.Equal(t, "home-garden", c.Slug)
		require.True(t, c.IsActive)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, CategoryParams{})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, CategoryParams{Name: "Home and Garden", Slug: "home-garden"})
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("rejects unknown parent", func(t *testing.T) {
		missing := "no-such-id"
		_, err := svc.CreateCategory(ctx, CategoryParams{Name: "Orphan", ParentID: &missing})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("accepts a real parent", func(t *testing.T) {
		parent, err := svc.CreateCategory(ctx, CategoryParams{Name: "Outdoors"})
		require.NoError(t, err)

		child, err := svc.CreateCategory(ctx, CategoryParams{Name: "Tents", ParentID: &parent.ID})
		require.NoError(t, err)
		require.NotNil(t, child.ParentID)
		require.Equal(t, parent.ID, *child.ParentID)
	})
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()
	svc := &CatalogService{Store: newTestStore(t)}

	c, err := svc.CreateCategory(ctx, CategoryParams{Name: "Music"})
	require.NoError(t, err)

	t.Run("partial update", func(t *testing.T) {
		inactive := false
		updated, err := svc.UpdateCategory(ctx, c.ID, CategoryParams{Description: "Vinyl and CDs", IsActive: &inactive})
		require.NoError(t, err)
		require.Equal(t, "Vinyl and CDs", updated.Description)
		require.False(t, updated.IsActive)
		require.Equal(t, "music", updated.Slug) // untouched
	})

	t.Run("cannot be its own parent", func(t *testing.T) {
		_, err := svc.UpdateCategory(ctx, c.ID, CategoryParams{ParentID: &c.ID})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing category", func(t *testing.T) {
		_, err := svc.UpdateCategory(ctx, "missing", CategoryParams{Name: "X"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	svc := &CatalogService{Store: newTestStore(t)}

	cat, err := svc.CreateCategory(ctx, CategoryParams{Name: "Books"})
	require.NoError(t, err)

	price := 29.99

	t.Run("happy path", func(t *testing.T) {
		compare := 39.99
		p, err := svc.CreateProduct(ctx, ProductParams{
			Name:         "Go in Anger",
			Price:        &price,
			ComparePrice: &compare,
			SKU:          "BOOK-001",
			CategoryID:   &cat.ID,
		})
		require.NoError(t, err)
		require.Equal(t, "go-in-anger", p.Slug)
		require.InDelta(t, 29.99, p.Price, 0.001)
		require.NotNil(t, p.ComparePrice)
		require.True(t, p.IsActive)
	})

	t.Run("rejects missing price", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, ProductParams{Name: "Free Stuff", SKU: "FREE-01"})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		zero := 0.0
		_, err := svc.CreateProduct(ctx, ProductParams{Name: "Zero", Price: &zero, SKU: "ZERO-01"})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects compare_price below price", func(t *testing.T) {
		low := 9.99
		_, err := svc.CreateProduct(ctx, ProductParams{
			Name: "Bad Deal", Price: &price, ComparePrice: &low, SKU: "DEAL-01",
		})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects missing sku", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, ProductParams{Name: "No SKU", Price: &price})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects duplicate sku", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, ProductParams{Name: "Another Book", Price: &price, SKU: "BOOK-001"})
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		missing := "no-such-category"
		_, err := svc.CreateProduct(ctx, ProductParams{
			Name: "Lost", Price: &price, SKU: "LOST-01", CategoryID: &missing,
		})
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	svc := &CatalogService{Store: newTestStore(t)}

	price := 10.0
	p, err := svc.CreateProduct(ctx, ProductParams{Name: "Widget", Price: &price, SKU: "WID-01"})
	require.NoError(t, err)

	t.Run("price update", func(t *testing.T) {
		newPrice := 12.5
		updated, err := svc.UpdateProduct(ctx, p.ID, ProductParams{Price: &newPrice})
		require.NoError(t, err)
		require.InDelta(t, 12.5, updated.Price, 0.001)
	})

	t.Run("negative stock rejected", func(t *testing.T) {
		neg := -1
		_, err := svc.UpdateProduct(ctx, p.ID, ProductParams{StockQty: &neg})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := svc.UpdateProduct(ctx, "missing", ProductParams{})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteProduct(ctx, p.ID))
		_, err := svc.GetProduct(ctx, p.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
