package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mercatohq/mercato/internal/mercato/domain"
	"github.com/mercatohq/mercato/internal/mercato/store"
	"github.com/mercatohq/mercato/pkg/idx"
	"github.com/mercatohq/mercato/pkg/slogx"
)

type CatalogService struct {
	Store store.Store
}

type CategoryParams struct {
	Name        string
	Slug        string
	Description string
	ParentID    *string
	IsActive    *bool
	SortOrder   *int
}

// CreateCategory inserts a new category. The slug is derived from the name
// when not provided explicitly.
func (s *CatalogService) CreateCategory(ctx context.Context, p CategoryParams) (domain.Category, error) {
	l := slogx.FromContext(ctx)

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Category{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	slug := p.Slug
	if slug == "" {
		slug = Slugify(p.Name)
	}
	if err := validateSlug(slug); err != nil {
		return domain.Category{}, err
	}

	if p.ParentID != nil {
		if _, err := s.Store.Categories().GetCategoryByID(ctx, *p.ParentID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Category{}, fmt.Errorf("%w: parent category does not exist", ErrValidation)
			}
			return domain.Category{}, err
		}
	}

	c := domain.Category{
		ID:          idx.New().String(),
		Name:        p.Name,
		Slug:        slug,
		Description: strings.TrimSpace(p.Description),
		ParentID:    p.ParentID,
		IsActive:    true,
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	if p.SortOrder != nil {
		c.SortOrder = *p.SortOrder
	}

	if err := s.Store.Categories().CreateCategory(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Category{}, fmt.Errorf("%w: slug already in use", ErrConflict)
		}
		return domain.Category{}, err
	}

	created, err := s.Store.Categories().GetCategoryByID(ctx, c.ID)
	if err != nil {
		return domain.Category{}, err
	}

	l.Info("category created", "category_id", created.ID, "slug", created.Slug)
	return created, nil
}

// GetCategory fetches a category by id.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	return s.Store.Categories().GetCategoryByID(ctx, id)
}

// ListCategories returns categories matching the filter.
func (s *CatalogService) ListCategories(ctx context.Context, f store.CategoryFilter) ([]domain.Category, error) {
	return s.Store.Categories().ListCategories(ctx, f)
}

// UpdateCategory applies a partial update to a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, p CategoryParams) (domain.Category, error) {
	var updated domain.Category
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Categories().GetCategoryByID(ctx, id)
		if err != nil {
			return err
		}

		if name := strings.TrimSpace(p.Name); name != "" {
			c.Name = name
		}
		if p.Slug != "" {
			if err := validateSlug(p.Slug); err != nil {
				return err
			}
			c.Slug = p.Slug
		}
		if p.Description != "" {
			c.Description = strings.TrimSpace(p.Description)
		}
		if p.ParentID != nil {
			if *p.ParentID == id {
				return fmt.Errorf("%w: category cannot be its own parent", ErrValidation)
			}
			if _, err := tx.Categories().GetCategoryByID(ctx, *p.ParentID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("%w: parent category does not exist", ErrValidation)
				}
				return err
			}
			c.ParentID = p.ParentID
		}
		if p.IsActive != nil {
			c.IsActive = *p.IsActive
		}
		if p.SortOrder != nil {
			c.SortOrder = *p.SortOrder
		}

		if err := tx.Categories().UpdateCategory(ctx, c); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fmt.Errorf("%w: slug already in use", ErrConflict)
			}
			return err
		}

		updated, err = tx.Categories().GetCategoryByID(ctx, id)
		return err
	})
	if err != nil {
		return domain.Category{}, err
	}
	return updated, nil
}

// DeleteCategory removes a category. Products referencing it are detached,
// not deleted (schema sets their category_id to NULL).
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.Store.Categories().DeleteCategory(ctx, id)
}

type ProductParams struct {
	Name         string
	Slug         string
	Description  string
	Price        *float64
	ComparePrice *float64
	SKU          string
	StockQty     *int
	IsActive     *bool
	CategoryID   *string
}

// CreateProduct inserts a new product after validating the price, sku and
// referenced category.
func (s *CatalogService) CreateProduct(ctx context.Context, p ProductParams) (domain.Product, error) {
	l := slogx.FromContext(ctx)

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Product{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.Price == nil || *p.Price <= 0 {
		return domain.Product{}, fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}
	if p.ComparePrice != nil && *p.ComparePrice <= *p.Price {
		return domain.Product{}, fmt.Errorf("%w: compare_price must be greater than price", ErrValidation)
	}
	p.SKU = strings.TrimSpace(p.SKU)
	if p.SKU == "" {
		return domain.Product{}, fmt.Errorf("%w: sku is required", ErrValidation)
	}

	slug := p.Slug
	if slug == "" {
		slug = Slugify(p.Name)
	}
	if err := validateSlug(slug); err != nil {
		return domain.Product{}, err
	}

	if p.CategoryID != nil {
		if _, err := s.Store.Categories().GetCategoryByID(ctx, *p.CategoryID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Product{}, fmt.Errorf("%w: category does not exist", ErrValidation)
			}
			return domain.Product{}, err
		}
	}

	prod := domain.Product{
		ID:           idx.New().String(),
		Name:         p.Name,
		Slug:         slug,
		Description:  strings.TrimSpace(p.Description),
		Price:        *p.Price,
		ComparePrice: p.ComparePrice,
		SKU:          p.SKU,
		IsActive:     true,
		CategoryID:   p.CategoryID,
	}
	if p.StockQty != nil {
		if *p.StockQty < 0 {
			return domain.Product{}, fmt.Errorf("%w: stock_qty cannot be negative", ErrValidation)
		}
		prod.StockQty = *p.StockQty
	}
	if p.IsActive != nil {
		prod.IsActive = *p.IsActive
	}

	if err := s.Store.Products().CreateProduct(ctx, prod); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Product{}, fmt.Errorf("%w: slug or sku already in use", ErrConflict)
		}
		return domain.Product{}, err
	}

	created, err := s.Store.Products().GetProductByID(ctx, prod.ID)
	if err != nil {
		return domain.Product{}, err
	}

	l.Info("product created", "product_id", created.ID, "sku", created.SKU)
	return created, nil
}

// GetProduct fetches a product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return s.Store.Products().GetProductByID(ctx, id)
}

// ListProducts returns products matching the filter.
func (s *CatalogService) ListProducts(ctx context.Context, f store.ProductFilter) ([]domain.Product, error) {
	return s.Store.Products().ListProducts(ctx, f)
}

// UpdateProduct applies a partial update to a product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, p ProductParams) (domain.Product, error) {
	var updated domain.Product
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		prod, err := tx.Products().GetProductByID(ctx, id)
		if err != nil {
			return err
		}

		if name := strings.TrimSpace(p.Name); name != "" {
			prod.Name = name
		}
		if p.Slug != "" {
			if err := validateSlug(p.Slug); err != nil {
				return err
			}
			prod.Slug = p.Slug
		}
		if p.Description != "" {
			prod.Description = strings.TrimSpace(p.Description)
		}
		if p.Price != nil {
			if *p.Price <= 0 {
				return fmt.Errorf("%w: price must be greater than zero", ErrValidation)
			}
			prod.Price = *p.Price
		}
		if p.ComparePrice != nil {
			if *p.ComparePrice <= prod.Price {
				return fmt.Errorf("%w: compare_price must be greater than price", ErrValidation)
			}
			prod.ComparePrice = p.ComparePrice
		}
		if sku := strings.TrimSpace(p.SKU); sku != "" {
			prod.SKU = sku
		}
		if p.StockQty != nil {
			if *p.StockQty < 0 {
				return fmt.Errorf("%w: stock_qty cannot be negative", ErrValidation)
			}
			prod.StockQty = *p.StockQty
		}
		if p.IsActive != nil {
			prod.IsActive = *p.IsActive
		}
		if p.CategoryID != nil {
			if _, err := tx.Categories().GetCategoryByID(ctx, *p.CategoryID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("%w: category does not exist", ErrValidation)
				}
				return err
			}
			prod.CategoryID = p.CategoryID
		}

		if err := tx.Products().UpdateProduct(ctx, prod); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fmt.Errorf("%w: slug or sku already in use", ErrConflict)
			}
			return err
		}

		updated, err = tx.Products().GetProductByID(ctx, id)
		return err
	})
	if err != nil {
		return domain.Product{}, err
	}
	return updated, nil
}

// DeleteProduct removes a product permanently.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.Store.Products().DeleteProduct(ctx, id)
}

// Slugify lowercases the name and collapses anything that isn't a letter or
// digit into single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // trim leading hyphens
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func validateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("%w: slug is required", ErrValidation)
	}
	for _, r := range slug {
		isLower := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		if !isLower && !isDigit && r != '-' {
			return fmt.Errorf("%w: slug may only contain lowercase letters, digits and hyphens", ErrValidation)
		}
	}
	return nil
}
