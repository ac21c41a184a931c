package sqlite

import (
	"context"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mercatohq/mercato/internal/mercato/domain"
	"github.com/mercatohq/mercato/internal/mercato/store"
)

type productsRepo struct {
	ext sqlx.ExtContext
}

const productColumns = `id, name, slug, description, price, compare_price, sku, stock_qty, is_active, category_id, created_at, updated_at`

func (r *productsRepo) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	var row productRow
	err := sqlx.GetContext(ctx, r.ext, &row,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return mapProduct(row), nil
}

func (r *productsRepo) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	var row productRow
	err := sqlx.GetContext(ctx, r.ext, &row,
		`SELECT `+productColumns+` FROM products WHERE slug = ?`, slug)
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return mapProduct(row), nil
}

func (r *productsRepo) GetProductBySKU(ctx context.Context, sku string) (domain.Product, error) {
	var row productRow
	err := sqlx.GetContext(ctx, r.ext, &row,
		`SELECT `+productColumns+` FROM products WHERE sku = ?`, sku)
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return mapProduct(row), nil
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.Product) error {
	now := time.Now().UTC()
	_, err := r.ext.ExecContext(ctx,
		`INSERT INTO products (id, name, slug, description, price, compare_price, sku, stock_qty, is_active, category_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Slug, p.Description, p.Price, mapOptionalFloat(p.ComparePrice),
		p.SKU, p.StockQty, p.IsActive, mapOptionalString(p.CategoryID), now, now)
	return mapConflict(err)
}

func (r *productsRepo) UpdateProduct(ctx context.Context, p domain.Product) error {
	res, err := r.ext.ExecContext(ctx,
		`UPDATE products
		 SET name = ?, slug = ?, description = ?, price = ?, compare_price = ?, sku = ?, stock_qty = ?, is_active = ?, category_id = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Slug, p.Description, p.Price, mapOptionalFloat(p.ComparePrice),
		p.SKU, p.StockQty, p.IsActive, mapOptionalString(p.CategoryID), time.Now().UTC(), p.ID)
	if err != nil {
		return mapConflict(err)
	}
	return requireRow(res)
}

func (r *productsRepo) DeleteProduct(ctx context.Context, productID string) error {
	res, err := r.ext.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, productID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *productsRepo) ListProducts(ctx context.Context, f store.ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var where []string
	var args []any

	if f.IsActive != nil {
		where = append(where, `is_active = ?`)
		args = append(args, *f.IsActive)
	}
	if f.CategoryID != nil {
		where = append(where, `category_id = ?`)
		args = append(args, *f.CategoryID)
	}
	for i, cond := range where {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}

	query += ` ORDER BY created_at DESC`

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ` + strconv.Itoa(limit) + ` OFFSET ` + strconv.Itoa(max(f.Skip, 0))

	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.ext, &rows, query, args...); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, mapProduct(row))
	}
	return products, nil
}
