package sqlite

import (
	"context"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mercatohq/mercato/internal/mercato/domain"
	"github.com/mercatohq/mercato/internal/mercato/store"
)

type categoriesRepo struct {
	ext sqlx.ExtContext
}

const categoryColumns = `id, name, slug, description, parent_id, is_active, sort_order, created_at, updated_at`

func (r *categoriesRepo) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	var row categoryRow
	err := sqlx.GetContext(ctx, r.ext, &row,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return mapCategory(row), nil
}

func (r *categoriesRepo) GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	var row categoryRow
	err := sqlx.GetContext(ctx, r.ext, &row,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, slug)
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return mapCategory(row), nil
}

func (r *categoriesRepo) CreateCategory(ctx context.Context, c domain.Category) error {
	now := time.Now().UTC()
	_, err := r.ext.ExecContext(ctx,
		`INSERT INTO categories (id, name, slug, description, parent_id, is_active, sort_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Slug, c.Description, mapOptionalString(c.ParentID), c.IsActive, c.SortOrder, now, now)
	return mapConflict(err)
}

func (r *categoriesRepo) UpdateCategory(ctx context.Context, c domain.Category) error {
	res, err := r.ext.ExecContext(ctx,
		`UPDATE categories
		 SET name = ?, slug = ?, description = ?, parent_id = ?, is_active = ?, sort_order = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name, c.Slug, c.Description, mapOptionalString(c.ParentID), c.IsActive, c.SortOrder, time.Now().UTC(), c.ID)
	if err != nil {
		return mapConflict(err)
	}
	return requireRow(res)
}

func (r *categoriesRepo) DeleteCategory(ctx context.Context, categoryID string) error {
	res, err := r.ext.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, categoryID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *categoriesRepo) ListCategories(ctx context.Context, f store.CategoryFilter) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	var where []string
	var args []any

	if f.IsActive != nil {
		where = append(where, `is_active = ?`)
		args = append(args, *f.IsActive)
	}
	if f.ParentID != nil {
		where = append(where, `parent_id = ?`)
		args = append(args, *f.ParentID)
	}
	for i, cond := range where {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}

	query += ` ORDER BY sort_order ASC, name ASC`

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ` + strconv.Itoa(limit) + ` OFFSET ` + strconv.Itoa(max(f.Skip, 0))

	var rows []categoryRow
	if err := sqlx.SelectContext(ctx, r.ext, &rows, query, args...); err != nil {
		return nil, err
	}

	cats := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		cats = append(cats, mapCategory(row))
	}
	return cats, nil
}
