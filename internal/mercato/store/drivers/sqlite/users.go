package sqlite

import (
	"context"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mercatohq/mercato/internal/mercato/domain"
	"github.com/mercatohq/mercato/internal/mercato/store"
)

type usersRepo struct {
	ext sqlx.ExtContext
}

const userColumns = `id, username, email, first_name, last_name, password_hash, is_active, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.ext, &row,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.ext, &row,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.ext, &row,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.ext.ExecContext(ctx,
		`INSERT INTO users (id, username, email, first_name, last_name, password_hash, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.IsActive, now, now)
	return mapConflict(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.ext.ExecContext(ctx,
		`UPDATE users
		 SET username = ?, email = ?, first_name = ?, last_name = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		u.Username, u.Email, u.FirstName, u.LastName, u.IsActive, time.Now().UTC(), u.ID)
	if err != nil {
		return mapConflict(err)
	}
	return requireRow(res)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.ext.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) SetUserActive(ctx context.Context, userID string, active bool) error {
	res, err := r.ext.ExecContext(ctx,
		`UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?`,
		active, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.ext.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) ListUsers(ctx context.Context, f store.UserFilter) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any

	if f.IsActive != nil {
		query += ` WHERE is_active = ?`
		args = append(args, *f.IsActive)
	}

	query += ` ORDER BY created_at ASC`

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ` + strconv.Itoa(limit) + ` OFFSET ` + strconv.Itoa(max(f.Skip, 0))

	var rows []userRow
	if err := sqlx.SelectContext(ctx, r.ext, &rows, query, args...); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUser(row))
	}
	return users, nil
}

func (r *usersRepo) CountUsers(ctx context.Context, isActive *bool) (int64, error) {
	query := `SELECT COUNT(*) FROM users`
	var args []any
	if isActive != nil {
		query += ` WHERE is_active = ?`
		args = append(args, *isActive)
	}

	var count int64
	if err := sqlx.GetContext(ctx, r.ext, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}
