package store

import (
	"context"
	"errors"

	"github.com/mercatohq/mercato/internal/mercato/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to actively stop people from accidentally doing transactions
// within transactions.
type Store interface {
	Users() Users
	Categories() Categories
	Products() Products

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// UserFilter narrows ListUsers / CountUsers. A nil IsActive means "any".
type UserFilter struct {
	IsActive *bool
	Skip     int
	Limit    int
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used for duplicate checks during registration.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser writes the mutable profile fields and bumps updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetUserActive flips is_active. Soft delete is SetUserActive(id, false).
	SetUserActive(ctx context.Context, userID string, active bool) error

	// DeleteUser removes the row permanently (hard delete).
	DeleteUser(ctx context.Context, userID string) error

	// ListUsers returns users ordered by creation date (oldest first).
	ListUsers(ctx context.Context, f UserFilter) ([]domain.User, error)

	// CountUsers returns the number of users matching the active filter.
	CountUsers(ctx context.Context, isActive *bool) (int64, error)
}

// CategoryFilter narrows ListCategories. A nil IsActive means "any",
// a nil ParentID means "any parent".
type CategoryFilter struct {
	IsActive *bool
	ParentID *string
	Skip     int
	Limit    int
}

type Categories interface {
	// GetCategoryByID returns a category by id.
	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)

	// GetCategoryBySlug is used for duplicate checks and slug lookups.
	GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error)

	// CreateCategory inserts a new category (id is ULID).
	CreateCategory(ctx context.Context, c domain.Category) error

	// UpdateCategory writes the mutable fields and bumps updated_at.
	UpdateCategory(ctx context.Context, c domain.Category) error

	// DeleteCategory removes the row. Products referencing it keep a NULL
	// category_id (per schema).
	DeleteCategory(ctx context.Context, categoryID string) error

	// ListCategories returns categories ordered by sort_order, then name.
	ListCategories(ctx context.Context, f CategoryFilter) ([]domain.Category, error)
}

// ProductFilter narrows ListProducts.
type ProductFilter struct {
	IsActive   *bool
	CategoryID *string
	Skip       int
	Limit      int
}

type Products interface {
	// GetProductByID returns a product by id.
	GetProductByID(ctx context.Context, id string) (domain.Product, error)

	// GetProductBySlug is used for duplicate checks and slug lookups.
	GetProductBySlug(ctx context.Context, slug string) (domain.Product, error)

	// GetProductBySKU is used for duplicate checks on sku.
	GetProductBySKU(ctx context.Context, sku string) (domain.Product, error)

	// CreateProduct inserts a new product (id is ULID).
	CreateProduct(ctx context.Context, p domain.Product) error

	// UpdateProduct writes the mutable fields and bumps updated_at.
	UpdateProduct(ctx context.Context, p domain.Product) error

	// DeleteProduct removes the row permanently.
	DeleteProduct(ctx context.Context, productID string) error

	// ListProducts returns products ordered by creation date (newest first).
	ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error)
}
