package storesdk

import "time"

// TokenResponse is returned by the login endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

// LoginRequest is the JSON-body alternative to the form login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LogoutResponse acknowledges the end of a session. Tokens are stateless,
// so there is nothing revoked server-side.
type LogoutResponse struct {
	Message string `json:"message"`
}

// VerifyResponse is returned by the token verification endpoint.
type VerifyResponse struct {
	Valid    bool   `json:"valid"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// UpdateUserRequest is a partial profile update. Nil fields are untouched.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Password  *string `json:"password,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// UserResponse is the public shape of a user. The password hash never
// appears here.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserCountResponse is returned by the user count endpoint.
type UserCountResponse struct {
	Total int64 `json:"total"`
}

// CategoryRequest creates or updates a category. On update, zero-valued
// fields are left untouched.
type CategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug,omitempty"`
	Description string  `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ParentID    *string   `json:"parent_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductRequest creates or updates a product. On update, nil/zero fields
// are left untouched.
type ProductRequest struct {
	Name         string   `json:"name"`
	Slug         string   `json:"slug,omitempty"`
	Description  string   `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	ComparePrice *float64 `json:"compare_price,omitempty"`
	SKU          string   `json:"sku,omitempty"`
	StockQty     *int     `json:"stock_qty,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
	CategoryID   *string  `json:"category_id,omitempty"`
}

type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	ComparePrice *float64  `json:"compare_price,omitempty"`
	SKU          string    `json:"sku"`
	StockQty     int       `json:"stock_qty"`
	IsActive     bool      `json:"is_active"`
	CategoryID   *string   `json:"category_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HealthChecks reports per-dependency status on the readiness endpoint.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
