package storesdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mercatohq/mercato/pkg/httpx"
)

// ============================================================================
// API Error Codes
// ============================================================================

const (
	ErrorCodeValidation   = "validation_error"
	ErrorCodeNotFound     = "not_found"
	ErrorCodeConflict     = "conflict"
	ErrorCodeAuth         = "authentication_error"
	ErrorCodeTokenExpired = "token_expired"
	ErrorCodeInvalidToken = "invalid_token"
	ErrorCodeForbidden    = "forbidden"
	ErrorCodeRateLimited  = "rate_limit_exceeded"
	ErrorCodeServerError  = "server_error"
)

// ============================================================================
// APIError - shared error type
// ============================================================================

// APIError is the structured error body every endpoint returns. It implements
// the error interface and is used both by the server (to write HTTP
// responses) and by the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "validation_error")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WithDescription returns a copy of the error with a more specific description.
func (e *APIError) WithDescription(desc string) *APIError {
	clone := *e
	clone.Description = desc
	return &clone
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// ============================================================================
// Predefined API Errors
// ============================================================================

var (
	// ErrValidation is returned when the request body or parameters fail
	// shape checks. Use WithDescription for the field-specific message.
	ErrValidation = &APIError{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeValidation,
		Description: "the request failed validation",
	}

	// ErrBadRequest is returned when the request is malformed (unparseable
	// body, bad query parameters).
	ErrBadRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "the request is malformed",
	}

	// ErrNotFound is returned when the addressed resource does not exist.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrConflict is returned when a unique field is already taken.
	ErrConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "resource already exists",
	}

	// ErrInvalidCredentials is returned on failed login. Unknown usernames,
	// wrong passwords and inactive accounts look identical.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeAuth,
		Description: "invalid username or password",
	}

	// ErrTokenExpired is returned when the bearer token's exp has passed.
	ErrTokenExpired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeTokenExpired,
		Description: "token expired",
	}

	// ErrInvalidToken is returned when the bearer token is missing, malformed
	// or fails verification for any reason other than expiry.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "invalid or missing access token",
	}

	// ErrForbidden is returned when the caller is authenticated but not
	// allowed to touch the addressed resource.
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "not allowed to access this resource",
	}

	// ErrRateLimited is returned when the caller exceeds a rate limit.
	ErrRateLimited = &APIError{
		StatusCode:  http.StatusTooManyRequests,
		Code:        ErrorCodeRateLimited,
		Description: "too many requests",
	}

	// ErrServerError is returned for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse converts an HTTP error response body into an APIError.
// Unparseable bodies still come back as an APIError carrying the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Code == "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected response (status %d)", resp.StatusCode),
		}
	}
	apiErr.StatusCode = resp.StatusCode
	return &apiErr
}
