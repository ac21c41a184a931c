package httpx

import "net/http"

// ErrorBody is the JSON error payload returned by every endpoint.
type ErrorBody struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// Error codes shared across the API surface.
const (
	ErrCodeValidation   = "validation_error"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeAuth         = "authentication_error"
	ErrCodeTokenExpired = "token_expired"
	ErrCodeInvalidToken = "invalid_token"
	ErrCodeForbidden    = "forbidden"
	ErrCodeRateLimited  = "rate_limit_exceeded"
	ErrCodeServerError  = "server_error"
)

// WriteError writes a JSON error response with the given status code.
func WriteError(w http.ResponseWriter, status int, code, description string) {
	WriteJSON(w, status, ErrorBody{Code: code, Description: description})
}
