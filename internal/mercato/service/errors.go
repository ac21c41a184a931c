package service

import "errors"

var (
	// ErrInvalidCredentials covers unknown username, wrong password and
	// inactive accounts. Callers must not be able to tell these apart.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrValidation marks input that fails shape checks. Wrap it with the
	// field-specific message: fmt.Errorf("%w: username too short", ErrValidation).
	ErrValidation = errors.New("validation_error")

	// ErrConflict marks unique-constraint style failures (username, email,
	// slug, sku already taken).
	ErrConflict = errors.New("conflict")
)
