package domain

import "time"

// AccessToken is the result of a successful login.
type AccessToken struct {
	Token     string
	TokenType string // always "bearer"
	ExpiresIn time.Duration
}
