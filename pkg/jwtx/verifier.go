package jwtx

import (
	"errors"
	"time"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Leeway allows small clock skew when validating exp/nbf/iat.
	// Because time sync is never perfect.
	Leeway time.Duration
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HMACAdapter a Verifier wrapper for the HMAC implementation.
type HMACAdapter struct{ *HMACVerifier }

func (a HMACAdapter) Verify(token string) (Claims, error) {
	c, err := a.HMACVerifier.Verify(token)
	if err != nil {
		return Claims{}, err
	}
	return *c, nil
}

// NewCommonHMAC returns a Verifier using the HMAC implementation wrapped
// in the common interface.
func NewCommonHMAC(alg string, secret []byte, issuer string) (Verifier, error) {
	v, err := NewVerifierHMAC(alg, secret, issuer)
	if err != nil {
		return nil, err
	}
	return HMACAdapter{v}, nil
}
