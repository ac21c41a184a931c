package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinHMACSecretLen is the minimum accepted secret length in bytes. Anything
// shorter makes brute-forcing the signature practical.
const MinHMACSecretLen = 32

// hmacMethods maps config-friendly algorithm names to jwt signing methods.
var hmacMethods = map[string]*jwt.SigningMethodHMAC{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// HMACSigner signs JWTs using a shared HMAC secret.
type HMACSigner struct {
	method *jwt.SigningMethodHMAC
	secret []byte
}

func newHMACSigner(alg string, secret []byte) (*HMACSigner, error) {
	method, ok := hmacMethods[alg]
	if !ok {
		return nil, fmt.Errorf("jwtx: unsupported HMAC algorithm %q", alg)
	}

	s := &HMACSigner{method: method, secret: secret}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Alg returns the JWT "alg" header value for this signer.
func (s *HMACSigner) Alg() string { return s.method.Alg() }

// Validate checks the signer is usable before any tokens are minted.
func (s *HMACSigner) Validate() error {
	if len(s.secret) < MinHMACSecretLen {
		return fmt.Errorf("jwtx: HMAC secret must be at least %d bytes", MinHMACSecretLen)
	}
	return nil
}

// Sign produces a compact serialized JWT for the given claims.
func (s *HMACSigner) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(s.method, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// HMACVerifier validates JWTs signed with a shared HMAC secret.
type HMACVerifier struct {
	method *jwt.SigningMethodHMAC
	secret []byte
	issuer string
}

// NewVerifierHMAC creates a verifier for the given algorithm and secret.
func NewVerifierHMAC(alg string, secret []byte, issuer string) (*HMACVerifier, error) {
	method, ok := hmacMethods[alg]
	if !ok {
		return nil, fmt.Errorf("jwtx: unsupported HMAC algorithm %q", alg)
	}
	if len(secret) < MinHMACSecretLen {
		return nil, fmt.Errorf("jwtx: HMAC secret must be at least %d bytes", MinHMACSecretLen)
	}
	return &HMACVerifier{method: method, secret: secret, issuer: issuer}, nil
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *HMACVerifier) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{v.method.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		// Translate library errors into our sentinel errors so callers can
		// distinguish "expired" from "forged or garbage".
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrNotYetValid
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrAlgMismatch
		default:
			return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaim
	}

	// Now check all the claim requirements
	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return nil, err
	}

	return claims, nil
}
