package jwtx

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// NewSignerHMAC creates an HMAC signer (HS256, HS384 or HS512) from a shared
// secret. The secret must be at least MinHMACSecretLen bytes.
func NewSignerHMAC(alg string, secret []byte) (Signer, error) {
	return newHMACSigner(alg, secret)
}
