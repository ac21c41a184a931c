package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/mercatohq/mercato/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestHMACSignAndVerify(t *testing.T) {
	signer, err := jwtx.NewSignerHMAC("HS256", testSecret)
	require.NoError(t, err)
	require.Equal(t, "HS256", signer.Alg())

	verifier, err := jwtx.NewCommonHMAC("HS256", testSecret, "mercato")
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("user-1", "marta", "marta@example.com", time.Minute, "mercato", time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(token, ".")))

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "marta", got.Username)
	require.Equal(t, "marta@example.com", got.Email)
}

func TestHMACVerifyRejectsExpired(t *testing.T) {
	signer, err := jwtx.NewSignerHMAC("HS256", testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewCommonHMAC("HS256", testSecret, "mercato")
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("user-1", "marta", "", time.Minute, "mercato", time.Now().UTC().Add(-time.Hour))
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestHMACVerifyRejectsWrongSecret(t *testing.T) {
	signer, err := jwtx.NewSignerHMAC("HS256", testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewCommonHMAC("HS256", []byte("another-secret-another-secret-00"), "mercato")
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("user-1", "marta", "", time.Minute, "mercato", time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestHMACVerifyRejectsWrongIssuer(t *testing.T) {
	signer, err := jwtx.NewSignerHMAC("HS256", testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewCommonHMAC("HS256", testSecret, "mercato")
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("user-1", "marta", "", time.Minute, "somebody-else", time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestHMACVerifyRejectsGarbage(t *testing.T) {
	verifier, err := jwtx.NewCommonHMAC("HS256", testSecret, "mercato")
	require.NoError(t, err)

	_, err = verifier.Verify("not-a-jwt")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}

func TestHMACRejectsShortSecret(t *testing.T) {
	_, err := jwtx.NewSignerHMAC("HS256", []byte("too-short"))
	require.Error(t, err)

	_, err = jwtx.NewCommonHMAC("HS256", []byte("too-short"), "mercato")
	require.Error(t, err)
}

func TestHMACRejectsUnknownAlgorithm(t *testing.T) {
	_, err := jwtx.NewSignerHMAC("RS256", testSecret)
	require.Error(t, err)
}
