package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "mercato-cryptox-test-pepper")
	SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func TestHashAndVerifyPassword(t *testing.T) {
	passwords := []struct {
		name     string
		password string
	}{
		{"typical signup password", "Sup3rSecret!"},
		{"minimum length", "12345678"},
		{"spaces inside", "correct horse battery staple"},
		{"accented", "contraseña-Ñandú"},
		{"empty", ""},
	}

	for _, tt := range passwords {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

			require.NoError(t, VerifyPassword(tt.password, hash))
			require.Error(t, VerifyPassword(tt.password+"x", hash))
		})
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	// Same password registered twice (two users, same weak password) must
	// never produce the same stored hash.
	first, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	second, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.NoError(t, VerifyPassword("Sup3rSecret!", first))
	require.NoError(t, VerifyPassword("Sup3rSecret!", second))
}

func TestVerifyPasswordRejectsTamperedHash(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)

	// Flip the last character of the digest segment.
	last := hash[len(hash)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	tampered := hash[:len(hash)-1] + string(replacement)

	require.Error(t, VerifyPassword("Sup3rSecret!", tampered))
}

func TestVerifyPasswordMalformedEncodings(t *testing.T) {
	cases := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not a hash at all", "Sup3rSecret!"},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing digest", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA"},
		{"garbage salt", "$argon2id$v=19$m=19456,t=2,p=1$***$aGFzaA"},
		{"garbage params", "$argon2id$v=19$m=a,t=b,p=c$c2FsdA$aGFzaA"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, VerifyPassword("Sup3rSecret!", tt.encoded))
		})
	}
}

func TestVerifyPasswordDependsOnPepper(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	require.NoError(t, VerifyPassword("Sup3rSecret!", hash))

	// Swap in a different pepper file; old hashes must stop verifying.
	otherPepper := filepath.Join(t.TempDir(), "other-pepper")
	SetPepperPath(otherPepper)
	pepper = ""
	t.Cleanup(func() {
		SetPepperPath(filepath.Join(os.TempDir(), "mercato-cryptox-test-pepper"))
		pepper = ""
	})

	require.Error(t, VerifyPassword("Sup3rSecret!", hash))
}

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for range 10 {
		pw, err := GeneratePassword()
		require.NoError(t, err)
		require.Len(t, pw, 12)
		require.False(t, seen[pw], "generated passwords should not repeat")
		seen[pw] = true
	}
}
