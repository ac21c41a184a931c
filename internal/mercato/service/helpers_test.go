package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mercatohq/mercato/internal/mercato/domain"
	"github.com/mercatohq/mercato/internal/mercato/store"
	"github.com/mercatohq/mercato/internal/mercato/store/drivers/sqlite"
	"github.com/mercatohq/mercato/pkg/cryptox"
	"github.com/mercatohq/mercato/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cryptox.SetPepperPath(filepath.Join(os.TempDir(), "mercato-service-test-pepper"))
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := "file:" + idx.New().String() + "?mode=memory&cache=shared"
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

// seedUser creates an active user with the given password already hashed.
func seedUser(t *testing.T, s store.Store, username, email, password string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}
