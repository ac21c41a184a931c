package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mercatohq/mercato/internal/mercato/store"
	"github.com/mercatohq/mercato/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

// recordingMailer captures welcome emails instead of sending them.
type recordingMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *recordingMailer) Enabled() bool { return true }

func (m *recordingMailer) SendWelcome(ctx context.Context, to, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func (m *recordingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	t.Run("creates an active user with hashed password", func(t *testing.T) {
		u, err := svc.Register(ctx, RegisterParams{
			Username:  "alice",
			Email:     "Alice@Example.com",
			Password:  "supersecret1",
			FirstName: "Alice",
			LastName:  "Smith",
		})
		require.NoError(t, err)
		require.Equal(t, "alice", u.Username)
		require.Equal(t, "alice@example.com", u.Email) // normalized
		require.True(t, u.IsActive)
		require.False(t, u.CreatedAt.IsZero())

		require.NotEqual(t, "supersecret1", u.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("supersecret1", u.PasswordHash))
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{
			Username: "alice",
			Email:    "new@example.com",
			Password: "supersecret1",
		})
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{
			Username: "bob",
			Email:    "alice@example.com",
			Password: "supersecret1",
		})
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{
			Username: "ab",
			Email:    "ab@example.com",
			Password: "supersecret1",
		})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects bad email", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{
			Username: "charlie",
			Email:    "not-an-email",
			Password: "supersecret1",
		})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{
			Username: "charlie",
			Email:    "charlie@example.com",
			Password: "short",
		})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects username with invalid characters", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{
			Username: "has spaces",
			Email:    "spaces@example.com",
			Password: "supersecret1",
		})
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestRegisterSendsWelcomeEmail(t *testing.T) {
	ctx := context.Background()
	m := &recordingMailer{}
	svc := &UserService{Store: newTestStore(t), Mailer: m}

	_, err := svc.Register(ctx, RegisterParams{
		Username: "dana",
		Email:    "dana@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	// The send happens off the request goroutine.
	require.Eventually(t, func() bool {
		got := m.recipients()
		return len(got) == 1 && got[0] == "dana@example.com"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	u := seedUser(t, svc.Store, "erin", "erin@example.com", "originalpass1")

	t.Run("partial profile update", func(t *testing.T) {
		first, last := "Erin", "Jones"
		updated, err := svc.UpdateUser(ctx, u.ID, UpdateUserParams{
			FirstName: &first,
			LastName:  &last,
		})
		require.NoError(t, err)
		require.Equal(t, "Erin", updated.FirstName)
		require.Equal(t, "Jones", updated.LastName)
		require.Equal(t, "erin@example.com", updated.Email) // untouched
	})

	t.Run("password change takes effect", func(t *testing.T) {
		newPass := "replacement-pass1"
		_, err := svc.UpdateUser(ctx, u.ID, UpdateUserParams{Password: &newPass})
		require.NoError(t, err)

		got, err := svc.Store.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword(newPass, got.PasswordHash))
		require.Error(t, cryptox.VerifyPassword("originalpass1", got.PasswordHash))
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		bad := "nope"
		_, err := svc.UpdateUser(ctx, u.ID, UpdateUserParams{Email: &bad})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("conflicting email rolls back", func(t *testing.T) {
		seedUser(t, svc.Store, "frank", "frank@example.com", "frankpass1")

		taken := "frank@example.com"
		_, err := svc.UpdateUser(ctx, u.ID, UpdateUserParams{Email: &taken})
		require.ErrorIs(t, err, ErrConflict)

		got, err := svc.Store.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "erin@example.com", got.Email)
	})

	t.Run("missing user maps to store.ErrNotFound", func(t *testing.T) {
		first := "Ghost"
		_, err := svc.UpdateUser(ctx, "missing-id", UpdateUserParams{FirstName: &first})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestToggleStatus(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	u := seedUser(t, svc.Store, "gina", "gina@example.com", "ginapass1")

	updated, err := svc.ToggleStatus(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, updated.IsActive)

	updated, err = svc.ToggleStatus(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, updated.IsActive)
}

func TestSoftAndHardDelete(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	u := seedUser(t, svc.Store, "henry", "henry@example.com", "henrypass1")

	require.NoError(t, svc.SoftDelete(ctx, u.ID))
	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	require.NoError(t, svc.HardDelete(ctx, u.ID))
	_, err = svc.GetUser(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
