package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mercatohq/mercato/internal/mercato/domain"
	"github.com/mercatohq/mercato/internal/mercato/store"
	"github.com/mercatohq/mercato/pkg/cryptox"
	"github.com/mercatohq/mercato/pkg/jwtx"
	"github.com/mercatohq/mercato/pkg/slogx"
)

type AuthService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// Login verifies the credentials and issues a signed access token.
//
// Unknown usernames, wrong passwords and deactivated accounts all collapse
// into ErrInvalidCredentials so the endpoint can't be used to probe which
// usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.AccessToken, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Soft-deleted users keep their row but can't log in.
	if !u.IsActive {
		l.Info("login attempt for inactive user", "user_id", u.ID)
		return nil, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("password verification failed", "user_id", u.ID)
		return nil, ErrInvalidCredentials
	}

	claims := jwtx.NewAccessClaims(u.ID, u.Username, u.Email, s.AccessTTL, s.Issuer, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, err
	}

	return &domain.AccessToken{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: s.AccessTTL,
	}, nil
}
