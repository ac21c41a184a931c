package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/mercatohq/mercato/internal/mercato/domain"
	"github.com/mercatohq/mercato/internal/mercato/store"
	"github.com/mercatohq/mercato/pkg/cryptox"
	"github.com/mercatohq/mercato/pkg/idx"
	"github.com/mercatohq/mercato/pkg/slogx"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 50
	MinPasswordLen = 8
)

// WelcomeMailer sends the post-registration email. Implementations may be
// disabled entirely (no SMTP configured), in which case Enabled reports false.
type WelcomeMailer interface {
	Enabled() bool
	SendWelcome(ctx context.Context, to, username string) error
}

type UserService struct {
	Store  store.Store
	Mailer WelcomeMailer
}

type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a new active user with a hashed password. Username and
// email are checked for duplicates before the insert; the unique indexes
// still back us up against races.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	l := slogx.FromContext(ctx)

	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))

	if err := validateUsername(p.Username); err != nil {
		return domain.User{}, err
	}
	if err := validateEmail(p.Email); err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(p.Password); err != nil {
		return domain.User{}, err
	}

	if _, err := s.Store.Users().GetUserByUsername(ctx, p.Username); err == nil {
		return domain.User{}, fmt.Errorf("%w: username already registered", ErrConflict)
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, p.Email); err == nil {
		return domain.User{}, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     p.Username,
		Email:        p.Email,
		FirstName:    strings.TrimSpace(p.FirstName),
		LastName:     strings.TrimSpace(p.LastName),
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, fmt.Errorf("%w: username or email already registered", ErrConflict)
		}
		return domain.User{}, err
	}

	// Re-read so the caller sees the stored timestamps.
	created, err := s.Store.Users().GetUserByID(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}

	if s.Mailer != nil && s.Mailer.Enabled() {
		// Registration must not fail because the mail server is down.
		go func() {
			if err := s.Mailer.SendWelcome(context.WithoutCancel(ctx), created.Email, created.Username); err != nil {
				l.Warn("welcome email failed", "user_id", created.ID, "err", err)
			}
		}()
	}

	l.Info("user registered", "user_id", created.ID, "username", created.Username)
	return created, nil
}

// GetUser fetches a user by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ListUsers returns users matching the filter.
func (s *UserService) ListUsers(ctx context.Context, f store.UserFilter) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx, f)
}

// CountUsers returns the number of users matching the active filter.
func (s *UserService) CountUsers(ctx context.Context, isActive *bool) (int64, error) {
	return s.Store.Users().CountUsers(ctx, isActive)
}

type UpdateUserParams struct {
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
	IsActive  *bool
}

// UpdateUser applies a partial profile update. Profile fields and the
// password hash are written in one transaction so a failed password change
// can't leave a half-updated profile behind.
func (s *UserService) UpdateUser(ctx context.Context, userID string, p UpdateUserParams) (domain.User, error) {
	if p.Email != nil {
		normalized := strings.TrimSpace(strings.ToLower(*p.Email))
		if err := validateEmail(normalized); err != nil {
			return domain.User{}, err
		}
		p.Email = &normalized
	}
	if p.Password != nil {
		if err := validatePassword(*p.Password); err != nil {
			return domain.User{}, err
		}
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		if p.Email != nil {
			u.Email = *p.Email
		}
		if p.FirstName != nil {
			u.FirstName = strings.TrimSpace(*p.FirstName)
		}
		if p.LastName != nil {
			u.LastName = strings.TrimSpace(*p.LastName)
		}
		if p.IsActive != nil {
			u.IsActive = *p.IsActive
		}

		if err := tx.Users().UpdateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fmt.Errorf("%w: email already registered", ErrConflict)
			}
			return err
		}

		if p.Password != nil {
			hash, err := cryptox.HashPassword(*p.Password)
			if err != nil {
				return err
			}
			if err := tx.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
				return err
			}
		}

		updated, err = tx.Users().GetUserByID(ctx, userID)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	return updated, nil
}

// ToggleStatus flips the active flag and returns the updated user.
func (s *UserService) ToggleStatus(ctx context.Context, userID string) (domain.User, error) {
	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := tx.Users().SetUserActive(ctx, userID, !u.IsActive); err != nil {
			return err
		}
		updated, err = tx.Users().GetUserByID(ctx, userID)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	return updated, nil
}

// SoftDelete deactivates the user. The row stays in storage.
func (s *UserService) SoftDelete(ctx context.Context, userID string) error {
	return s.Store.Users().SetUserActive(ctx, userID, false)
}

// HardDelete removes the user permanently.
func (s *UserService) HardDelete(ctx context.Context, userID string) error {
	return s.Store.Users().DeleteUser(ctx, userID)
}

func validateUsername(username string) error {
	if len(username) < MinUsernameLen || len(username) > MaxUsernameLen {
		return fmt.Errorf("%w: username must be between %d and %d characters",
			ErrValidation, MinUsernameLen, MaxUsernameLen)
	}
	for _, r := range username {
		isLower := r >= 'a' && r <= 'z'
		isUpper := r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if !isLower && !isUpper && !isDigit && r != '_' && r != '-' && r != '.' {
			return fmt.Errorf("%w: username may only contain letters, digits, '_', '-' and '.'", ErrValidation)
		}
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLen)
	}
	return nil
}
