package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/ranchhand-app/ranchhand/internal/shared"
	"github.com/ranchhand-app/ranchhand/internal/users"
)

// UserSource is the slice of the user store login needs.
type UserSource interface {
	FindByUsername(ctx context.Context, username string) (*users.User, error)
	Get(ctx context.Context, id int64) (*users.User, error)
}

// Service wraps authentication business rules.
type Service struct {
	users UserSource
}

// NewService constructs a new Service.
func NewService(source UserSource) *Service {
	return &Service{users: source}
}

// Authenticate validates username/password credentials. Every failure
// mode reports the same error so callers cannot probe for accounts.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*users.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// CurrentUser resolves the account behind a session user id.
func (s *Service) CurrentUser(ctx context.Context, id int64) (*users.User, error) {
	return s.users.Get(ctx, id)
}
