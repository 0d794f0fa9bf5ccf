package ports

import (
	"context"

	"github.com/wdream/freelancer-platform/internal/core/domain"
)

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, in domain.Registration) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context, id string) (*domain.User, error)
}

// TokenService issues and verifies signed identity tokens.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the identity id embedded in token or a *domain.AuthError.
	Verify(token string) (string, error)
}

// LoginThrottle limits repeated failed logins per email. Implementations
// may be backed by an external store.
type LoginThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
