package ports

import (
	"context"

	"github.com/wdream/freelancer-platform/internal/core/domain"
)

// UserRepository defines the persistence operations for accounts.
type UserRepository interface {
	// FindByEmail returns the user including its password hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns the user without its password hash.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create persists a new user. Duplicate emails yield domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// IncrementCounter atomically adds delta to one of the user's counters.
	IncrementCounter(ctx context.Context, id string, counter domain.UserCounter, delta int) error
}
