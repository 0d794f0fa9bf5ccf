package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/wdream/freelancer-platform/internal/core/domain"
	"github.com/wdream/freelancer-platform/internal/core/ports"
)

// passwordCost is the bcrypt work factor applied to new passwords.
const passwordCost = 10

// dummyHash is compared against when the email is unknown so that a miss
// costs the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equaliser"), passwordCost)

// AuthService implements registration, login and identity lookup.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

// NewAuthService wires the service. throttle may be nil to disable login
// throttling.
func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, throttle ports.LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, throttle: throttle, log: log}
}

// Register validates the input, rejects taken emails, hashes the password
// and persists a new active account.
func (s *AuthService) Register(ctx context.Context, in domain.Registration) (*ports.AuthResult, error) {
	if err := domain.ValidateRegistration(in); err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(in.Email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, emailTakenError()
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		Profile: domain.Profile{
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
		},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	switch in.Role {
	case domain.RoleClient:
		user.ClientProfile = &domain.ClientProfile{}
	case domain.RoleFreelancer:
		user.FreelancerProfile = &domain.FreelancerProfile{Skills: []string{}}
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, emailTakenError()
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return &ports.AuthResult{User: created, Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("Please provide email and password")
	}

	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		} else if !ok {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	user.PasswordHash = ""
	return &ports.AuthResult{User: user, Token: token}, nil
}

// CurrentUser loads the identity attached to a verified token.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func emailTakenError() error {
	return domain.NewValidationError("User with this email already exists",
		domain.FieldError{Field: "email", Message: "already registered"})
}
