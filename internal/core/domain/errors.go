package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrJobNotFound        = errors.New("job not found")
	ErrProposalExists     = errors.New("proposal already exists")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidID          = errors.New("invalid id")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// FieldError describes one failed field rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when input fails one or more field rules.
// Message is the client-facing summary.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// NewValidationError builds a ValidationError with the given summary and fields.
func NewValidationError(msg string, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}

// AuthErrorKind classifies why a token was rejected.
type AuthErrorKind string

const (
	AuthMissing          AuthErrorKind = "missing"
	AuthMalformed        AuthErrorKind = "malformed"
	AuthInvalidSignature AuthErrorKind = "invalid_signature"
	AuthExpired          AuthErrorKind = "expired"
)

// AuthError is returned by token verification.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "auth: " + string(e.Kind)
	}
	return "auth: " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error { return e.Err }
