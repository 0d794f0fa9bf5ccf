package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wdream/freelancer-platform/internal/core/domain"
)

const (
	defaultTokenTTL = 30 * 24 * time.Hour
	tokenIssuer     = "freelancer-platform"
)

// tokenClaims is the payload of an identity token.
type tokenClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens. There is no
// revocation list: a token stays valid until it expires.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token embedding userID that expires after the configured TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks the signature and expiry of token and returns the embedded
// identity id. Every failure is a *domain.AuthError.
func (s *TokenService) Verify(token string) (string, error) {
	if token == "" {
		return "", &domain.AuthError{Kind: domain.AuthMissing}
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", &domain.AuthError{Kind: classifyTokenError(err), Err: err}
	}
	if !parsed.Valid || claims.UserID == "" {
		return "", &domain.AuthError{Kind: domain.AuthMalformed, Err: errors.New("token carries no identity")}
	}
	return claims.UserID, nil
}

func classifyTokenError(err error) domain.AuthErrorKind {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.AuthExpired
	case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return domain.AuthMalformed
	default:
		return domain.AuthInvalidSignature
	}
}
