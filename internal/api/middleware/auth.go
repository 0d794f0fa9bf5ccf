package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wdream/freelancer-platform/internal/core/domain"
)

// userKey is the echo context key holding the authenticated *domain.User.
const userKey = "auth.user"

// TokenVerifier resolves a bearer token to an identity id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// IdentityLoader loads the identity a verified token refers to.
type IdentityLoader interface {
	CurrentUser(ctx context.Context, id string) (*domain.User, error)
}

// Auth requires a valid bearer token naming an existing, active identity and
// attaches that identity to the request context.
func Auth(tokens TokenVerifier, users IdentityLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token provided")
			}

			id, err := tokens.Verify(token)
			if err != nil {
				c.Logger().Debugf("token rejected: %v", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}

			user, err := users.CurrentUser(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
				}
				return err
			}
			if !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "Account is deactivated")
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the identity attached by Auth.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(userKey).(*domain.User)
	return u, ok && u != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
