package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC admits only identities whose role is in allowedRoles. It must run
// after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("User role '%s' is not authorized to access this route", user.Role))
			}
			return next(c)
		}
	}
}
