package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wdream/freelancer-platform/internal/api/middleware"
	"github.com/wdream/freelancer-platform/internal/core/domain"
)

// currentUser returns the identity attached by the Auth middleware. A miss
// means the route was registered without Auth.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}
	return user, nil
}
