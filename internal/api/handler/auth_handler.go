package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wdream/freelancer-platform/internal/api/metrics"
	"github.com/wdream/freelancer-platform/internal/core/domain"
	"github.com/wdream/freelancer-platform/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and returns it with a token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	res, err := h.authService.Register(c.Request().Context(), domain.Registration{
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", authResult(err)).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()

	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		User:    toUserResponse(res.User),
		Token:   res.Token,
	})
}

// Login authenticates with email and password and returns a token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", authResult(err)).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		User:    toUserResponse(res.User),
		Token:   res.Token,
	})
}

// Me returns the authenticated identity.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userEnvelope
// @Failure      401  {object}  ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userEnvelope{Success: true, User: toUserResponse(user)})
}

// Logout is stateless: tokens stay valid until they expire and the client
// discards its copy.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Logged out successfully"})
}

func authResult(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	case errors.As(err, &ve),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrAccountDeactivated):
		return "rejected"
	default:
		return "error"
	}
}

func invalidBody() error {
	return domain.NewValidationError("Invalid request body")
}
