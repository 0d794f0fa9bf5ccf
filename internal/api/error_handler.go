package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wdream/freelancer-platform/internal/api/handler"
	"github.com/wdream/freelancer-platform/internal/core/domain"
)

const genericErrorMessage = "Something went wrong!"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors and hides their detail in production.
//   - Renders every failure as {success:false, message, ...}.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c, production)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, production bool) (int, handler.ErrorResponse) {
	resp := handler.ErrorResponse{Success: false}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Message = ve.Message
		resp.Errors = ve.Fields
		return http.StatusBadRequest, resp
	}

	var ae *domain.AuthError
	if errors.As(err, &ae) {
		resp.Message = "Not authorized, token failed"
		return http.StatusUnauthorized, resp
	}

	// Echo's own errors: router 404/405, bind failures, and the gates.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			if errors.Is(he, echo.ErrNotFound) {
				resp.Message = "Route not found"
				resp.Path = c.Request().URL.Path
				return he.Code, resp
			}
		case http.StatusInternalServerError:
			return unexpected(err, log, c, production)
		}
		resp.Message = fmt.Sprintf("%v", he.Message)
		return he.Code, resp
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		resp.Message = "Invalid email or password"
		return http.StatusUnauthorized, resp
	case errors.Is(err, domain.ErrAccountDeactivated):
		resp.Message = "Account is deactivated"
		return http.StatusUnauthorized, resp
	case errors.Is(err, domain.ErrTooManyAttempts):
		resp.Message = "Too many failed login attempts, please try again later"
		return http.StatusTooManyRequests, resp
	case errors.Is(err, domain.ErrForbidden):
		resp.Message = "Not authorized to modify this job"
		return http.StatusForbidden, resp
	case errors.Is(err, domain.ErrJobNotFound):
		resp.Message = "Job not found"
		return http.StatusNotFound, resp
	case errors.Is(err, domain.ErrUserNotFound):
		resp.Message = "User not found"
		return http.StatusNotFound, resp
	case errors.Is(err, domain.ErrInvalidID):
		resp.Message = "Invalid job ID"
		return http.StatusBadRequest, resp
	case errors.Is(err, domain.ErrProposalExists):
		resp.Message = "You have already submitted a proposal for this job"
		return http.StatusConflict, resp
	case errors.Is(err, domain.ErrEmailTaken):
		resp.Message = "User with this email already exists"
		return http.StatusBadRequest, resp
	}

	return unexpected(err, log, c, production)
}

// unexpected logs the real cause and returns a generic message. Outside
// production the cause is echoed back to ease debugging.
func unexpected(err error, log zerolog.Logger, c echo.Context, production bool) (int, handler.ErrorResponse) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	resp := handler.ErrorResponse{Success: false, Message: genericErrorMessage}
	if !production {
		resp.Error = err.Error()
	}
	return http.StatusInternalServerError, resp
}
