// Package httperr turns service errors into echo HTTP errors for both portals.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/internal/domain"
)

func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// From logs err under event and returns the matching echo error. Client
// errors carry the service message; server errors hide it.
func From(l *slog.Logger, event string, err error) *echo.HTTPError {
	code := Status(err)
	if code >= http.StatusInternalServerError {
		l.Error(event, "status", code, "reason", "internal error", "error", err)
		return echo.NewHTTPError(code, "internal error")
	}
	l.Warn(event, "status", code, "reason", http.StatusText(code), "error", err)
	return echo.NewHTTPError(code, err.Error())
}

// BadRequest logs and returns a 400 that did not come from a service.
func BadRequest(l *slog.Logger, event, reason string, err error) *echo.HTTPError {
	l.Warn(event, "status", http.StatusBadRequest, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, reason)
}

// ParamID reads a positive integer path parameter.
func ParamID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return uint(id), nil
}
