package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/messmate/backend/internal/service"
)

// httpError maps service sentinels to status codes. Validation and
// business errors carry their message; anything unexpected is surfaced
// as a generic 500 so storage details never reach the client.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInsufficientCredits):
		return echo.NewHTTPError(http.StatusPaymentRequired, err.Error())
	case errors.Is(err, service.ErrPlanAlreadyActive),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
