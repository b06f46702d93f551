// Package httperr maps store rejection reasons onto HTTP status codes at
// the handler boundary.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinexa/backoffice/internal/store"
)

// From converts a service error into an echo HTTP error: version conflicts
// become 409, missing entities 404, everything else 400.
func From(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, store.ErrVersionConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}
