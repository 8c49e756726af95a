package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/scheduling"
)

// writeDomainError translates engine and repository errors into HTTP
// responses.  Domain rule violations keep their descriptive message;
// anything unrecognized is an internal failure whose detail is only
// exposed in development.
func writeDomainError(c echo.Context, err error, dev bool) error {
	switch {
	case errors.Is(err, scheduling.ErrOutsideOperatingHours),
		errors.Is(err, scheduling.ErrDurationOutOfPolicy),
		errors.Is(err, scheduling.ErrNoCapacity):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, scheduling.ErrNoTableAvailable),
		errors.Is(err, scheduling.ErrTerminalState),
		errors.Is(err, repository.ErrDuplicateTable):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrRestaurantNotFound),
		errors.Is(err, repository.ErrTableNotFound),
		errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrLockTimeout):
		// Transient contention on the restaurant's booking lock;
		// the client may simply retry.
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
	}
	if dev {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
