package handler

import (
	"net/http" // HTTP status codes
	"time"     // health-check timestamp

	"github.com/labstack/echo/v4" // Echo web framework
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.  It
// reports a JSON payload with the current UTC timestamp.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "ok",
		"message":   "Reservation service is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
