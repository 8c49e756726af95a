package handler

import (
	"net/http" // HTTP status codes
	"strconv"  // parsing query parameters
	"time"     // parsing the date parameter

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/restaurant-table-reservation/internal/scheduling" // scheduling engine
)

// AvailabilityHandler serves the open-slot query.  It delegates the
// actual computation (and its memoization) to the scheduling engine.
type AvailabilityHandler struct {
	Engine *scheduling.Engine
	Dev    bool
}

// NewAvailabilityHandler constructs an AvailabilityHandler.  The
// engine must be non-nil.
func NewAvailabilityHandler(engine *scheduling.Engine, dev bool) *AvailabilityHandler {
	if engine == nil {
		panic("nil engine passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Engine: engine, Dev: dev}
}

// Check handles GET /api/v1/availability/check.  Query parameters:
// restaurantId and partySize are required; date defaults to today and
// duration to 60 minutes.  It responds with the queried date and the
// list of open "HH:MM" start times.
func (h *AvailabilityHandler) Check(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.QueryParam("restaurantId"), 10, 64)
	if err != nil || restaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or missing restaurantId"})
	}
	partySize, err := strconv.ParseUint(c.QueryParam("partySize"), 10, 32)
	if err != nil || partySize == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or missing partySize"})
	}

	duration := 60 // default to 1 hour
	if raw := c.QueryParam("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid duration"})
		}
	}

	date := h.Engine.Today()
	if raw := c.QueryParam("date"); raw != "" {
		date, err = time.ParseInLocation("2006-01-02", raw, h.Engine.Location())
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
		}
	}

	slots, err := h.Engine.CheckAvailability(
		c.Request().Context(), restaurantID, uint32(partySize),
		time.Duration(duration)*time.Minute, date,
	)
	if err != nil {
		return writeDomainError(c, err, h.Dev)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":           date.Format("2006-01-02"),
		"partySize":      partySize,
		"availableSlots": slots,
	})
}
