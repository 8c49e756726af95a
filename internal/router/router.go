package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/restaurant-table-reservation/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that do not belong to the versioned
// API surface.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the reservation API under /api/v1.  All
// endpoints are public; rate limiting is applied at the Echo instance
// level before routing.
func RegisterAPI(e *echo.Echo, r *handler.RestaurantHandler, a *handler.AvailabilityHandler, res *handler.ReservationHandler) {
	v1 := e.Group("/api/v1")

	// Restaurant and table management.
	v1.POST("/restaurants", r.Create)
	v1.GET("/restaurants/:id", r.Get)
	v1.POST("/restaurants/:id/tables", r.CreateTable)
	v1.GET("/restaurants/:id/tables", r.ListTables)

	// Availability search.
	v1.GET("/availability/check", a.Check)

	// Reservation lifecycle.
	v1.POST("/reservations", res.Create)
	v1.PATCH("/reservations/:id", res.Update)
	v1.DELETE("/reservations/:id", res.Cancel)
	v1.GET("/reservations/customer/:phone", res.ByCustomer)
}
