package handler

import (
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters
	"time"     // anchor date for validating hour strings

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/restaurant-table-reservation/internal/model"      // domain models
	"github.com/iliyamo/restaurant-table-reservation/internal/repository" // data access layer
	"github.com/iliyamo/restaurant-table-reservation/internal/scheduling" // operating-hours validation
)

// RestaurantHandler manages restaurants and their tables.  These are
// plain CRUD operations against the repository; only the hour strings
// need domain validation before they hit the database.
type RestaurantHandler struct {
	Restaurants *repository.RestaurantRepo
	Tables      *repository.TableRepo
	Loc         *time.Location
	Dev         bool
}

// NewRestaurantHandler constructs a RestaurantHandler.
func NewRestaurantHandler(restaurants *repository.RestaurantRepo, tables *repository.TableRepo, loc *time.Location, dev bool) *RestaurantHandler {
	if restaurants == nil || tables == nil {
		panic("nil repository passed to NewRestaurantHandler")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &RestaurantHandler{Restaurants: restaurants, Tables: tables, Loc: loc, Dev: dev}
}

// createRestaurantRequest is the payload of POST /restaurants.
type createRestaurantRequest struct {
	Name        string `json:"name"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
}

// createTableRequest is the payload of POST /restaurants/:id/tables.
type createTableRequest struct {
	TableNumber uint32 `json:"tableNumber"`
	Capacity    uint32 `json:"capacity"`
}

// restaurantResponse is the wire form of a restaurant.
type restaurantResponse struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
}

// tableResponse is the wire form of a table.
type tableResponse struct {
	ID           uint64 `json:"id"`
	RestaurantID uint64 `json:"restaurantId"`
	TableNumber  uint32 `json:"tableNumber"`
	Capacity     uint32 `json:"capacity"`
}

func toTableResponse(t *model.Table) tableResponse {
	return tableResponse{ID: t.ID, RestaurantID: t.RestaurantID, TableNumber: t.TableNumber, Capacity: t.Capacity}
}

// Create handles POST /api/v1/restaurants.  Opening and closing hours
// must be "HH:MM" or "HH:MM:SS"; a closing time at or before the
// opening time is accepted and means closing on the next day.
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req createRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" || req.OpeningTime == "" || req.ClosingTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, openingTime and closingTime are required"})
	}
	// Anchoring to an arbitrary date validates the hour strings.
	if _, err := scheduling.ResolveOperatingWindow(req.OpeningTime, req.ClosingTime, time.Now(), h.Loc); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "openingTime and closingTime must be HH:MM or HH:MM:SS"})
	}

	restaurant, err := h.Restaurants.Create(c.Request().Context(), req.Name, req.OpeningTime, req.ClosingTime)
	if err != nil {
		return writeDomainError(c, err, h.Dev)
	}
	return c.JSON(http.StatusCreated, restaurantResponse{
		ID:          restaurant.ID,
		Name:        restaurant.Name,
		OpeningTime: restaurant.OpeningTime,
		ClosingTime: restaurant.ClosingTime,
	})
}

// Get handles GET /api/v1/restaurants/:id.
func (h *RestaurantHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	restaurant, err := h.Restaurants.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err, h.Dev)
	}
	return c.JSON(http.StatusOK, restaurantResponse{
		ID:          restaurant.ID,
		Name:        restaurant.Name,
		OpeningTime: restaurant.OpeningTime,
		ClosingTime: restaurant.ClosingTime,
	})
}

// CreateTable handles POST /api/v1/restaurants/:id/tables.  The table
// number must be unique within the restaurant; a duplicate yields 409.
func (h *RestaurantHandler) CreateTable(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	var req createTableRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.TableNumber == 0 || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tableNumber and capacity must be at least 1"})
	}
	if _, err := h.Restaurants.GetByID(c.Request().Context(), restaurantID); err != nil {
		return writeDomainError(c, err, h.Dev)
	}

	table, err := h.Tables.Create(c.Request().Context(), restaurantID, req.TableNumber, req.Capacity)
	if err != nil {
		return writeDomainError(c, err, h.Dev)
	}
	return c.JSON(http.StatusCreated, toTableResponse(table))
}

// ListTables handles GET /api/v1/restaurants/:id/tables.
func (h *RestaurantHandler) ListTables(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	if _, err := h.Restaurants.GetByID(c.Request().Context(), restaurantID); err != nil {
		return writeDomainError(c, err, h.Dev)
	}
	tables, err := h.Tables.ListByRestaurant(c.Request().Context(), restaurantID)
	if err != nil {
		return writeDomainError(c, err, h.Dev)
	}
	out := make([]tableResponse, 0, len(tables))
	for i := range tables {
		out = append(out, toTableResponse(&tables[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"tables": out})
}
