package handler

import (
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters
	"time"     // RFC3339 timestamp parsing

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/restaurant-table-reservation/internal/model"      // domain models
	"github.com/iliyamo/restaurant-table-reservation/internal/scheduling" // scheduling engine
)

// ReservationHandler exposes the booking lifecycle over HTTP.  All
// conflict detection and table allocation happens in the engine; the
// handler only translates between JSON and engine calls.
type ReservationHandler struct {
	Engine *scheduling.Engine
	Dev    bool
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(engine *scheduling.Engine, dev bool) *ReservationHandler {
	if engine == nil {
		panic("nil engine passed to NewReservationHandler")
	}
	return &ReservationHandler{Engine: engine, Dev: dev}
}

// createReservationRequest is the payload of POST /reservations.
type createReservationRequest struct {
	RestaurantID  uint64 `json:"restaurantId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	PartySize     uint32 `json:"partySize"`
	StartTimeISO  string `json:"startTimeISO"`
	Duration      int    `json:"duration"`
	AllowWaitlist bool   `json:"allowWaitlist"`
}

// updateReservationRequest is the payload of PATCH /reservations/:id.
// Absent fields leave the stored value untouched.
type updateReservationRequest struct {
	CustomerName  *string `json:"customerName"`
	CustomerPhone *string `json:"customerPhone"`
	PartySize     *uint32 `json:"partySize"`
	StartTimeISO  *string `json:"startTimeISO"`
	Duration      *int    `json:"duration"`
}

// reservationResponse is the wire form of a reservation.  Times are
// RFC 3339 in UTC.
type reservationResponse struct {
	ID            uint64 `json:"id"`
	RestaurantID  uint64 `json:"restaurantId"`
	TableID       uint64 `json:"tableId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	PartySize     uint32 `json:"partySize"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

func toReservationResponse(r *model.Reservation) reservationResponse {
	return reservationResponse{
		ID:            r.ID,
		RestaurantID:  r.RestaurantID,
		TableID:       r.TableID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		PartySize:     r.PartySize,
		StartTime:     r.StartTime.UTC().Format(time.RFC3339),
		EndTime:       r.EndTime.UTC().Format(time.RFC3339),
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /api/v1/reservations.  A fully booked window
// yields 409 unless allowWaitlist is set, in which case the entry is
// parked on the waitlist and returned with that status.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RestaurantID == 0 || req.CustomerName == "" || req.CustomerPhone == "" || req.PartySize == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurantId, customerName, customerPhone and partySize are required"})
	}
	if req.Duration <= 0 {
		req.Duration = 60
	}
	start, err := time.Parse(time.RFC3339, req.StartTimeISO)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date format in startTimeISO"})
	}

	res, err := h.Engine.CreateReservation(c.Request().Context(), scheduling.BookingRequest{
		RestaurantID:  req.RestaurantID,
		PartySize:     req.PartySize,
		Start:         start,
		Duration:      time.Duration(req.Duration) * time.Minute,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		AllowWaitlist: req.AllowWaitlist,
	})
	if err != nil {
		return writeDomainError(c, err, h.Dev)
	}
	return c.JSON(http.StatusCreated, toReservationResponse(res))
}

// Update handles PATCH /api/v1/reservations/:id.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req updateReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	changes := scheduling.ReservationChanges{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PartySize:     req.PartySize,
	}
	if req.StartTimeISO != nil {
		start, err := time.Parse(time.RFC3339, *req.StartTimeISO)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date format in startTimeISO"})
		}
		changes.Start = &start
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid duration"})
		}
		d := time.Duration(*req.Duration) * time.Minute
		changes.Duration = &d
	}

	res, err := h.Engine.UpdateReservation(c.Request().Context(), id, changes)
	if err != nil {
		return writeDomainError(c, err, h.Dev)
	}
	return c.JSON(http.StatusOK, toReservationResponse(res))
}

// Cancel handles DELETE /api/v1/reservations/:id.  Cancelling an
// active reservation frees its table and may promote the oldest
// compatible waitlist entry onto it.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Engine.CancelReservation(c.Request().Context(), id); err != nil {
		return writeDomainError(c, err, h.Dev)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}

// ByCustomer handles GET /api/v1/reservations/customer/:phone and
// returns the customer's reservations, most recent first.
func (h *ReservationHandler) ByCustomer(c echo.Context) error {
	phone := c.Param("phone")
	if phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing phone"})
	}
	list, err := h.Engine.CustomerReservations(c.Request().Context(), phone)
	if err != nil {
		return writeDomainError(c, err, h.Dev)
	}
	out := make([]reservationResponse, 0, len(list))
	for i := range list {
		out = append(out, toReservationResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}
