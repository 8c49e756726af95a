package model

import "time"

// ReservationStatus is the closed set of states a reservation moves
// through.  The zero value is not a valid status.  Completed and
// cancelled are terminal; waitlist entries reference a placeholder
// table but never hold it until promoted.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusSeated    ReservationStatus = "seated"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusWaitlist  ReservationStatus = "waitlist"
)

// Valid reports whether s is one of the known reservation states.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusSeated,
		StatusCompleted, StatusCancelled, StatusWaitlist:
		return true
	}
	return false
}

// Active reports whether a reservation in this state holds its table.
// Only active reservations participate in the no-overlap invariant;
// cancelled, completed and waitlisted entries never block a table.
func (s ReservationStatus) Active() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusSeated:
		return true
	case StatusCompleted, StatusCancelled, StatusWaitlist:
		return false
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s ReservationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ActiveStatuses lists the states that block a table, in a fixed
// order suitable for SQL IN clauses.
func ActiveStatuses() []ReservationStatus {
	return []ReservationStatus{StatusPending, StatusConfirmed, StatusSeated}
}

// Reservation is a booking of one table for a party over a concrete
// time window.  StartTime and EndTime are absolute UTC timestamps
// forming the half-open interval [StartTime, EndTime).  CreatedAt
// orders waitlist entries first-come-first-served.
//
// Fields:
//  ID            – primary key identifier.
//  RestaurantID  – owning restaurant.
//  TableID       – assigned table; for waitlist entries this is a
//                  capacity-compatible placeholder, not a held table.
//  CustomerName  – name the booking was made under.
//  CustomerPhone – contact number for notifications.
//  PartySize     – number of guests (≥ 1).
//  StartTime     – inclusive start of the window.
//  EndTime       – exclusive end of the window.
//  Status        – current lifecycle state.
//  CreatedAt     – creation timestamp (waitlist FIFO key).
//  UpdatedAt     – last modification timestamp.
type Reservation struct {
	ID            uint64            // reservations.id
	RestaurantID  uint64            // reservations.restaurant_id
	TableID       uint64            // reservations.table_id
	CustomerName  string            // reservations.customer_name
	CustomerPhone string            // reservations.customer_phone
	PartySize     uint32            // reservations.party_size
	StartTime     time.Time         // reservations.start_time
	EndTime       time.Time         // reservations.end_time
	Status        ReservationStatus // reservations.status
	CreatedAt     time.Time         // reservations.created_at
	UpdatedAt     time.Time         // reservations.updated_at
}
