// Package scheduling implements the reservation decision engine:
// operating-hours resolution, duration policy, conflict detection,
// best-fit table allocation, availability slot generation and
// waitlist promotion.  The package performs no I/O of its own; all
// persistence, caching and notification happens through the narrow
// collaborator interfaces in store.go.
package scheduling

import "errors"

// ErrInvalidTimeFormat is returned when a restaurant's stored
// time-of-day value cannot be parsed.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// ErrOutsideOperatingHours is returned when a requested window does
// not lie within the restaurant's operating window for its date.
var ErrOutsideOperatingHours = errors.New("outside operating hours")

// ErrDurationOutOfPolicy is returned when a requested duration is
// below the fixed minimum or above the peak/off-peak cap in effect at
// the start time.
var ErrDurationOutOfPolicy = errors.New("duration out of policy")

// ErrNoCapacity is returned when no table in the restaurant is large
// enough for the party, regardless of time.
var ErrNoCapacity = errors.New("no table can accommodate this party size")

// ErrNoTableAvailable is returned when tables with sufficient
// capacity exist but every candidate is busy for the requested window
// and waitlisting was not requested.
var ErrNoTableAvailable = errors.New("no table available for the requested time")

// ErrTerminalState is returned when an update or cancellation targets
// a reservation that is already completed or cancelled.
var ErrTerminalState = errors.New("reservation is in a terminal state")
