package scheduling

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Store is the persistence contract the engine depends on.  The
// production implementation lives in internal/repository; tests use
// an in-memory fake.  Table queries return rows ordered by capacity
// ascending so the allocator's best-fit rule holds by iteration
// order.
type Store interface {
	Restaurant(ctx context.Context, id uint64) (*model.Restaurant, error)
	ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error)
	ReservationsByPhone(ctx context.Context, phone string) ([]model.Reservation, error)
	TablesByCapacity(ctx context.Context, restaurantID uint64, minCapacity uint32) ([]model.Table, error)

	// ActiveForRestaurant returns reservations in an active status
	// whose window overlaps [start, end), for slot generation.
	ActiveForRestaurant(ctx context.Context, restaurantID uint64, start, end time.Time) ([]model.Reservation, error)

	// Booking runs fn inside one transaction holding the
	// restaurant's booking lock, so the conflict-check-then-write
	// sequence is atomic relative to other bookings on the same
	// restaurant.  fn returning an error rolls everything back.
	Booking(ctx context.Context, restaurantID uint64, fn func(tx BookingTx) error) error
}

// BookingTx exposes the reads and writes allowed inside a booking
// transaction.  All reads observe the locked snapshot.
type BookingTx interface {
	TablesByCapacity(ctx context.Context, restaurantID uint64, minCapacity uint32) ([]model.Table, error)

	// ActiveForTable returns active reservations on one table
	// overlapping [start, end), ignoring excludeID when non-zero
	// (the edit flow excludes the reservation being moved).
	ActiveForTable(ctx context.Context, tableID uint64, start, end time.Time, excludeID uint64) ([]model.Reservation, error)

	// WaitlistedOverlapping returns waitlist entries for the
	// restaurant overlapping [start, end), ordered by created_at
	// ascending (first come, first served).
	WaitlistedOverlapping(ctx context.Context, restaurantID uint64, start, end time.Time) ([]model.Reservation, error)

	InsertReservation(ctx context.Context, r *model.Reservation) error
	UpdateReservation(ctx context.Context, r *model.Reservation) error
}

// AvailabilityCache memoizes computed slot lists.  Implementations
// must be best-effort: a miss is always an acceptable answer and
// backend failures must never propagate to the caller.
type AvailabilityCache interface {
	GetSlots(ctx context.Context, key string) ([]string, bool)
	SetSlots(ctx context.Context, key string, slots []string)

	// Invalidate drops every cached slot list for the restaurant
	// and date, whatever the party size and duration.
	Invalidate(ctx context.Context, restaurantID uint64, date string)
}

// Notifier delivers customer-facing messages.  Calls are
// fire-and-forget from the engine's point of view; implementations
// log their own failures and must never block a booking.
type Notifier interface {
	BookingOutcome(ctx context.Context, r *model.Reservation, restaurantName string)
	PromotionAlert(ctx context.Context, r *model.Reservation, restaurantName string)
}
