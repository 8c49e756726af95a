package scheduling

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Engine ties the decision components to their collaborators.  All
// methods are request-scoped; the engine owns no goroutines and no
// mutable state beyond its dependencies.
type Engine struct {
	store  Store
	cache  AvailabilityCache // nil disables memoization
	notify Notifier          // nil disables notifications
	clock  Clock
	loc    *time.Location
}

// NewEngine constructs an Engine.  store and clock must be non-nil;
// cache and notify may be nil and are then skipped.  loc is the
// timezone operating hours and slot labels are expressed in.
func NewEngine(store Store, cache AvailabilityCache, notify Notifier, clock Clock, loc *time.Location) *Engine {
	if store == nil || clock == nil {
		panic("nil store or clock passed to NewEngine")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{store: store, cache: cache, notify: notify, clock: clock, loc: loc}
}

// Location returns the restaurant-local time zone the engine operates in.
func (e *Engine) Location() *time.Location { return e.loc }

// Today returns the current time in the engine's local time zone.
func (e *Engine) Today() time.Time { return e.clock.Now().In(e.loc) }

// BookingRequest carries the fields of a create-reservation call.
type BookingRequest struct {
	RestaurantID  uint64
	PartySize     uint32
	Start         time.Time
	Duration      time.Duration
	CustomerName  string
	CustomerPhone string

	// AllowWaitlist turns a fully-booked outcome into a waitlist
	// entry instead of ErrNoTableAvailable.
	AllowWaitlist bool
}

// ReservationChanges carries the mutable fields of an update call.
// Nil pointers leave the current value untouched.
type ReservationChanges struct {
	Start         *time.Time
	Duration      *time.Duration
	PartySize     *uint32
	CustomerName  *string
	CustomerPhone *string
}

// slotCacheKey builds the memoization key for one availability query.
func slotCacheKey(restaurantID uint64, date string, partySize uint32, duration time.Duration) string {
	return fmt.Sprintf("availability:%d:%s:%d:%d", restaurantID, date, partySize, int(duration.Minutes()))
}

// CheckAvailability returns the open "HH:MM" start times on date for
// a party of partySize staying duration.  Results are memoized per
// (restaurant, date, party size, duration); a failed or absent cache
// degrades to direct computation.
func (e *Engine) CheckAvailability(ctx context.Context, restaurantID uint64, partySize uint32, duration time.Duration, date time.Time) ([]string, error) {
	restaurant, err := e.store.Restaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	day := date.In(e.loc).Format("2006-01-02")
	key := slotCacheKey(restaurantID, day, partySize, duration)
	if e.cache != nil {
		if slots, ok := e.cache.GetSlots(ctx, key); ok {
			return slots, nil
		}
	}

	slots, err := e.generateSlots(ctx, restaurant, partySize, duration, date)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.SetSlots(ctx, key, slots)
	}
	return slots, nil
}

// CreateReservation validates the request against operating hours and
// the duration policy, then assigns the best-fit free table inside
// the restaurant's booking transaction.  When every candidate is busy
// the request either becomes a waitlist entry (AllowWaitlist) or
// fails with ErrNoTableAvailable.  Validation failures never reach
// the store's write path.
func (e *Engine) CreateReservation(ctx context.Context, req BookingRequest) (*model.Reservation, error) {
	restaurant, err := e.store.Restaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	w := NewWindow(req.Start, req.Duration)
	if err := e.validateWindow(restaurant, w); err != nil {
		return nil, err
	}

	res := &model.Reservation{
		RestaurantID:  req.RestaurantID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PartySize:     req.PartySize,
		StartTime:     w.Start.UTC(),
		EndTime:       w.End.UTC(),
	}

	err = e.store.Booking(ctx, req.RestaurantID, func(tx BookingTx) error {
		table, err := allocateTable(ctx, tx, req.RestaurantID, req.PartySize, w, 0)
		if err != nil {
			return err
		}
		switch {
		case table != nil:
			res.TableID = table.ID
			res.Status = model.StatusConfirmed
		case req.AllowWaitlist:
			placeholder, err := placeholderTable(ctx, tx, req.RestaurantID, req.PartySize)
			if err != nil {
				return err
			}
			res.TableID = placeholder.ID
			res.Status = model.StatusWaitlist
		default:
			return ErrNoTableAvailable
		}
		return tx.InsertReservation(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	e.invalidateDates(ctx, req.RestaurantID, res.StartTime)
	e.sendBookingOutcome(res, restaurant.Name)
	return res, nil
}

// UpdateReservation applies changes to an existing reservation,
// re-validating the new window and re-running table allocation with
// the reservation itself excluded from conflict checks, so an edit
// never conflicts with its own previous window.  The table may move
// as a result.  Terminal reservations cannot be edited.
func (e *Engine) UpdateReservation(ctx context.Context, id uint64, changes ReservationChanges) (*model.Reservation, error) {
	res, err := e.store.ReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status.Terminal() {
		return nil, ErrTerminalState
	}
	restaurant, err := e.store.Restaurant(ctx, res.RestaurantID)
	if err != nil {
		return nil, err
	}

	oldStart := res.StartTime
	start := res.StartTime
	duration := res.EndTime.Sub(res.StartTime)
	if changes.Start != nil {
		start = *changes.Start
	}
	if changes.Duration != nil {
		duration = *changes.Duration
	}
	if changes.PartySize != nil {
		res.PartySize = *changes.PartySize
	}
	if changes.CustomerName != nil {
		res.CustomerName = *changes.CustomerName
	}
	if changes.CustomerPhone != nil {
		res.CustomerPhone = *changes.CustomerPhone
	}

	w := NewWindow(start, duration)
	if err := e.validateWindow(restaurant, w); err != nil {
		return nil, err
	}
	res.StartTime = w.Start.UTC()
	res.EndTime = w.End.UTC()

	err = e.store.Booking(ctx, res.RestaurantID, func(tx BookingTx) error {
		if res.Status == model.StatusWaitlist {
			// Waitlist entries hold no table; refresh the
			// placeholder in case the party size changed.
			placeholder, err := placeholderTable(ctx, tx, res.RestaurantID, res.PartySize)
			if err != nil {
				return err
			}
			res.TableID = placeholder.ID
			return tx.UpdateReservation(ctx, res)
		}
		table, err := allocateTable(ctx, tx, res.RestaurantID, res.PartySize, w, res.ID)
		if err != nil {
			return err
		}
		if table == nil {
			return ErrNoTableAvailable
		}
		res.TableID = table.ID
		return tx.UpdateReservation(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	e.invalidateDates(ctx, res.RestaurantID, oldStart, res.StartTime)
	return res, nil
}

// CancelReservation moves the reservation to its terminal cancelled
// state and scans the waitlist for the vacated table exactly once.
// Waitlisted entries overlapping the vacated window are considered in
// created-at order and the first whose own window fits on the vacated
// table is promoted to confirmed; at most one entry is promoted per
// cancellation.
func (e *Engine) CancelReservation(ctx context.Context, id uint64) error {
	res, err := e.store.ReservationByID(ctx, id)
	if err != nil {
		return err
	}
	if res.Status.Terminal() {
		return ErrTerminalState
	}
	restaurant, err := e.store.Restaurant(ctx, res.RestaurantID)
	if err != nil {
		return err
	}

	wasActive := res.Status.Active()
	vacated := Window{Start: res.StartTime, End: res.EndTime}
	var promoted *model.Reservation

	err = e.store.Booking(ctx, res.RestaurantID, func(tx BookingTx) error {
		res.Status = model.StatusCancelled
		if err := tx.UpdateReservation(ctx, res); err != nil {
			return err
		}
		if !wasActive {
			// Cancelling a waitlist entry frees no table.
			return nil
		}
		entry, err := promoteWaitlisted(ctx, tx, res.RestaurantID, res.TableID, vacated)
		if err != nil {
			return err
		}
		promoted = entry
		return nil
	})
	if err != nil {
		return err
	}

	dates := []time.Time{res.StartTime}
	if promoted != nil {
		// A promoted entry crossing midnight relative to the
		// vacated window lives under its own cache date.
		dates = append(dates, promoted.StartTime)
	}
	e.invalidateDates(ctx, res.RestaurantID, dates...)
	e.sendBookingOutcome(res, restaurant.Name)
	if promoted != nil {
		e.sendPromotionAlert(promoted, restaurant.Name)
	}
	return nil
}

// CustomerReservations lists every reservation made under a phone
// number, newest first.
func (e *Engine) CustomerReservations(ctx context.Context, phone string) ([]model.Reservation, error) {
	return e.store.ReservationsByPhone(ctx, phone)
}

// validateWindow checks the window against operating hours and the
// duration policy for its start date.
func (e *Engine) validateWindow(restaurant *model.Restaurant, w Window) error {
	operating, err := ResolveOperatingWindow(restaurant.OpeningTime, restaurant.ClosingTime, w.Start, e.loc)
	if err != nil {
		return err
	}
	if !operating.Contains(w) {
		// A window before opening may belong to the previous
		// day's overnight stretch: 01:00 on an 18:00–02:00
		// restaurant is inside the window anchored yesterday.
		prev, err := ResolveOperatingWindow(restaurant.OpeningTime, restaurant.ClosingTime, w.Start.Add(-24*time.Hour), e.loc)
		if err != nil || !prev.Contains(w) {
			return ErrOutsideOperatingHours
		}
	}
	return CheckDuration(w.Start.In(e.loc), w.Duration())
}

// invalidateDates drops cached slot lists for every distinct local
// date among the given timestamps.
func (e *Engine) invalidateDates(ctx context.Context, restaurantID uint64, times ...time.Time) {
	if e.cache == nil {
		return
	}
	seen := make(map[string]struct{}, len(times))
	for _, t := range times {
		day := t.In(e.loc).Format("2006-01-02")
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		e.cache.Invalidate(ctx, restaurantID, day)
	}
}

// sendBookingOutcome notifies the customer of their reservation's
// current status without blocking the caller.
func (e *Engine) sendBookingOutcome(res *model.Reservation, restaurantName string) {
	if e.notify == nil {
		return
	}
	r := *res
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("notify: booking outcome panicked: %v", rec)
			}
		}()
		e.notify.BookingOutcome(ctx, &r, restaurantName)
	}()
}

func (e *Engine) sendPromotionAlert(res *model.Reservation, restaurantName string) {
	if e.notify == nil {
		return
	}
	r := *res
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("notify: promotion alert panicked: %v", rec)
			}
		}()
		e.notify.PromotionAlert(ctx, &r, restaurantName)
	}()
}
