package scheduling

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

const (
	// slotStep is the cadence of candidate start times across the
	// operating day.
	slotStep = 30 * time.Minute

	// bookingLeadTime is the look-ahead buffer: when the requested
	// date is today, candidates starting within this buffer of now
	// are withheld so nobody books a table for thirty seconds from
	// now.
	bookingLeadTime = 15 * time.Minute
)

// generateSlots enumerates the candidate start times on date at which
// a reservation of the given duration could begin, and returns the
// local "HH:MM" form of every candidate for which at least one
// capacity-compatible table is free across the full window.  The
// result is deterministic for a given snapshot of reservations and
// the function keeps no state between calls.
func (e *Engine) generateSlots(ctx context.Context, restaurant *model.Restaurant, partySize uint32, duration time.Duration, date time.Time) ([]string, error) {
	operating, err := ResolveOperatingWindow(restaurant.OpeningTime, restaurant.ClosingTime, date, e.loc)
	if err != nil {
		return nil, err
	}

	tables, err := e.store.TablesByCapacity(ctx, restaurant.ID, partySize)
	if err != nil {
		return nil, err
	}

	// One snapshot of the day's active reservations; per-candidate
	// checks are in-memory interval comparisons.
	reservations, err := e.store.ActiveForRestaurant(ctx, restaurant.ID, operating.Start, operating.End)
	if err != nil {
		return nil, err
	}

	earliest := e.clock.Now().Add(bookingLeadTime)

	slots := []string{}
	for start := operating.Start; !start.Add(duration).After(operating.End); start = start.Add(slotStep) {
		if CheckDuration(start, duration) != nil {
			continue
		}
		if start.Before(earliest) {
			continue
		}
		candidate := NewWindow(start, duration)
		for _, tbl := range tables {
			if !overlapsTable(reservations, tbl.ID, candidate) {
				slots = append(slots, start.In(e.loc).Format("15:04"))
				break
			}
		}
	}
	return slots, nil
}
