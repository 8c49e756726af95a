package scheduling

import (
	"context"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// allocateTable picks a table for the party over w using the best-fit
// rule: candidates hold at least partySize and arrive ordered by
// capacity ascending, so the first conflict-free table is the
// smallest one that fits.  excludeID is ignored during conflict
// checks (the edit flow passes the reservation being moved).
//
// A nil table with a nil error means capacity exists but every
// candidate is busy; the caller decides between waitlisting and
// rejecting.  ErrNoCapacity means no table is ever large enough.
func allocateTable(ctx context.Context, tx BookingTx, restaurantID uint64, partySize uint32, w Window, excludeID uint64) (*model.Table, error) {
	candidates, err := tx.TablesByCapacity(ctx, restaurantID, partySize)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCapacity
	}
	for i := range candidates {
		busy, err := isTableBusy(ctx, tx, candidates[i].ID, w, excludeID)
		if err != nil {
			return nil, err
		}
		if !busy {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// placeholderTable returns the smallest capacity-compatible table for
// a waitlist entry.  The entry references it without holding it; the
// real assignment happens at promotion time.
func placeholderTable(ctx context.Context, tx BookingTx, restaurantID uint64, partySize uint32) (*model.Table, error) {
	candidates, err := tx.TablesByCapacity(ctx, restaurantID, partySize)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCapacity
	}
	return &candidates[0], nil
}
