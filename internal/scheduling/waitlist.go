package scheduling

import (
	"context"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// promoteWaitlisted scans the restaurant's waitlist after a
// cancellation vacated a table over the given window.  Entries
// arrive ordered by created_at ascending; the first whose own window
// is free on the vacated table is confirmed and bound to that table,
// and the scan stops — one promotion per cancellation, so later
// entries keep their place in line for the next opening.  Returns the
// promoted entry, or nil when nothing fits.
func promoteWaitlisted(ctx context.Context, tx BookingTx, restaurantID, vacatedTableID uint64, vacated Window) (*model.Reservation, error) {
	entries, err := tx.WaitlistedOverlapping(ctx, restaurantID, vacated.Start, vacated.End)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entry := &entries[i]
		if entry.Status != model.StatusWaitlist {
			continue
		}
		w := Window{Start: entry.StartTime, End: entry.EndTime}
		busy, err := isTableBusy(ctx, tx, vacatedTableID, w, entry.ID)
		if err != nil {
			return nil, err
		}
		if busy {
			continue
		}
		entry.Status = model.StatusConfirmed
		entry.TableID = vacatedTableID
		if err := tx.UpdateReservation(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	}
	return nil, nil
}
