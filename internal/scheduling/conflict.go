package scheduling

import (
	"context"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// isTableBusy reports whether the table has any active reservation
// overlapping w, ignoring excludeID when non-zero.  The status filter
// lives in the store query; the exhaustive check here guards against
// a store handing back rows it should not.
func isTableBusy(ctx context.Context, tx BookingTx, tableID uint64, w Window, excludeID uint64) (bool, error) {
	overlapping, err := tx.ActiveForTable(ctx, tableID, w.Start, w.End, excludeID)
	if err != nil {
		return false, err
	}
	for _, r := range overlapping {
		if r.Status.Active() {
			return true, nil
		}
	}
	return false, nil
}

// overlapsTable reports whether any active reservation in rs sits on
// tableID and overlaps w.  Used by the slot generator, which works
// over a single day snapshot instead of per-table queries.
func overlapsTable(rs []model.Reservation, tableID uint64, w Window) bool {
	for _, r := range rs {
		if r.TableID != tableID || !r.Status.Active() {
			continue
		}
		if w.Overlaps(Window{Start: r.StartTime, End: r.EndTime}) {
			return true
		}
	}
	return false
}
