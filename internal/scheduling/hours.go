package scheduling

import (
	"fmt"
	"time"
)

// ResolveOperatingWindow anchors a restaurant's stored time-of-day
// opening and closing values to a concrete calendar date in loc and
// returns the absolute operating window for that date.  Both "HH:MM"
// and "HH:MM:SS" forms are accepted.  When the closing time is
// numerically less than or equal to the opening time the restaurant
// closes on the following day, so 24 hours are added to the close
// (overnight wrap, e.g. 18:00–02:00).  The wrap itself never fails;
// the only error is ErrInvalidTimeFormat when a stored value cannot
// be parsed.
func ResolveOperatingWindow(opening, closing string, date time.Time, loc *time.Location) (Window, error) {
	openH, openM, openS, err := parseTimeOfDay(opening)
	if err != nil {
		return Window{}, err
	}
	closeH, closeM, closeS, err := parseTimeOfDay(closing)
	if err != nil {
		return Window{}, err
	}

	y, m, d := date.In(loc).Date()
	open := time.Date(y, m, d, openH, openM, openS, 0, loc)
	close := time.Date(y, m, d, closeH, closeM, closeS, 0, loc)
	if !close.After(open) {
		close = close.Add(24 * time.Hour)
	}
	return Window{Start: open, End: close}, nil
}

// parseTimeOfDay splits a stored "HH:MM" or "HH:MM:SS" value.
func parseTimeOfDay(s string) (h, m, sec int, err error) {
	switch len(s) {
	case 5:
		_, err = fmt.Sscanf(s, "%02d:%02d", &h, &m)
	case 8:
		_, err = fmt.Sscanf(s, "%02d:%02d:%02d", &h, &m, &sec)
	default:
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if err != nil || h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return h, m, sec, nil
}
