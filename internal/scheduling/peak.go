package scheduling

import "time"

// Reservation duration bounds.  Lunch (12:00–14:00) and dinner
// (18:00–21:00) are peak windows with a shortened maximum stay.
const (
	MinDuration        = 15 * time.Minute
	PeakMaxDuration    = 90 * time.Minute
	OffPeakMaxDuration = 120 * time.Minute
)

// MaxDuration returns the longest reservation allowed to start at the
// given time.  The decision is made on the local hour-of-day of the
// start only; a reservation may run past the end of a peak window.
func MaxDuration(start time.Time) time.Duration {
	h := start.Hour()
	if (h >= 12 && h < 14) || (h >= 18 && h < 21) {
		return PeakMaxDuration
	}
	return OffPeakMaxDuration
}

// CheckDuration validates d against the fixed minimum and the
// peak/off-peak cap in effect at start.  It returns
// ErrDurationOutOfPolicy when either bound is violated.
func CheckDuration(start time.Time, d time.Duration) error {
	if d < MinDuration || d > MaxDuration(start) {
		return ErrDurationOutOfPolicy
	}
	return nil
}
