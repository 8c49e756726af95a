package scheduling

import "time"

// Window is a half-open time interval [Start, End).  Reservations,
// operating hours and candidate slots are all expressed as windows.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window starting at start and spanning d.
func NewWindow(start time.Time, d time.Duration) Window {
	return Window{Start: start, End: start.Add(d)}
}

// Duration returns End − Start.
func (w Window) Duration() time.Duration { return w.End.Sub(w.Start) }

// Valid reports whether the window is non-empty (Start < End).
func (w Window) Valid() bool { return w.Start.Before(w.End) }

// Overlaps reports whether two half-open intervals intersect:
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.  Windows that
// merely touch at an endpoint do not overlap, so a booking ending at
// 15:00 never blocks one starting at 15:00.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Contains reports whether o lies entirely within w.
func (w Window) Contains(o Window) bool {
	return !o.Start.Before(w.Start) && !o.End.After(w.End)
}
