package scheduling

import "time"

// Clock abstracts "now" so slot generation, the look-ahead buffer and
// retirement cutoffs are deterministic under test.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by time.Now.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
