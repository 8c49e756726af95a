package scheduling

import (
	"errors"
	"testing"
	"time"
)

func TestResolveOperatingWindow_SameDay(t *testing.T) {
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	w, err := ResolveOperatingWindow("10:00", "22:00", date, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Start.Equal(time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("open = %v", w.Start)
	}
	if !w.End.Equal(time.Date(2026, 6, 1, 22, 0, 0, 0, time.UTC)) {
		t.Errorf("close = %v", w.End)
	}
}

func TestResolveOperatingWindow_OvernightWrap(t *testing.T) {
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	w, err := ResolveOperatingWindow("18:00", "02:00", date, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Close lands on June 2nd.
	if !w.End.Equal(time.Date(2026, 6, 2, 2, 0, 0, 0, time.UTC)) {
		t.Errorf("close = %v, want 02:00 next day", w.End)
	}
	if w.Duration() != 8*time.Hour {
		t.Errorf("duration = %v, want 8h", w.Duration())
	}
}

func TestResolveOperatingWindow_EqualTimesWrapFullDay(t *testing.T) {
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	w, err := ResolveOperatingWindow("09:00", "09:00", date, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Duration() != 24*time.Hour {
		t.Errorf("duration = %v, want 24h", w.Duration())
	}
}

func TestResolveOperatingWindow_SecondsForm(t *testing.T) {
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	w, err := ResolveOperatingWindow("10:30:00", "21:15:30", date, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Start.Minute() != 30 || w.End.Second() != 30 {
		t.Errorf("window = %v", w)
	}
}

func TestResolveOperatingWindow_Timezone(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, loc)
	w, err := ResolveOperatingWindow("10:00", "22:00", date, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Start.Location() != loc || w.Start.Hour() != 10 {
		t.Errorf("open = %v, want 10:00 in %v", w.Start, loc)
	}
}

func TestResolveOperatingWindow_InvalidFormat(t *testing.T) {
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, bad := range []string{"", "10", "25:00", "10:61", "ten am", "10-00"} {
		if _, err := ResolveOperatingWindow(bad, "22:00", date, time.UTC); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("opening %q: err = %v, want ErrInvalidTimeFormat", bad, err)
		}
		if _, err := ResolveOperatingWindow("10:00", bad, date, time.UTC); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("closing %q: err = %v, want ErrInvalidTimeFormat", bad, err)
		}
	}
}
