package scheduling

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

var errFakeNotFound = errors.New("fake: not found")

// fakeClock returns a fixed instant.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

// fakeStore is an in-memory Store and BookingTx.  Booking simply runs
// fn against the store itself; single-goroutine tests need no lock.
type fakeStore struct {
	restaurant   model.Restaurant
	tables       []model.Table
	reservations []model.Reservation
	nextID       uint64
}

func (s *fakeStore) Restaurant(_ context.Context, id uint64) (*model.Restaurant, error) {
	if id != s.restaurant.ID {
		return nil, errFakeNotFound
	}
	r := s.restaurant
	return &r, nil
}

func (s *fakeStore) ReservationByID(_ context.Context, id uint64) (*model.Reservation, error) {
	for _, r := range s.reservations {
		if r.ID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, errFakeNotFound
}

func (s *fakeStore) ReservationsByPhone(_ context.Context, phone string) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.CustomerPhone == phone {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) TablesByCapacity(_ context.Context, restaurantID uint64, minCapacity uint32) ([]model.Table, error) {
	var out []model.Table
	for _, tbl := range s.tables {
		if tbl.RestaurantID == restaurantID && tbl.Capacity >= minCapacity {
			out = append(out, tbl)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Capacity < out[j].Capacity })
	return out, nil
}

func (s *fakeStore) ActiveForRestaurant(_ context.Context, restaurantID uint64, start, end time.Time) ([]model.Reservation, error) {
	w := Window{Start: start, End: end}
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.RestaurantID == restaurantID && r.Status.Active() &&
			w.Overlaps(Window{Start: r.StartTime, End: r.EndTime}) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) ActiveForTable(_ context.Context, tableID uint64, start, end time.Time, excludeID uint64) ([]model.Reservation, error) {
	w := Window{Start: start, End: end}
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.TableID != tableID || r.ID == excludeID || !r.Status.Active() {
			continue
		}
		if w.Overlaps(Window{Start: r.StartTime, End: r.EndTime}) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) WaitlistedOverlapping(_ context.Context, restaurantID uint64, start, end time.Time) ([]model.Reservation, error) {
	w := Window{Start: start, End: end}
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.RestaurantID == restaurantID && r.Status == model.StatusWaitlist &&
			w.Overlaps(Window{Start: r.StartTime, End: r.EndTime}) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) InsertReservation(_ context.Context, r *model.Reservation) error {
	s.nextID++
	r.ID = s.nextID
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.nextID) * time.Second)
	}
	s.reservations = append(s.reservations, *r)
	return nil
}

func (s *fakeStore) UpdateReservation(_ context.Context, r *model.Reservation) error {
	for i := range s.reservations {
		if s.reservations[i].ID == r.ID {
			s.reservations[i] = *r
			return nil
		}
	}
	return errFakeNotFound
}

func (s *fakeStore) Booking(_ context.Context, _ uint64, fn func(tx BookingTx) error) error {
	return fn(s)
}

// seed adds a reservation directly, bypassing validation.
func (s *fakeStore) seed(r model.Reservation) model.Reservation {
	s.nextID++
	r.ID = s.nextID
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.nextID) * time.Second)
	}
	s.reservations = append(s.reservations, r)
	return r
}

// fakeCache is a map-backed AvailabilityCache that counts traffic.
type fakeCache struct {
	data          map[string][]string
	hits, sets    int
	invalidations int
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]string{}} }

func (c *fakeCache) GetSlots(_ context.Context, key string) ([]string, bool) {
	v, ok := c.data[key]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *fakeCache) SetSlots(_ context.Context, key string, slots []string) {
	c.sets++
	c.data[key] = slots
}

func (c *fakeCache) Invalidate(_ context.Context, restaurantID uint64, date string) {
	c.invalidations++
	prefix := slotCacheKey(restaurantID, date, 0, 0)
	// Key layout is availability:<rid>:<date>:<party>:<dur>; drop
	// everything sharing the restaurant/date segment.
	prefix = prefix[:len(prefix)-4] // trim ":0:0"
	for k := range c.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.data, k)
		}
	}
}

// chanNotifier forwards notification calls to channels so tests can
// wait for the engine's fire-and-forget goroutines.
type chanNotifier struct {
	outcomes   chan model.Reservation
	promotions chan model.Reservation
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{
		outcomes:   make(chan model.Reservation, 8),
		promotions: make(chan model.Reservation, 8),
	}
}

func (n *chanNotifier) BookingOutcome(_ context.Context, r *model.Reservation, _ string) {
	n.outcomes <- *r
}

func (n *chanNotifier) PromotionAlert(_ context.Context, r *model.Reservation, _ string) {
	n.promotions <- *r
}

func newStore(capacities ...uint32) *fakeStore {
	s := &fakeStore{
		restaurant: model.Restaurant{ID: 1, Name: "Test Bistro", OpeningTime: "10:00", ClosingTime: "22:00"},
	}
	for i, cap := range capacities {
		s.tables = append(s.tables, model.Table{
			ID: uint64(i + 1), RestaurantID: 1, TableNumber: uint32(i + 1), Capacity: cap,
		})
	}
	return s
}

func newTestEngine(s *fakeStore, cache AvailabilityCache, n Notifier, now time.Time) *Engine {
	return NewEngine(s, cache, n, &fakeClock{now: now}, time.UTC)
}

func day(h, m int) time.Time {
	return time.Date(2026, 6, 1, h, m, 0, 0, time.UTC)
}

func booking(party uint32, start time.Time, d time.Duration) BookingRequest {
	return BookingRequest{
		RestaurantID:  1,
		PartySize:     party,
		Start:         start,
		Duration:      d,
		CustomerName:  "Mahdi",
		CustomerPhone: "08108624958",
	}
}

func TestCreateReservation_BestFit(t *testing.T) {
	s := newStore(8, 2, 4, 2) // declared out of order on purpose
	e := newTestEngine(s, nil, nil, day(9, 0))

	res, err := e.CreateReservation(context.Background(), booking(2, day(15, 0), time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got model.Table
	for _, tbl := range s.tables {
		if tbl.ID == res.TableID {
			got = tbl
		}
	}
	if got.Capacity != 2 {
		t.Errorf("party of 2 assigned capacity-%d table, want capacity 2", got.Capacity)
	}
	if res.Status != model.StatusConfirmed {
		t.Errorf("status = %q, want confirmed", res.Status)
	}
}

func TestCreateReservation_BestFitSkipsBusySmallTable(t *testing.T) {
	s := newStore(2, 4)
	e := newTestEngine(s, nil, nil, day(9, 0))

	first, err := e.CreateReservation(context.Background(), booking(2, day(15, 0), time.Hour))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	second, err := e.CreateReservation(context.Background(), booking(2, day(15, 30), time.Hour))
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}
	if second.TableID == first.TableID {
		t.Error("overlapping bookings assigned the same table")
	}
}

func TestCreateReservation_DurationPolicy(t *testing.T) {
	s := newStore(4)
	e := newTestEngine(s, nil, nil, day(9, 0))
	ctx := context.Background()

	// 100 minutes starting inside the lunch peak breaks the 90m cap.
	if _, err := e.CreateReservation(ctx, booking(2, day(12, 30), 100*time.Minute)); !errors.Is(err, ErrDurationOutOfPolicy) {
		t.Errorf("peak: err = %v, want ErrDurationOutOfPolicy", err)
	}
	// The same duration off-peak is fine.
	if _, err := e.CreateReservation(ctx, booking(2, day(10, 0), 100*time.Minute)); err != nil {
		t.Errorf("off-peak: unexpected error %v", err)
	}
	// Below the 15-minute minimum, rejected regardless of availability.
	if _, err := e.CreateReservation(ctx, booking(2, day(16, 0), 10*time.Minute)); !errors.Is(err, ErrDurationOutOfPolicy) {
		t.Errorf("minimum: err = %v, want ErrDurationOutOfPolicy", err)
	}
}

func TestCreateReservation_OperatingHours(t *testing.T) {
	s := newStore(4)
	e := newTestEngine(s, nil, nil, day(9, 0))
	ctx := context.Background()

	if _, err := e.CreateReservation(ctx, booking(2, day(9, 30), time.Hour)); !errors.Is(err, ErrOutsideOperatingHours) {
		t.Errorf("before open: err = %v, want ErrOutsideOperatingHours", err)
	}
	if _, err := e.CreateReservation(ctx, booking(2, day(21, 30), time.Hour)); !errors.Is(err, ErrOutsideOperatingHours) {
		t.Errorf("past close: err = %v, want ErrOutsideOperatingHours", err)
	}
	// Ending exactly at closing is allowed (half-open window).
	if _, err := e.CreateReservation(ctx, booking(2, day(21, 0), time.Hour)); err != nil {
		t.Errorf("ends at close: unexpected error %v", err)
	}
}

func TestCreateReservation_OvernightHours(t *testing.T) {
	s := newStore(4)
	s.restaurant.OpeningTime = "18:00"
	s.restaurant.ClosingTime = "02:00"
	e := newTestEngine(s, nil, nil, day(9, 0))
	ctx := context.Background()

	// 01:00 falls inside the previous evening's overnight window.
	if _, err := e.CreateReservation(ctx, booking(2, day(1, 0), time.Hour)); err != nil {
		t.Errorf("01:00 start: unexpected error %v", err)
	}
	// 03:00 is after close whichever day anchors the window.
	if _, err := e.CreateReservation(ctx, booking(2, day(3, 0), time.Hour)); !errors.Is(err, ErrOutsideOperatingHours) {
		t.Errorf("03:00 start: err = %v, want ErrOutsideOperatingHours", err)
	}
	// Late evening on the anchored day.
	if _, err := e.CreateReservation(ctx, booking(2, day(23, 0), time.Hour)); err != nil {
		t.Errorf("23:00 start: unexpected error %v", err)
	}
}

func TestCreateReservation_NoCapacity(t *testing.T) {
	s := newStore(2, 4)
	e := newTestEngine(s, nil, nil, day(9, 0))

	if _, err := e.CreateReservation(context.Background(), booking(10, day(15, 0), time.Hour)); !errors.Is(err, ErrNoCapacity) {
		t.Errorf("err = %v, want ErrNoCapacity", err)
	}
}

func TestCreateReservation_ConflictAndWaitlist(t *testing.T) {
	s := newStore(4)
	e := newTestEngine(s, nil, nil, day(9, 0))
	ctx := context.Background()

	if _, err := e.CreateReservation(ctx, booking(2, day(15, 0), time.Hour)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// Overlapping request without waitlisting fails.
	if _, err := e.CreateReservation(ctx, booking(2, day(15, 30), time.Hour)); !errors.Is(err, ErrNoTableAvailable) {
		t.Fatalf("err = %v, want ErrNoTableAvailable", err)
	}

	// With waitlisting it becomes a waitlist entry bound to a
	// placeholder table.
	req := booking(2, day(15, 30), time.Hour)
	req.AllowWaitlist = true
	res, err := e.CreateReservation(ctx, req)
	if err != nil {
		t.Fatalf("waitlist booking: %v", err)
	}
	if res.Status != model.StatusWaitlist {
		t.Errorf("status = %q, want waitlist", res.Status)
	}
	if res.TableID == 0 {
		t.Error("waitlist entry must reference a placeholder table")
	}
}

func TestNoOverlapInvariant(t *testing.T) {
	s := newStore(2, 2, 4)
	e := newTestEngine(s, nil, nil, day(9, 0))
	ctx := context.Background()

	// Saturate 15:00–16:00, then overlap from 15:30.
	for i := 0; i < 3; i++ {
		if _, err := e.CreateReservation(ctx, booking(2, day(15, 0), time.Hour)); err != nil {
			t.Fatalf("booking %d: %v", i, err)
		}
	}
	if _, err := e.CreateReservation(ctx, booking(2, day(15, 30), time.Hour)); !errors.Is(err, ErrNoTableAvailable) {
		t.Fatalf("fourth booking: err = %v, want ErrNoTableAvailable", err)
	}

	// No table carries two overlapping active reservations.
	for i, a := range s.reservations {
		for _, b := range s.reservations[i+1:] {
			if a.TableID != b.TableID || !a.Status.Active() || !b.Status.Active() {
				continue
			}
			wa := Window{Start: a.StartTime, End: a.EndTime}
			wb := Window{Start: b.StartTime, End: b.EndTime}
			if wa.Overlaps(wb) {
				t.Fatalf("table %d double-booked: %v and %v", a.TableID, wa, wb)
			}
		}
	}
}

func TestUpdateReservation_ExcludesItself(t *testing.T) {
	s := newStore(4)
	e := newTestEngine(s, nil, nil, day(9, 0))
	ctx := context.Background()

	res, err := e.CreateReservation(ctx, booking(2, day(15, 0), time.Hour))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	// Shifting into a window overlapping its own previous one must
	// succeed; the only reservation on the table is itself.
	newStart := day(15, 30)
	updated, err := e.UpdateReservation(ctx, res.ID, ReservationChanges{Start: &newStart})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.StartTime.Equal(day(15, 30)) || !updated.EndTime.Equal(day(16, 30)) {
		t.Errorf("window = [%v, %v)", updated.StartTime, updated.EndTime)
	}
}

func TestUpdateReservation_ConflictAndTerminal(t *testing.T) {
	s := newStore(4)
	e := newTestEngine(s, nil, nil, day(9, 0))
	ctx := context.Background()

	first, err := e.CreateReservation(ctx, booking(2, day(15, 0), time.Hour))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	second, err := e.CreateReservation(ctx, booking(2, day(17, 0), time.Hour))
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	// Moving the second onto the first must conflict.
	conflictStart := day(15, 30)
	if _, err := e.UpdateReservation(ctx, second.ID, ReservationChanges{Start: &conflictStart}); !errors.Is(err, ErrNoTableAvailable) {
		t.Errorf("err = %v, want ErrNoTableAvailable", err)
	}

	// Terminal reservations cannot be edited.
	if err := e.CancelReservation(ctx, first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	ok := day(16, 0)
	if _, err := e.UpdateReservation(ctx, first.ID, ReservationChanges{Start: &ok}); !errors.Is(err, ErrTerminalState) {
		t.Errorf("err = %v, want ErrTerminalState", err)
	}
}

func TestCancelReservation_Terminal(t *testing.T) {
	s := newStore(4)
	e := newTestEngine(s, nil, nil, day(9, 0))
	ctx := context.Background()

	res, err := e.CreateReservation(ctx, booking(2, day(15, 0), time.Hour))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if err := e.CancelReservation(ctx, res.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := e.CancelReservation(ctx, res.ID); !errors.Is(err, ErrTerminalState) {
		t.Errorf("second cancel: err = %v, want ErrTerminalState", err)
	}
}

func TestWaitlistPromotion_FIFO(t *testing.T) {
	s := newStore(4)
	n := newChanNotifier()
	e := newTestEngine(s, nil, n, day(9, 0))
	ctx := context.Background()

	blocking, err := e.CreateReservation(ctx, booking(2, day(15, 0), time.Hour))
	if err != nil {
		t.Fatalf("blocking booking: %v", err)
	}
	<-n.outcomes

	// Two waitlisted entries for the same window; w1 arrived first.
	w1 := s.seed(model.Reservation{
		RestaurantID: 1, TableID: blocking.TableID, CustomerName: "First", CustomerPhone: "1",
		PartySize: 2, StartTime: day(15, 0), EndTime: day(16, 0), Status: model.StatusWaitlist,
		CreatedAt: day(8, 0),
	})
	w2 := s.seed(model.Reservation{
		RestaurantID: 1, TableID: blocking.TableID, CustomerName: "Second", CustomerPhone: "2",
		PartySize: 2, StartTime: day(15, 0), EndTime: day(16, 0), Status: model.StatusWaitlist,
		CreatedAt: day(8, 30),
	})

	if err := e.CancelReservation(ctx, blocking.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	select {
	case promoted := <-n.promotions:
		if promoted.ID != w1.ID {
			t.Errorf("promoted ID = %d, want first-come entry %d", promoted.ID, w1.ID)
		}
		if promoted.Status != model.StatusConfirmed {
			t.Errorf("promoted status = %q, want confirmed", promoted.Status)
		}
		if promoted.TableID != blocking.TableID {
			t.Errorf("promoted table = %d, want vacated table %d", promoted.TableID, blocking.TableID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no promotion alert received")
	}

	// Exactly one promotion: the second entry stays waitlisted.
	after, err := e.store.ReservationByID(ctx, w2.ID)
	if err != nil {
		t.Fatalf("lookup w2: %v", err)
	}
	if after.Status != model.StatusWaitlist {
		t.Errorf("w2 status = %q, want waitlist", after.Status)
	}
}

func TestCancelWaitlistEntry_NoPromotion(t *testing.T) {
	s := newStore(4)
	e := newTestEngine(s, nil, nil, day(9, 0))
	ctx := context.Background()

	entry := s.seed(model.Reservation{
		RestaurantID: 1, TableID: 1, CustomerName: "W", CustomerPhone: "1",
		PartySize: 2, StartTime: day(15, 0), EndTime: day(16, 0), Status: model.StatusWaitlist,
	})
	other := s.seed(model.Reservation{
		RestaurantID: 1, TableID: 1, CustomerName: "X", CustomerPhone: "2",
		PartySize: 2, StartTime: day(15, 0), EndTime: day(16, 0), Status: model.StatusWaitlist,
	})

	// Cancelling a waitlist entry vacates nothing.
	if err := e.CancelReservation(ctx, entry.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	after, err := e.store.ReservationByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if after.Status != model.StatusWaitlist {
		t.Errorf("other entry status = %q, want waitlist", after.Status)
	}
}

func TestCancelReservation_InvalidatesPromotedDate(t *testing.T) {
	s := newStore(4)
	s.restaurant.OpeningTime = "18:00"
	s.restaurant.ClosingTime = "02:00"
	cache := newFakeCache()
	e := newTestEngine(s, cache, nil, day(9, 0))
	ctx := context.Background()

	// Vacated window straddles midnight; the waitlisted entry starts
	// on the next calendar date.
	blocking := s.seed(model.Reservation{
		RestaurantID: 1, TableID: 1, CustomerName: "Late", CustomerPhone: "1",
		PartySize: 2, StartTime: day(23, 30), EndTime: day(23, 30).Add(time.Hour),
		Status: model.StatusConfirmed,
	})
	s.seed(model.Reservation{
		RestaurantID: 1, TableID: 1, CustomerName: "Next", CustomerPhone: "2",
		PartySize: 2, StartTime: day(0, 0).Add(24 * time.Hour), EndTime: day(1, 0).Add(24 * time.Hour),
		Status: model.StatusWaitlist,
	})

	sameDay := slotCacheKey(1, "2026-06-01", 2, time.Hour)
	nextDay := slotCacheKey(1, "2026-06-02", 2, time.Hour)
	cache.data[sameDay] = []string{"21:00"}
	cache.data[nextDay] = []string{"00:00"}

	if err := e.CancelReservation(ctx, blocking.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, ok := cache.data[sameDay]; ok {
		t.Error("cancelled reservation's date must be invalidated")
	}
	if _, ok := cache.data[nextDay]; ok {
		t.Error("promoted entry's date must be invalidated")
	}
}

func TestCheckAvailability_SlotExclusion(t *testing.T) {
	s := newStore(4)
	e := newTestEngine(s, nil, nil, day(0, 0).Add(-24*time.Hour)) // "now" well before the day
	ctx := context.Background()

	if _, err := e.CreateReservation(ctx, booking(2, day(14, 0), time.Hour)); err != nil {
		t.Fatalf("booking: %v", err)
	}

	slots, err := e.CheckAvailability(ctx, 1, 2, time.Hour, day(0, 0))
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	have := map[string]bool{}
	for _, sl := range slots {
		have[sl] = true
	}
	// The 14:00–15:00 booking blocks every 60-minute candidate
	// overlapping it on the only table.
	for _, blocked := range []string{"13:30", "14:00", "14:30"} {
		if have[blocked] {
			t.Errorf("slot %s should be excluded", blocked)
		}
	}
	for _, open := range []string{"10:00", "13:00", "15:00", "21:00"} {
		if !have[open] {
			t.Errorf("slot %s should be available", open)
		}
	}
	if have["21:30"] {
		t.Error("21:30 + 60min runs past closing and must not appear")
	}
}

func TestCheckAvailability_SecondTableKeepsSlotOpen(t *testing.T) {
	s := newStore(4, 4)
	e := newTestEngine(s, nil, nil, day(0, 0).Add(-24*time.Hour))
	ctx := context.Background()

	if _, err := e.CreateReservation(ctx, booking(2, day(14, 0), time.Hour)); err != nil {
		t.Fatalf("booking: %v", err)
	}
	slots, err := e.CheckAvailability(ctx, 1, 2, time.Hour, day(0, 0))
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	for _, sl := range slots {
		if sl == "14:00" {
			return
		}
	}
	t.Error("14:00 should stay available while a second table is free")
}

func TestCheckAvailability_LeadTimeBuffer(t *testing.T) {
	s := newStore(4)
	// Now is 13:50 on the queried day: 14:00 is inside the
	// 15-minute look-ahead, 14:30 is not.
	e := newTestEngine(s, nil, nil, day(13, 50))

	slots, err := e.CheckAvailability(context.Background(), 1, 2, time.Hour, day(0, 0))
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	for _, sl := range slots {
		if sl == "14:00" {
			t.Error("14:00 is within the look-ahead buffer and must be withheld")
		}
	}
	found := false
	for _, sl := range slots {
		if sl == "14:30" {
			found = true
		}
	}
	if !found {
		t.Error("14:30 should be available")
	}
}

func TestCheckAvailability_PeakCandidatesSkipped(t *testing.T) {
	s := newStore(4)
	e := newTestEngine(s, nil, nil, day(0, 0).Add(-24*time.Hour))

	// 100 minutes exceeds the 90-minute peak cap, so no candidate
	// starting inside a peak window may appear.
	slots, err := e.CheckAvailability(context.Background(), 1, 2, 100*time.Minute, day(0, 0))
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	for _, sl := range slots {
		switch sl {
		case "12:00", "12:30", "13:00", "13:30", "18:00", "19:00", "20:30":
			t.Errorf("peak-hour candidate %s must be skipped for a 100-minute stay", sl)
		}
	}
	ok := false
	for _, sl := range slots {
		if sl == "10:00" {
			ok = true
		}
	}
	if !ok {
		t.Error("off-peak candidate 10:00 should be available")
	}
}

func TestCheckAvailability_CacheIdempotenceAndInvalidation(t *testing.T) {
	s := newStore(4)
	cache := newFakeCache()
	e := newTestEngine(s, cache, nil, day(0, 0).Add(-24*time.Hour))
	ctx := context.Background()

	first, err := e.CheckAvailability(ctx, 1, 2, time.Hour, day(0, 0))
	if err != nil {
		t.Fatalf("first query: %v", err)
	}
	second, err := e.CheckAvailability(ctx, 1, 2, time.Hour, day(0, 0))
	if err != nil {
		t.Fatalf("second query: %v", err)
	}
	if cache.hits != 1 || cache.sets != 1 {
		t.Errorf("hits = %d sets = %d, want 1 and 1", cache.hits, cache.sets)
	}
	if len(first) != len(second) {
		t.Fatalf("idempotent queries diverged: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("idempotent queries diverged at %d: %v vs %v", i, first, second)
		}
	}

	// A booking on that date invalidates the entry; the next query
	// recomputes and reflects the change.
	if _, err := e.CreateReservation(ctx, booking(2, day(14, 0), time.Hour)); err != nil {
		t.Fatalf("booking: %v", err)
	}
	if cache.invalidations == 0 {
		t.Fatal("mutation did not invalidate the cache")
	}
	third, err := e.CheckAvailability(ctx, 1, 2, time.Hour, day(0, 0))
	if err != nil {
		t.Fatalf("third query: %v", err)
	}
	for _, sl := range third {
		if sl == "14:00" {
			t.Error("stale 14:00 slot returned after invalidation")
		}
	}
}
