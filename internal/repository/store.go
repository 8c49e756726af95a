package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/scheduling"
)

// bookingLockWait is how long a booking transaction waits for the
// restaurant's advisory lock before giving up.  Kept short so a
// stuck booking cannot starve the request path.
const bookingLockWait = 5 * time.Second

// Store aggregates the per-entity repositories into the persistence
// contract the scheduling engine consumes.  The booking critical
// section (conflict check followed by insert or update) runs inside
// one transaction guarded by a per-restaurant MySQL advisory lock,
// so two concurrent requests can never both observe a table as free
// and both claim it.
type Store struct {
	db           *sql.DB
	restaurants  *RestaurantRepo
	tables       *TableRepo
	reservations *ReservationRepo
}

// NewStore builds a Store over one database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		restaurants:  NewRestaurantRepo(db),
		tables:       NewTableRepo(db),
		reservations: NewReservationRepo(db),
	}
}

// Restaurants exposes the restaurant repository for handlers that
// manage venues outside the engine.
func (s *Store) Restaurants() *RestaurantRepo { return s.restaurants }

// Tables exposes the table repository for venue management handlers.
func (s *Store) Tables() *TableRepo { return s.tables }

// Reservations exposes the reservation repository, used by the
// retirement worker.
func (s *Store) Reservations() *ReservationRepo { return s.reservations }

func (s *Store) Restaurant(ctx context.Context, id uint64) (*model.Restaurant, error) {
	return s.restaurants.GetByID(ctx, id)
}

func (s *Store) ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

func (s *Store) ReservationsByPhone(ctx context.Context, phone string) ([]model.Reservation, error) {
	return s.reservations.ByPhone(ctx, phone)
}

func (s *Store) TablesByCapacity(ctx context.Context, restaurantID uint64, minCapacity uint32) ([]model.Table, error) {
	return s.tables.ByCapacity(ctx, restaurantID, minCapacity)
}

func (s *Store) ActiveForRestaurant(ctx context.Context, restaurantID uint64, start, end time.Time) ([]model.Reservation, error) {
	return s.reservations.ActiveForRestaurant(ctx, restaurantID, start, end)
}

// Booking runs fn inside a transaction holding the restaurant's
// booking lock.  MySQL named locks are connection-scoped and
// non-transactional, so the lock lives on a dedicated connection and
// is released strictly after commit or rollback: releasing any
// earlier would let a second booking establish its consistent-read
// snapshot before this transaction's rows are visible and claim the
// same table.  Connection teardown releases the lock if the explicit
// release fails.
func (s *Store) Booking(ctx context.Context, restaurantID uint64, fn func(tx scheduling.BookingTx) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	lockName := fmt.Sprintf("booking:restaurant:%d", restaurantID)
	var got sql.NullInt64
	err = conn.QueryRowContext(ctx, `SELECT GET_LOCK(?, ?)`, lockName, int(bookingLockWait/time.Second)).Scan(&got)
	if err != nil {
		return err
	}
	if !got.Valid || got.Int64 != 1 {
		return ErrLockTimeout
	}
	defer func() {
		_, _ = conn.ExecContext(ctx, `SELECT RELEASE_LOCK(?)`, lockName)
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&bookingTx{store: s, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// bookingTx adapts one open transaction to the engine's BookingTx
// contract.
type bookingTx struct {
	store *Store
	tx    *sql.Tx
}

func (b *bookingTx) TablesByCapacity(ctx context.Context, restaurantID uint64, minCapacity uint32) ([]model.Table, error) {
	return b.store.tables.ByCapacityTx(ctx, b.tx, restaurantID, minCapacity)
}

func (b *bookingTx) ActiveForTable(ctx context.Context, tableID uint64, start, end time.Time, excludeID uint64) ([]model.Reservation, error) {
	return b.store.reservations.ActiveForTableTx(ctx, b.tx, tableID, start, end, excludeID)
}

func (b *bookingTx) WaitlistedOverlapping(ctx context.Context, restaurantID uint64, start, end time.Time) ([]model.Reservation, error) {
	return b.store.reservations.WaitlistedOverlappingTx(ctx, b.tx, restaurantID, start, end)
}

func (b *bookingTx) InsertReservation(ctx context.Context, r *model.Reservation) error {
	return b.store.reservations.CreateTx(ctx, b.tx, r)
}

func (b *bookingTx) UpdateReservation(ctx context.Context, r *model.Reservation) error {
	return b.store.reservations.UpdateTx(ctx, b.tx, r)
}
