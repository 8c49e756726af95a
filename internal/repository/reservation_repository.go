package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  Start
// and end times are stored as UTC DATETIME columns forming a
// half-open [start_time, end_time) window.  Overlap queries use the
// canonical test: an existing row overlaps [start, end) when its
// start_time < end AND its end_time > start.  Conflict-relevant
// methods filter on the active statuses; cancelled, completed and
// waitlisted rows never block a table.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, restaurant_id, table_id, customer_name, customer_phone,
	party_size, start_time, end_time, status, created_at, updated_at`

// GetByID returns a single reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// ByPhone returns every reservation made under a phone number,
// newest start time first.
func (r *ReservationRepo) ByPhone(ctx context.Context, phone string) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations
	      WHERE customer_phone = ? ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, q, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ActiveForRestaurant returns active reservations of the restaurant
// overlapping [start, end).  The slot generator works off this one
// snapshot for a whole operating day.
func (r *ReservationRepo) ActiveForRestaurant(ctx context.Context, restaurantID uint64, start, end time.Time) ([]model.Reservation, error) {
	in, args := statusIn(model.ActiveStatuses())
	q := `SELECT ` + reservationColumns + ` FROM reservations
	      WHERE restaurant_id = ? AND status IN (` + in + `)
	        AND start_time < ? AND end_time > ?`
	all := append([]interface{}{restaurantID}, args...)
	all = append(all, end.UTC(), start.UTC())
	rows, err := r.db.QueryContext(ctx, q, all...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ActiveForTableTx returns active reservations on one table
// overlapping [start, end) inside a booking transaction.  When
// excludeID is non-zero that reservation is ignored, so the edit
// flow never conflicts with its own previous window.
func (r *ReservationRepo) ActiveForTableTx(ctx context.Context, tx *sql.Tx, tableID uint64, start, end time.Time, excludeID uint64) ([]model.Reservation, error) {
	in, args := statusIn(model.ActiveStatuses())
	q := `SELECT ` + reservationColumns + ` FROM reservations
	      WHERE table_id = ? AND status IN (` + in + `)
	        AND start_time < ? AND end_time > ?`
	all := append([]interface{}{tableID}, args...)
	all = append(all, end.UTC(), start.UTC())
	if excludeID != 0 {
		q += ` AND id <> ?`
		all = append(all, excludeID)
	}
	rows, err := tx.QueryContext(ctx, q, all...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// WaitlistedOverlappingTx returns the restaurant's waitlist entries
// overlapping [start, end), ordered by created_at ascending so the
// promoter honors first come, first served.
func (r *ReservationRepo) WaitlistedOverlappingTx(ctx context.Context, tx *sql.Tx, restaurantID uint64, start, end time.Time) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations
	      WHERE restaurant_id = ? AND status = ?
	        AND start_time < ? AND end_time > ?
	      ORDER BY created_at ASC, id ASC`
	rows, err := tx.QueryContext(ctx, q, restaurantID, string(model.StatusWaitlist), end.UTC(), start.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// CreateTx inserts a new reservation within an existing transaction
// and populates the generated ID and timestamps on the record.  The
// caller must commit or roll back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (restaurant_id, table_id, customer_name, customer_phone, party_size, start_time, end_time, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.RestaurantID, res.TableID, res.CustomerName, res.CustomerPhone,
		res.PartySize, res.StartTime.UTC(), res.EndTime.UTC(), string(res.Status),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	sel := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	stored, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
	if err != nil {
		return err
	}
	*res = *stored
	return nil
}

// UpdateTx writes back every mutable field of the reservation within
// an existing transaction and refreshes its updated_at stamp.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `UPDATE reservations
	           SET table_id = ?, customer_name = ?, customer_phone = ?, party_size = ?,
	               start_time = ?, end_time = ?, status = ?, updated_at = UTC_TIMESTAMP()
	           WHERE id = ?`
	result, err := tx.ExecContext(ctx, q,
		res.TableID, res.CustomerName, res.CustomerPhone, res.PartySize,
		res.StartTime.UTC(), res.EndTime.UTC(), string(res.Status), res.ID,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is 0 both for a missing row and for a
		// no-op update; distinguish with a lookup.
		var exists uint64
		err := tx.QueryRowContext(ctx, `SELECT id FROM reservations WHERE id = ?`, res.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return ErrReservationNotFound
		}
		return err
	}
	return nil
}

// CompleteElapsed transitions reservations whose window has fully
// elapsed to the terminal completed state in one batch, and returns
// how many rows changed.  Only rows in one of the eligible statuses
// are touched; the retirement worker supplies that set from config.
func (r *ReservationRepo) CompleteElapsed(ctx context.Context, cutoff time.Time, eligible []model.ReservationStatus) (int64, error) {
	if len(eligible) == 0 {
		return 0, nil
	}
	in, args := statusIn(eligible)
	q := `UPDATE reservations SET status = ?, updated_at = UTC_TIMESTAMP()
	      WHERE end_time < ? AND status IN (` + in + `)`
	all := append([]interface{}{string(model.StatusCompleted), cutoff.UTC()}, args...)
	result, err := r.db.ExecContext(ctx, q, all...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// statusIn renders a status slice as SQL placeholders plus args.
func statusIn(statuses []model.ReservationStatus) (string, []interface{}) {
	args := make([]interface{}, len(statuses))
	for i, s := range statuses {
		args[i] = string(s)
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(statuses)), ","), args
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var res model.Reservation
	var status string
	err := row.Scan(
		&res.ID, &res.RestaurantID, &res.TableID, &res.CustomerName, &res.CustomerPhone,
		&res.PartySize, &res.StartTime, &res.EndTime, &status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.Status = model.ReservationStatus(status)
	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
	reservations := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}
