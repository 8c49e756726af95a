package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// mysqlDuplicateEntry is the server error number for a unique key
// violation, used to detect table-number collisions.
const mysqlDuplicateEntry = 1062

// TableRepo provides CRUD operations for a restaurant's tables.  The
// (restaurant_id, table_number) pair is unique, enforced by the
// schema, and capacity is always at least one.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// Create inserts a table for the restaurant.  A duplicate table
// number within the restaurant yields ErrDuplicateTable.
func (r *TableRepo) Create(ctx context.Context, restaurantID uint64, tableNumber, capacity uint32) (*model.Table, error) {
	const q = `INSERT INTO tables (restaurant_id, table_number, capacity) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, restaurantID, tableNumber, capacity)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return nil, ErrDuplicateTable
		}
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	const sel = `SELECT id, restaurant_id, table_number, capacity, created_at, updated_at
	             FROM tables WHERE id = ?`
	var tbl model.Table
	err = r.db.QueryRowContext(ctx, sel, uint64(id)).Scan(
		&tbl.ID, &tbl.RestaurantID, &tbl.TableNumber, &tbl.Capacity,
		&tbl.CreatedAt, &tbl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tbl, nil
}

// ListByRestaurant returns every table of a restaurant ordered by
// table number for stable display.
func (r *TableRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Table, error) {
	const q = `SELECT id, restaurant_id, table_number, capacity, created_at, updated_at
	           FROM tables WHERE restaurant_id = ? ORDER BY table_number`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTables(rows)
}

// ByCapacity returns the restaurant's tables seating at least
// minCapacity, ordered by capacity ascending then table number.  The
// ordering is what makes the allocator's first free table the
// best-fit one.
func (r *TableRepo) ByCapacity(ctx context.Context, restaurantID uint64, minCapacity uint32) ([]model.Table, error) {
	rows, err := r.db.QueryContext(ctx, byCapacityQuery, restaurantID, minCapacity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTables(rows)
}

// ByCapacityTx is ByCapacity within an existing transaction, for the
// booking critical section.
func (r *TableRepo) ByCapacityTx(ctx context.Context, tx *sql.Tx, restaurantID uint64, minCapacity uint32) ([]model.Table, error) {
	rows, err := tx.QueryContext(ctx, byCapacityQuery, restaurantID, minCapacity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTables(rows)
}

const byCapacityQuery = `SELECT id, restaurant_id, table_number, capacity, created_at, updated_at
	FROM tables WHERE restaurant_id = ? AND capacity >= ?
	ORDER BY capacity ASC, table_number ASC`

func scanTables(rows *sql.Rows) ([]model.Table, error) {
	tables := []model.Table{}
	for rows.Next() {
		var tbl model.Table
		if err := rows.Scan(
			&tbl.ID, &tbl.RestaurantID, &tbl.TableNumber, &tbl.Capacity,
			&tbl.CreatedAt, &tbl.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tables = append(tables, tbl)
	}
	return tables, rows.Err()
}
