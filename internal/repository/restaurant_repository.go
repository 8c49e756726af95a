package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RestaurantRepo provides CRUD operations for restaurants.  Opening
// and closing times are stored as MySQL TIME columns and surface as
// "HH:MM:SS" strings; the scheduling engine parses them when
// anchoring an operating window.  All timestamp columns are stored
// in UTC.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo returns a new RestaurantRepo bound to the given database.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// that span multiple repositories.
func (r *RestaurantRepo) DB() *sql.DB { return r.db }

// Create inserts a new restaurant and returns the stored row with
// generated ID and timestamps populated.
func (r *RestaurantRepo) Create(ctx context.Context, name, openingTime, closingTime string) (*model.Restaurant, error) {
	const q = `INSERT INTO restaurants (name, opening_time, closing_time) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, name, openingTime, closingTime)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID returns a single restaurant or ErrRestaurantNotFound.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (*model.Restaurant, error) {
	const q = `SELECT id, name, opening_time, closing_time, created_at, updated_at
	           FROM restaurants WHERE id = ?`
	var rest model.Restaurant
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rest.ID, &rest.Name, &rest.OpeningTime, &rest.ClosingTime,
		&rest.CreatedAt, &rest.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}
