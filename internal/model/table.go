package model

import "time"

// Table is a physical table owned by exactly one restaurant.  Tables
// are cascade-deleted with their restaurant.  TableNumber is unique
// within a restaurant and Capacity is the number of guests the table
// can seat (always ≥ 1).
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – owning restaurant.
//  TableNumber  – human-facing table number, unique per restaurant.
//  Capacity     – maximum party size the table seats.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Table struct {
	ID           uint64    // tables.id
	RestaurantID uint64    // tables.restaurant_id
	TableNumber  uint32    // tables.table_number
	Capacity     uint32    // tables.capacity
	CreatedAt    time.Time // tables.created_at
	UpdatedAt    time.Time // tables.updated_at
}
