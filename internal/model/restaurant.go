package model

import "time"

// Restaurant represents a bookable venue together with its daily
// operating hours.  Opening and closing times are stored as plain
// time-of-day strings ("HH:MM" or "HH:MM:SS") and are not bound to
// any particular date; the scheduling engine anchors them to a
// concrete day when validating a reservation.  A closing time that is
// numerically less than or equal to the opening time means the
// restaurant closes on the following calendar day (e.g. 18:00–02:00).
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the restaurant.
//  OpeningTime – daily opening time-of-day.
//  ClosingTime – daily closing time-of-day.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Restaurant struct {
	ID          uint64    // restaurants.id
	Name        string    // restaurants.name
	OpeningTime string    // restaurants.opening_time
	ClosingTime string    // restaurants.closing_time
	CreatedAt   time.Time // restaurants.created_at
	UpdatedAt   time.Time // restaurants.updated_at
}
