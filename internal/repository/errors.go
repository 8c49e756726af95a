// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting database driver errors directly.
package repository

import "errors"

// ErrRestaurantNotFound is returned when no restaurant exists with
// the requested ID. Handlers should translate this into an HTTP 404
// response.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrTableNotFound is returned when no table exists with the
// requested ID.
var ErrTableNotFound = errors.New("table not found")

// ErrReservationNotFound is returned when no reservation exists with
// the requested ID.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrDuplicateTable is returned when inserting a table whose number
// already exists within the restaurant. Handlers should translate
// this into an HTTP 409 response.
var ErrDuplicateTable = errors.New("table number already exists for this restaurant")

// ErrLockTimeout is returned when the per-restaurant booking lock
// could not be acquired within its wait budget, meaning another
// booking on the same restaurant held the critical section too long.
var ErrLockTimeout = errors.New("booking lock acquisition timed out")
