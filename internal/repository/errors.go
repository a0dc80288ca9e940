// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound covers a referenced entity that is missing or
// already in a terminal state, while ErrConflict signals that a seat
// is already actively booked for a screening.
package repository

import "errors"

// ErrNotFound is returned when an entity does not exist or is no
// longer active (soft deleted, cancelled, or a disabled seat).
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update cannot be
// performed because of conflicting state, such as claiming a seat
// that already has an active booking for the same screening.
// Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
