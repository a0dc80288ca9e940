package model

// RecordState describes whether a record is live or has been soft
// deleted.  Rows are never physically removed; cancelling a booking or
// a screening, or retiring a movie, room or customer, flips this state
// instead.  The column backing it is `status`.
type RecordState string

const (
	RecordActive    RecordState = "ACTIVE"    // record is live
	RecordCancelled RecordState = "CANCELLED" // record was cancelled (bookings, screenings)
	RecordInactive  RecordState = "INACTIVE"  // record was retired (movies, rooms, customers)
)

// SeatState describes whether a seat is in service.  It says nothing
// about occupancy: a seat is occupied for a screening exactly when an
// ACTIVE booking references the (seat, screening) pair, so the same
// seat can be taken for one screening and free for another.
type SeatState string

const (
	SeatEnabled  SeatState = "ENABLED"  // seat can be booked
	SeatDisabled SeatState = "DISABLED" // seat is out of service
)
