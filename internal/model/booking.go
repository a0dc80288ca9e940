package model

import "time"

// Booking is a customer's claim on one seat for one screening.  At
// most one ACTIVE booking may exist per (seat, screening) pair; the
// bookings table enforces this with a unique key over a generated
// column that is 1 while the booking is ACTIVE and NULL afterwards.
// Cancelled bookings are kept for auditing.
//
// Fields:
//  ID          – primary key identifier.
//  CustomerID  – customer who made the booking.
//  SeatID      – seat being claimed.
//  ScreeningID – screening the seat is claimed for.
//  BookedOn    – calendar date the booking was created.
//  Status      – record lifecycle state (ACTIVE, CANCELLED).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Booking struct {
	ID          uint64      `json:"id"`           // bookings.id
	CustomerID  uint64      `json:"customer_id"`  // bookings.customer_id
	SeatID      uint64      `json:"seat_id"`      // bookings.seat_id
	ScreeningID uint64      `json:"screening_id"` // bookings.screening_id
	BookedOn    time.Time   `json:"booked_on"`    // bookings.booked_on
	Status      RecordState `json:"status"`       // bookings.status
	CreatedAt   time.Time   `json:"created_at"`   // bookings.created_at
	UpdatedAt   time.Time   `json:"updated_at"`   // bookings.updated_at
}

// RoomAvailability holds seat counts for one room on one date.
// Available always equals Total-Occupied inside the same snapshot.
type RoomAvailability struct {
	Total     uint64 `json:"total"`
	Occupied  uint64 `json:"occupied"`
	Available uint64 `json:"available"`
}
