package model

import "time"

// Seat is an addressable position (row, number) within a room.  State
// only records whether the seat is in service; whether it is taken for
// a given screening is derived from the bookings table.
//
// Fields:
//  ID         – primary key identifier.
//  RoomID     – room to which this seat belongs.
//  RowNum     – row of the seat within the room.
//  SeatNumber – number of the seat within the row.
//  State      – service state (ENABLED, DISABLED).
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Seat struct {
	ID         uint64    `json:"id"`         // seats.id
	RoomID     uint64    `json:"room_id"`    // seats.room_id
	RowNum     uint32    `json:"row"`        // seats.row_num
	SeatNumber uint32    `json:"number"`     // seats.seat_number
	State      SeatState `json:"state"`      // seats.seat_state
	CreatedAt  time.Time `json:"created_at"` // seats.created_at
	UpdatedAt  time.Time `json:"updated_at"` // seats.updated_at
}
