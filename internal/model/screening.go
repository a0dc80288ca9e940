package model

import "time"

// Screening is a scheduled showing of a movie in a room at a date and
// time range.  Scheduling owns creation; the reservation core only
// reads screenings and flips Status to CANCELLED.
//
// Fields:
//  ID        – primary key identifier.
//  MovieID   – movie being shown.
//  RoomID    – room where the screening takes place.
//  ShowDate  – calendar date of the screening (midnight UTC).
//  StartsAt  – start time of day, "HH:MM:SS".
//  EndsAt    – end time of day, "HH:MM:SS".
//  Status    – record lifecycle state (ACTIVE, CANCELLED).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Screening struct {
	ID        uint64      `json:"id"`         // screenings.id
	MovieID   uint64      `json:"movie_id"`   // screenings.movie_id
	RoomID    uint64      `json:"room_id"`    // screenings.room_id
	ShowDate  time.Time   `json:"show_date"`  // screenings.show_date
	StartsAt  string      `json:"starts_at"`  // screenings.starts_at
	EndsAt    string      `json:"ends_at"`    // screenings.ends_at
	Status    RecordState `json:"status"`     // screenings.status
	CreatedAt time.Time   `json:"created_at"` // screenings.created_at
	UpdatedAt time.Time   `json:"updated_at"` // screenings.updated_at
}
