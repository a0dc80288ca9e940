package model

import "time"

// Room is a physical auditorium.  Seats belong to a room and
// screenings are scheduled into one.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the room.
//  Number    – room number within the cinema.
//  Status    – record lifecycle state.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Room struct {
	ID        uint64      `json:"id"`         // rooms.id
	Name      string      `json:"name"`       // rooms.name
	Number    uint32      `json:"number"`     // rooms.number
	Status    RecordState `json:"status"`     // rooms.status
	CreatedAt time.Time   `json:"created_at"` // rooms.created_at
	UpdatedAt time.Time   `json:"updated_at"` // rooms.updated_at
}
