package model

import "time"

// Movie is a film that can be scheduled into screenings.  Genre is a
// free-form label (the schema constrains it to the known set), and
// AllowedAge is the minimum age for admission.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – movie title.
//  Genre         – genre label (ACTION, COMEDY, DRAMA, ...).
//  AllowedAge    – minimum admission age.
//  LengthMinutes – running time in minutes.
//  Status        – record lifecycle state.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Movie struct {
	ID            uint64      `json:"id"`             // movies.id
	Name          string      `json:"name"`           // movies.name
	Genre         string      `json:"genre"`          // movies.genre
	AllowedAge    uint32      `json:"allowed_age"`    // movies.allowed_age
	LengthMinutes uint32      `json:"length_minutes"` // movies.length_minutes
	Status        RecordState `json:"status"`         // movies.status
	CreatedAt     time.Time   `json:"created_at"`     // movies.created_at
	UpdatedAt     time.Time   `json:"updated_at"`     // movies.updated_at
}
