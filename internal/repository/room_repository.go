package repository

import (
	"database/sql"

	"github.com/iliyamo/cine-reservas/internal/model"
)

// RoomRepo provides lookups and CRUD for rooms.
type RoomRepo struct {
	*Store[model.Room]
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{Store: NewStore(db, Descriptor[model.Room]{
		Table:         "rooms",
		SelectColumns: []string{"id", "name", "number", "status", "created_at", "updated_at"},
		InsertColumns: []string{"name", "number"},
		StateColumn:   "status",
		ActiveValue:   string(model.RecordActive),
		InactiveValue: string(model.RecordInactive),
		Scan: func(row Scanner) (*model.Room, error) {
			var r model.Room
			if err := row.Scan(&r.ID, &r.Name, &r.Number, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
				return nil, err
			}
			return &r, nil
		},
		InsertArgs: func(r *model.Room) []any { return []any{r.Name, r.Number} },
		SetID:      func(r *model.Room, id uint64) { r.ID = id },
	})}
}
