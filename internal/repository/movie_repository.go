package repository

import (
	"database/sql"

	"github.com/iliyamo/cine-reservas/internal/model"
)

// MovieRepo provides lookups and CRUD for movies.  It is a plain
// composition of the generic store; movies carry no queries of their
// own in this service.
type MovieRepo struct {
	*Store[model.Movie]
}

// NewMovieRepo returns a MovieRepo bound to the given database.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{Store: NewStore(db, Descriptor[model.Movie]{
		Table:         "movies",
		SelectColumns: []string{"id", "name", "genre", "allowed_age", "length_minutes", "status", "created_at", "updated_at"},
		InsertColumns: []string{"name", "genre", "allowed_age", "length_minutes"},
		StateColumn:   "status",
		ActiveValue:   string(model.RecordActive),
		InactiveValue: string(model.RecordInactive),
		Scan: func(row Scanner) (*model.Movie, error) {
			var m model.Movie
			if err := row.Scan(&m.ID, &m.Name, &m.Genre, &m.AllowedAge, &m.LengthMinutes, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
				return nil, err
			}
			return &m, nil
		},
		InsertArgs: func(m *model.Movie) []any {
			return []any{m.Name, m.Genre, m.AllowedAge, m.LengthMinutes}
		},
		SetID: func(m *model.Movie, id uint64) { m.ID = id },
	})}
}
