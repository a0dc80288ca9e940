package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/cine-reservas/internal/model"
)

// ScreeningRepo provides lookups, scheduling inserts and lifecycle
// transitions for screenings, plus the availability aggregate consumed
// by the read side.  All timestamp fields are assumed to be stored in
// UTC; show_date is a bare DATE compared at day precision.
type ScreeningRepo struct {
	*Store[model.Screening]
}

// NewScreeningRepo returns a ScreeningRepo bound to the given database.
func NewScreeningRepo(db *sql.DB) *ScreeningRepo {
	return &ScreeningRepo{Store: NewStore(db, Descriptor[model.Screening]{
		Table:         "screenings",
		SelectColumns: []string{"id", "movie_id", "room_id", "show_date", "starts_at", "ends_at", "status", "created_at", "updated_at"},
		InsertColumns: []string{"movie_id", "room_id", "show_date", "starts_at", "ends_at"},
		StateColumn:   "status",
		ActiveValue:   string(model.RecordActive),
		InactiveValue: string(model.RecordCancelled),
		Scan:          scanScreening,
		InsertArgs: func(s *model.Screening) []any {
			return []any{s.MovieID, s.RoomID, s.ShowDate.Format("2006-01-02"), s.StartsAt, s.EndsAt}
		},
		SetID: func(s *model.Screening, id uint64) { s.ID = id },
	})}
}

func scanScreening(row Scanner) (*model.Screening, error) {
	var s model.Screening
	if err := row.Scan(&s.ID, &s.MovieID, &s.RoomID, &s.ShowDate, &s.StartsAt, &s.EndsAt, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetActiveTx loads an active screening by id inside a transaction
// with a row lock, so that concurrent cancellations of the same
// screening serialize against each other.  Returns ErrNotFound when
// the screening is missing or already cancelled.
func (r *ScreeningRepo) GetActiveTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Screening, error) {
	const q = `SELECT id, movie_id, room_id, show_date, starts_at, ends_at, status, created_at, updated_at
	           FROM screenings WHERE id = ? AND status = 'ACTIVE' FOR UPDATE`
	s, err := scanScreening(tx.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CancelTx flips an active screening to CANCELLED within the caller's
// transaction.  Returns ErrNotFound when no active row matched.
func (r *ScreeningRepo) CancelTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE screenings SET status = 'CANCELLED' WHERE id = ? AND status = 'ACTIVE'`
	result, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActiveByDate returns the active screenings scheduled on a date,
// ordered by start time then id.
func (r *ScreeningRepo) ListActiveByDate(ctx context.Context, date time.Time) ([]model.Screening, error) {
	const q = `SELECT id, movie_id, room_id, show_date, starts_at, ends_at, status, created_at, updated_at
	           FROM screenings WHERE show_date = ? AND status = 'ACTIVE'
	           ORDER BY starts_at, id`
	return r.queryScreenings(ctx, q, date.Format("2006-01-02"))
}

// ListActiveByDateRange returns the active screenings with show dates
// between from and to inclusive.
func (r *ScreeningRepo) ListActiveByDateRange(ctx context.Context, from, to time.Time) ([]model.Screening, error) {
	const q = `SELECT id, movie_id, room_id, show_date, starts_at, ends_at, status, created_at, updated_at
	           FROM screenings WHERE show_date BETWEEN ? AND ? AND status = 'ACTIVE'
	           ORDER BY show_date, starts_at, id`
	return r.queryScreenings(ctx, q, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

// ListActiveByRoomAndDate returns the active screenings of one room on
// a date.
func (r *ScreeningRepo) ListActiveByRoomAndDate(ctx context.Context, roomID uint64, date time.Time) ([]model.Screening, error) {
	const q = `SELECT id, movie_id, room_id, show_date, starts_at, ends_at, status, created_at, updated_at
	           FROM screenings WHERE room_id = ? AND show_date = ? AND status = 'ACTIVE'
	           ORDER BY starts_at, id`
	return r.queryScreenings(ctx, q, roomID, date.Format("2006-01-02"))
}

// ListActiveByMovieAndDateRange returns the active screenings of one
// movie with show dates between from and to inclusive.
func (r *ScreeningRepo) ListActiveByMovieAndDateRange(ctx context.Context, movieID uint64, from, to time.Time) ([]model.Screening, error) {
	const q = `SELECT id, movie_id, room_id, show_date, starts_at, ends_at, status, created_at, updated_at
	           FROM screenings WHERE movie_id = ? AND show_date BETWEEN ? AND ? AND status = 'ACTIVE'
	           ORDER BY show_date, starts_at, id`
	return r.queryScreenings(ctx, q, movieID, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

// ListActiveByGenreAndDateRange returns the active screenings of every
// active movie in a genre with show dates inside the range.
func (r *ScreeningRepo) ListActiveByGenreAndDateRange(ctx context.Context, genre string, from, to time.Time) ([]model.Screening, error) {
	const q = `SELECT sc.id, sc.movie_id, sc.room_id, sc.show_date, sc.starts_at, sc.ends_at, sc.status, sc.created_at, sc.updated_at
	           FROM screenings sc
	           JOIN movies m ON m.id = sc.movie_id AND m.status = 'ACTIVE'
	           WHERE m.genre = ? AND sc.show_date BETWEEN ? AND ? AND sc.status = 'ACTIVE'
	           ORDER BY sc.show_date, sc.starts_at, sc.id`
	return r.queryScreenings(ctx, q, genre, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (r *ScreeningRepo) queryScreenings(ctx context.Context, q string, args ...any) ([]model.Screening, error) {
	rows, err := r.DB().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	screenings := make([]model.Screening, 0)
	for rows.Next() {
		s, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		screenings = append(screenings, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return screenings, nil
}

// AvailabilityByRoom computes per-room seat counts for every active
// screening on the given date.  Total counts each enabled seat once
// per screening of its room; occupied counts those with an active
// booking for that screening; available is derived inside the same
// SELECT so the three figures always come from one snapshot.
func (r *ScreeningRepo) AvailabilityByRoom(ctx context.Context, date time.Time) (map[uint64]model.RoomAvailability, error) {
	const q = `SELECT rm.id,
	                  COUNT(st.id) AS total,
	                  COUNT(b.id) AS occupied,
	                  COUNT(st.id) - COUNT(b.id) AS available
	           FROM screenings sc
	           JOIN rooms rm ON rm.id = sc.room_id AND rm.status = 'ACTIVE'
	           JOIN seats st ON st.room_id = rm.id AND st.seat_state = 'ENABLED'
	           LEFT JOIN bookings b ON b.screening_id = sc.id AND b.seat_id = st.id AND b.status = 'ACTIVE'
	           WHERE sc.show_date = ? AND sc.status = 'ACTIVE'
	           GROUP BY rm.id`
	rows, err := r.DB().QueryContext(ctx, q, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uint64]model.RoomAvailability)
	for rows.Next() {
		var roomID uint64
		var a model.RoomAvailability
		if err := rows.Scan(&roomID, &a.Total, &a.Occupied, &a.Available); err != nil {
			return nil, err
		}
		out[roomID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
