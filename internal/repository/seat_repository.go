package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cine-reservas/internal/model"
)

// SeatRepo provides lookups and CRUD for seats.  The generic store
// treats ENABLED as the active state, so ListActive and Deactivate
// double as "list bookable seats" and "take a seat out of service".
// GetTx is the locked read used by the seat ledger inside booking
// transactions.
type SeatRepo struct {
	*Store[model.Seat]
}

// NewSeatRepo returns a SeatRepo bound to the given database.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{Store: NewStore(db, Descriptor[model.Seat]{
		Table:         "seats",
		SelectColumns: []string{"id", "room_id", "row_num", "seat_number", "seat_state", "created_at", "updated_at"},
		InsertColumns: []string{"room_id", "row_num", "seat_number"},
		StateColumn:   "seat_state",
		ActiveValue:   string(model.SeatEnabled),
		InactiveValue: string(model.SeatDisabled),
		Scan: func(row Scanner) (*model.Seat, error) {
			var s model.Seat
			if err := row.Scan(&s.ID, &s.RoomID, &s.RowNum, &s.SeatNumber, &s.State, &s.CreatedAt, &s.UpdatedAt); err != nil {
				return nil, err
			}
			return &s, nil
		},
		InsertArgs: func(s *model.Seat) []any { return []any{s.RoomID, s.RowNum, s.SeatNumber} },
		SetID:      func(s *model.Seat, id uint64) { s.ID = id },
	})}
}

// GetTx loads a seat by id inside a transaction with a row lock,
// regardless of its service state.  Callers inspect State themselves;
// a disabled seat must still be lockable so that cancellations can
// validate it.  Returns ErrNotFound when the seat row is missing.
func (r *SeatRepo) GetTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Seat, error) {
	const q = `SELECT id, room_id, row_num, seat_number, seat_state, created_at, updated_at
	           FROM seats WHERE id = ? FOR UPDATE`
	var s model.Seat
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.RoomID, &s.RowNum, &s.SeatNumber, &s.State, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByPosition returns the seat at (row, number) within a room,
// regardless of service state.  Positions are unique per room.
func (r *SeatRepo) GetByPosition(ctx context.Context, roomID uint64, rowNum, seatNumber uint32) (*model.Seat, error) {
	const q = `SELECT id, room_id, row_num, seat_number, seat_state, created_at, updated_at
	           FROM seats WHERE room_id = ? AND row_num = ? AND seat_number = ?`
	var s model.Seat
	err := r.DB().QueryRowContext(ctx, q, roomID, rowNum, seatNumber).Scan(
		&s.ID, &s.RoomID, &s.RowNum, &s.SeatNumber, &s.State, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListEnabledByRoom returns the in-service seats of a room ordered by
// row and number for deterministic output.
func (r *SeatRepo) ListEnabledByRoom(ctx context.Context, roomID uint64) ([]model.Seat, error) {
	const q = `SELECT id, room_id, row_num, seat_number, seat_state, created_at, updated_at
	           FROM seats WHERE room_id = ? AND seat_state = 'ENABLED'
	           ORDER BY row_num, seat_number`
	rows, err := r.DB().QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.RoomID, &s.RowNum, &s.SeatNumber, &s.State, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}
