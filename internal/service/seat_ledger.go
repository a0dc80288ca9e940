package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/cine-reservas/internal/model"
	"github.com/iliyamo/cine-reservas/internal/repository"
)

// SeatLedger is the authoritative occupancy primitive.  The unit of
// contention is the (seat, screening) pair: a seat is occupied for a
// screening exactly when an ACTIVE booking references the pair, so
// occupying is a guarded check ahead of the booking insert and
// releasing is a validation ahead of the booking flip.  Both run
// inside the caller's transaction; the ledger never commits.
type SeatLedger struct {
	seats    *repository.SeatRepo
	bookings *repository.BookingRepo
}

// NewSeatLedger constructs a SeatLedger over the seat and booking
// repositories.
func NewSeatLedger(seats *repository.SeatRepo, bookings *repository.BookingRepo) *SeatLedger {
	if seats == nil || bookings == nil {
		panic("nil repository passed to NewSeatLedger")
	}
	return &SeatLedger{seats: seats, bookings: bookings}
}

// TryOccupyTx admits a claim on the (seat, screening) pair.  The seat
// row is locked for the rest of the transaction, so two concurrent
// claims for the same pair serialize here; the loser then sees the
// winner's booking and gets ErrConflict.  A missing or disabled seat
// is ErrNotFound.  The booking insert that follows carries the unique
// index backstop for anything that races past this check.
func (l *SeatLedger) TryOccupyTx(ctx context.Context, tx *sql.Tx, seatID, screeningID uint64) error {
	seat, err := l.seats.GetTx(ctx, tx, seatID)
	if err != nil {
		return fmt.Errorf("seat %d: %w", seatID, err)
	}
	if seat.State != model.SeatEnabled {
		return fmt.Errorf("seat %d is out of service: %w", seatID, repository.ErrNotFound)
	}
	existing, err := l.bookings.FindActiveBySeatAndScreeningTx(ctx, tx, seatID, screeningID)
	if err != nil {
		return fmt.Errorf("check claim on seat %d: %w", seatID, err)
	}
	if existing != nil {
		return fmt.Errorf("seat %d already booked for screening %d: %w", seatID, screeningID, repository.ErrConflict)
	}
	return nil
}

// ReleaseTx marks that no active claim remains on the pair.  The
// release itself is the booking status flip performed by the caller in
// the same transaction; the ledger's part is validating that the seat
// row still exists, which makes the operation idempotent for any seat
// that does.  ErrNotFound aborts the enclosing transaction.
func (l *SeatLedger) ReleaseTx(ctx context.Context, tx *sql.Tx, seatID, screeningID uint64) error {
	if _, err := l.seats.GetTx(ctx, tx, seatID); err != nil {
		return fmt.Errorf("release seat %d for screening %d: %w", seatID, screeningID, err)
	}
	return nil
}
