package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/cine-reservas/internal/model"
	"github.com/iliyamo/cine-reservas/internal/repository"
)

// BookingService creates and cancels individual seat claims.  Every
// mutation runs inside a single transaction so that the precondition
// checks and the write commit or abort together: two concurrent
// creates for the same (seat, screening) pair end with exactly one
// committed booking and one conflict.
type BookingService struct {
	db         *sql.DB
	screenings *repository.ScreeningRepo
	customers  *repository.CustomerRepo
	bookings   *repository.BookingRepo
	ledger     *SeatLedger
}

// NewBookingService constructs a BookingService.  All dependencies
// must be non-nil.
func NewBookingService(db *sql.DB, screenings *repository.ScreeningRepo, customers *repository.CustomerRepo, bookings *repository.BookingRepo, ledger *SeatLedger) *BookingService {
	if db == nil || screenings == nil || customers == nil || bookings == nil || ledger == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{db: db, screenings: screenings, customers: customers, bookings: bookings, ledger: ledger}
}

// Create claims a seat for a customer on a screening.  Preconditions:
// the screening exists and is active, the customer exists and is
// active, the seat is enabled and unclaimed for this screening.  On
// success the booking is inserted dated today and returned with its
// generated fields populated.  ErrNotFound covers every missing or
// inactive precondition; ErrConflict means the pair is already
// claimed.
func (s *BookingService) Create(ctx context.Context, screeningID, seatID, customerID uint64) (*model.Booking, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := s.screenings.GetActiveTx(ctx, tx, screeningID); err != nil {
		return nil, fmt.Errorf("screening %d: %w", screeningID, err)
	}
	if _, err := s.customers.GetByIDTx(ctx, tx, customerID); err != nil {
		return nil, fmt.Errorf("customer %d: %w", customerID, err)
	}
	if err := s.ledger.TryOccupyTx(ctx, tx, seatID, screeningID); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		CustomerID:  customerID,
		SeatID:      seatID,
		ScreeningID: screeningID,
		BookedOn:    time.Now().UTC(),
	}
	if err := s.bookings.CreateTx(ctx, tx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}
	committed = true
	log.Printf("booking %d created: screening=%d seat=%d customer=%d", booking.ID, screeningID, seatID, customerID)
	return booking, nil
}

// Cancel transitions an active booking to CANCELLED and releases its
// seat in the same transaction.  A booking that does not exist or was
// already cancelled returns ErrNotFound: a second cancel is an error,
// not a no-op, so double cancellation stays visible in audits.
func (s *BookingService) Cancel(ctx context.Context, bookingID uint64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	booking, err := s.bookings.GetActiveTx(ctx, tx, bookingID)
	if err != nil {
		return fmt.Errorf("booking %d: %w", bookingID, err)
	}
	if err := s.bookings.CancelTx(ctx, tx, booking.ID); err != nil {
		return fmt.Errorf("cancel booking %d: %w", bookingID, err)
	}
	if err := s.ledger.ReleaseTx(ctx, tx, booking.SeatID, booking.ScreeningID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cancellation: %w", err)
	}
	committed = true
	log.Printf("booking %d cancelled: screening=%d seat=%d", booking.ID, booking.ScreeningID, booking.SeatID)
	return nil
}

// ListActiveByScreening returns the bookings currently active for a
// screening.  The screening must exist and be active.
func (s *BookingService) ListActiveByScreening(ctx context.Context, screeningID uint64) ([]model.Booking, error) {
	if _, err := s.screenings.GetByID(ctx, screeningID); err != nil {
		return nil, fmt.Errorf("screening %d: %w", screeningID, err)
	}
	return s.bookings.ListActiveByScreening(ctx, screeningID)
}

// ListActiveByCustomer returns a customer's active bookings.  The
// customer must exist and be active.
func (s *BookingService) ListActiveByCustomer(ctx context.Context, customerID uint64) ([]model.Booking, error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("customer %d: %w", customerID, err)
	}
	return s.bookings.ListActiveByCustomer(ctx, customerID)
}

// ListActiveByDateRange returns active bookings created between the
// two dates inclusive.
func (s *BookingService) ListActiveByDateRange(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	return s.bookings.ListActiveByDateRange(ctx, from, to)
}
