package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cine-reservas/internal/model"
	"github.com/iliyamo/cine-reservas/internal/queue"
	"github.com/iliyamo/cine-reservas/internal/repository"
)

// ScreeningService cancels whole screenings.  The cascade — cancel
// every active booking, release every seat, flip the screening — runs
// as one transaction: a failure anywhere rolls the whole thing back,
// so a cancelled screening can never be observed with active bookings
// still attached.
type ScreeningService struct {
	db         *sql.DB
	screenings *repository.ScreeningRepo
	bookings   *repository.BookingRepo
	customers  *repository.CustomerRepo
	ledger     *SeatLedger
	notifier   Notifier
}

// NewScreeningService constructs a ScreeningService.  notifier may be
// nil, in which case cancellations are not fanned out.
func NewScreeningService(db *sql.DB, screenings *repository.ScreeningRepo, bookings *repository.BookingRepo, customers *repository.CustomerRepo, ledger *SeatLedger, notifier Notifier) *ScreeningService {
	if db == nil || screenings == nil || bookings == nil || customers == nil || ledger == nil {
		panic("nil dependency passed to NewScreeningService")
	}
	return &ScreeningService{db: db, screenings: screenings, bookings: bookings, customers: customers, ledger: ledger, notifier: notifier}
}

// Cancel cancels an active screening and cascades to all of its
// active bookings.  A screening dated before today returns
// ErrScreeningPast and changes nothing.  On success the distinct
// customers whose bookings were cancelled are returned, in booking
// order, after being handed to the notifier.
func (s *ScreeningService) Cancel(ctx context.Context, screeningID uint64) ([]uint64, error) {
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

	screening, err := s.screenings.GetActiveTx(ctx, tx, screeningID)
	if err != nil {
		return nil, fmt.Errorf("screening %d: %w", screeningID, err)
	}
	if screening.ShowDate.Before(today()) {
		return nil, fmt.Errorf("screening %d on %s: %w", screeningID, screening.ShowDate.Format("2006-01-02"), ErrScreeningPast)
	}

	bookings, err := s.bookings.ListActiveByScreeningTx(ctx, tx, screeningID)
	if err != nil {
		return nil, fmt.Errorf("list bookings of screening %d: %w", screeningID, err)
	}
	for _, b := range bookings {
		if err := s.bookings.CancelTx(ctx, tx, b.ID); err != nil {
			return nil, fmt.Errorf("cancel booking %d: %w", b.ID, err)
		}
		if err := s.ledger.ReleaseTx(ctx, tx, b.SeatID, b.ScreeningID); err != nil {
			return nil, err
		}
	}
	if err := s.screenings.CancelTx(ctx, tx, screeningID); err != nil {
		return nil, fmt.Errorf("cancel screening %d: %w", screeningID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cancellation: %w", err)
	}
	committed = true

	affected := distinctCustomers(bookings)
	log.Printf("screening %d cancelled: bookings=%d customers=%d", screeningID, len(bookings), len(affected))
	s.notifyAffected(ctx, screening, affected)
	return affected, nil
}

// notifyAffected fans one event per distinct customer out to the
// notifier.  The cascade has already committed; a customer that can no
// longer be read is logged and skipped, never unwound.
func (s *ScreeningService) notifyAffected(ctx context.Context, screening *model.Screening, customerIDs []uint64) {
	if s.notifier == nil || len(customerIDs) == 0 {
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, id := range customerIDs {
		customer, err := s.customers.GetByID(ctx, id)
		if err != nil {
			log.Printf("notify: load customer %d failed: %v", id, err)
			continue
		}
		s.notifier.ScreeningCancelled(ctx, queue.ScreeningCancelledEvent{
			EventID:      uuid.NewString(),
			ScreeningID:  screening.ID,
			ShowDate:     screening.ShowDate.Format("2006-01-02"),
			RoomID:       screening.RoomID,
			CustomerID:   customer.ID,
			CustomerName: customer.FullName(),
			Contact:      customer.Contact(),
			CancelledAt:  now,
		})
	}
}

// distinctCustomers deduplicates the customers behind a booking list,
// preserving first-seen order.
func distinctCustomers(bookings []model.Booking) []uint64 {
	seen := make(map[uint64]struct{}, len(bookings))
	out := make([]uint64, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.CustomerID]; ok {
			continue
		}
		seen[b.CustomerID] = struct{}{}
		out = append(out, b.CustomerID)
	}
	return out
}

// today returns midnight UTC of the current day, the precision the
// past-date guard compares at.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
