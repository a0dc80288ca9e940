package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cine-reservas/internal/model"
	"github.com/iliyamo/cine-reservas/internal/queue"
	"github.com/iliyamo/cine-reservas/internal/repository"
)

const (
	selectScreeningBookings = `SELECT .+ FROM bookings WHERE screening_id = \? AND status = 'ACTIVE' ORDER BY id FOR UPDATE`
	cancelScreening         = `UPDATE screenings SET status = 'CANCELLED' WHERE id = \? AND status = 'ACTIVE'`
)

// recordingNotifier captures fanned-out events instead of publishing
// them, so tests can assert on exactly who was notified.
type recordingNotifier struct {
	events []queue.ScreeningCancelledEvent
}

func (n *recordingNotifier) ScreeningCancelled(_ context.Context, ev queue.ScreeningCancelledEvent) {
	n.events = append(n.events, ev)
}

func newScreeningService(t *testing.T, notifier Notifier) (*ScreeningService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	bookings := repository.NewBookingRepo(db)
	ledger := NewSeatLedger(repository.NewSeatRepo(db), bookings)
	svc := NewScreeningService(db, repository.NewScreeningRepo(db), bookings, repository.NewCustomerRepo(db), ledger, notifier)
	return svc, mock
}

func TestScreeningServiceCancelCascades(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, mock := newScreeningService(t, notifier)

	// Three bookings, two of them by customer 9: the fan-out must hit
	// each customer exactly once, in booking order.
	mock.ExpectBegin()
	mock.ExpectQuery(selectActiveScreening).WithArgs(uint64(5)).WillReturnRows(screeningRow(5, futureDate()))
	bookings := sqlmock.NewRows(bookingCols)
	now := time.Now().UTC()
	bookings.AddRow(41, 9, 3, 5, now, "ACTIVE", now, now)
	bookings.AddRow(42, 9, 4, 5, now, "ACTIVE", now, now)
	bookings.AddRow(43, 7, 6, 5, now, "ACTIVE", now, now)
	mock.ExpectQuery(selectScreeningBookings).WithArgs(uint64(5)).WillReturnRows(bookings)
	for i, seatID := range []uint64{3, 4, 6} {
		mock.ExpectExec(cancelBooking).WithArgs(uint64(41 + i)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(selectSeatForUpdate).WithArgs(seatID).WillReturnRows(seatRow(seatID, "ENABLED"))
	}
	mock.ExpectExec(cancelScreening).WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(selectCustomer).WithArgs(uint64(9), "ACTIVE").WillReturnRows(customerRow(9))
	mock.ExpectQuery(selectCustomer).WithArgs(uint64(7), "ACTIVE").WillReturnRows(customerRow(7))

	affected, err := svc.Cancel(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, []uint64{9, 7}, affected)
	require.Len(t, notifier.events, 2)
	assert.Equal(t, uint64(9), notifier.events[0].CustomerID)
	assert.Equal(t, uint64(7), notifier.events[1].CustomerID)
	assert.Equal(t, uint64(5), notifier.events[0].ScreeningID)
	assert.NotEmpty(t, notifier.events[0].EventID)
	assert.NotEqual(t, notifier.events[0].EventID, notifier.events[1].EventID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScreeningServiceCancelWithoutBookings(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, mock := newScreeningService(t, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery(selectActiveScreening).WithArgs(uint64(5)).WillReturnRows(screeningRow(5, futureDate()))
	mock.ExpectQuery(selectScreeningBookings).WithArgs(uint64(5)).WillReturnRows(sqlmock.NewRows(bookingCols))
	mock.ExpectExec(cancelScreening).WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := svc.Cancel(context.Background(), 5)

	require.NoError(t, err)
	assert.Empty(t, affected)
	assert.Empty(t, notifier.events)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScreeningServiceCancelPastDate(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, mock := newScreeningService(t, notifier)

	past := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectQuery(selectActiveScreening).WithArgs(uint64(5)).WillReturnRows(screeningRow(5, past))
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), 5)

	require.ErrorIs(t, err, ErrScreeningPast)
	assert.Empty(t, notifier.events)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScreeningServiceCancelNotFound(t *testing.T) {
	svc, mock := newScreeningService(t, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(selectActiveScreening).WithArgs(uint64(5)).WillReturnRows(sqlmock.NewRows(screeningCols))
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), 5)

	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScreeningServiceCancelRollsBackMidCascade(t *testing.T) {
	// A failure on the second booking's seat must unwind the first
	// booking's cancellation too.
	notifier := &recordingNotifier{}
	svc, mock := newScreeningService(t, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery(selectActiveScreening).WithArgs(uint64(5)).WillReturnRows(screeningRow(5, futureDate()))
	bookings := sqlmock.NewRows(bookingCols)
	now := time.Now().UTC()
	bookings.AddRow(41, 9, 3, 5, now, "ACTIVE", now, now)
	bookings.AddRow(42, 7, 4, 5, now, "ACTIVE", now, now)
	mock.ExpectQuery(selectScreeningBookings).WithArgs(uint64(5)).WillReturnRows(bookings)
	mock.ExpectExec(cancelBooking).WithArgs(uint64(41)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectSeatForUpdate).WithArgs(uint64(3)).WillReturnRows(seatRow(3, "ENABLED"))
	mock.ExpectExec(cancelBooking).WithArgs(uint64(42)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectSeatForUpdate).WithArgs(uint64(4)).WillReturnRows(sqlmock.NewRows(seatCols))
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), 5)

	require.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, notifier.events)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDistinctCustomersPreservesOrder(t *testing.T) {
	in := []model.Booking{
		{ID: 1, CustomerID: 9},
		{ID: 2, CustomerID: 7},
		{ID: 3, CustomerID: 9},
		{ID: 4, CustomerID: 2},
	}
	assert.Equal(t, []uint64{9, 7, 2}, distinctCustomers(in))
	assert.Empty(t, distinctCustomers(nil))
}
