package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/cine-reservas/internal/model"
)

const bookingColumns = `id, customer_id, seat_id, screening_id, booked_on, status, created_at, updated_at`

// BookingRepo provides persistence for bookings.  A booking is the
// unit of contention in this system: the table carries a stored
// generated column `occupying` that is 1 while status is ACTIVE and
// NULL afterwards, and a unique key over (screening_id, seat_id,
// occupying).  Cancelling a booking nulls the generated column, which
// frees the pair for a later claim without deleting history.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

func scanBooking(row Scanner) (*model.Booking, error) {
	var b model.Booking
	if err := row.Scan(&b.ID, &b.CustomerID, &b.SeatID, &b.ScreeningID, &b.BookedOn, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateTx inserts a new active booking within the scope of an
// existing transaction and populates the generated id, timestamps and
// defaults by querying the row back.  A duplicate-key violation on
// the (screening_id, seat_id, occupying) unique index is surfaced as
// ErrConflict; it means another transaction committed a claim on the
// same pair first.  The caller must commit or rollback.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (customer_id, seat_id, screening_id, booked_on) VALUES (?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, b.CustomerID, b.SeatID, b.ScreeningID, b.BookedOn.Format("2006-01-02"))
	if err != nil {
		if IsDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	got, err := scanBooking(tx.QueryRowContext(ctx, sel, id))
	if err != nil {
		return err
	}
	*b = *got
	return nil
}

// FindActiveBySeatAndScreeningTx returns the active booking claiming
// the (seat, screening) pair, locking it for the duration of the
// transaction.  It returns (nil, nil) when the pair is unclaimed; with
// the unique index in place the locked check plus the insert backstop
// make the claim race-free.
func (r *BookingRepo) FindActiveBySeatAndScreeningTx(ctx context.Context, tx *sql.Tx, seatID, screeningID uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
	           WHERE seat_id = ? AND screening_id = ? AND status = 'ACTIVE' FOR UPDATE`
	b, err := scanBooking(tx.QueryRowContext(ctx, q, seatID, screeningID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetActiveTx loads an active booking by id with a row lock.  Returns
// ErrNotFound when the booking is missing or already cancelled, which
// is what makes a second cancel of the same booking an error rather
// than a no-op.
func (r *BookingRepo) GetActiveTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
	           WHERE id = ? AND status = 'ACTIVE' FOR UPDATE`
	b, err := scanBooking(tx.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CancelTx flips an active booking to CANCELLED within the caller's
// transaction.  Returns ErrNotFound when no active row matched.
func (r *BookingRepo) CancelTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE bookings SET status = 'CANCELLED' WHERE id = ? AND status = 'ACTIVE'`
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

// ListActiveByScreening returns all bookings currently active for a
// screening, ordered by id.
func (r *BookingRepo) ListActiveByScreening(ctx context.Context, screeningID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
	           WHERE screening_id = ? AND status = 'ACTIVE' ORDER BY id`
	return r.queryBookings(ctx, r.db.QueryContext, q, screeningID)
}

// ListActiveByScreeningTx is the locked variant used by the screening
// cancellation cascade: every active booking of the screening is
// locked before any of them is flipped, so a concurrent single-booking
// cancel cannot interleave with the cascade.
func (r *BookingRepo) ListActiveByScreeningTx(ctx context.Context, tx *sql.Tx, screeningID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
	           WHERE screening_id = ? AND status = 'ACTIVE' ORDER BY id FOR UPDATE`
	return r.queryBookings(ctx, tx.QueryContext, q, screeningID)
}

// ListActiveByCustomer returns a customer's active bookings, newest
// first.
func (r *BookingRepo) ListActiveByCustomer(ctx context.Context, customerID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
	           WHERE customer_id = ? AND status = 'ACTIVE' ORDER BY created_at DESC, id DESC`
	return r.queryBookings(ctx, r.db.QueryContext, q, customerID)
}

// ListActiveByDateRange returns the active bookings created between
// the two dates inclusive.
func (r *BookingRepo) ListActiveByDateRange(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
	           WHERE booked_on BETWEEN ? AND ? AND status = 'ACTIVE' ORDER BY booked_on, id`
	return r.queryBookings(ctx, r.db.QueryContext, q, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

type queryFunc func(ctx context.Context, query string, args ...any) (*sql.Rows, error)

func (r *BookingRepo) queryBookings(ctx context.Context, query queryFunc, q string, args ...any) ([]model.Booking, error) {
	rows, err := query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
