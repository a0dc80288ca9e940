package repository

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cine-reservas/internal/model"
)

var (
	customerLookupCols  = []string{"id", "document_number", "name", "lastname", "age", "phone_number", "email", "status", "created_at", "updated_at"}
	seatLookupCols      = []string{"id", "room_id", "row_num", "seat_number", "seat_state", "created_at", "updated_at"}
	screeningLookupCols = []string{"id", "movie_id", "room_id", "show_date", "starts_at", "ends_at", "status", "created_at", "updated_at"}
)

func newCustomerRepo(t *testing.T) (*CustomerRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCustomerRepo(db), mock
}

func newScreeningRepo(t *testing.T) (*ScreeningRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewScreeningRepo(db), mock
}

func customerLookupRow(id uint64, document string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(customerLookupCols).
		AddRow(id, document, "Ada", "Lovelace", 30, "555-0100", "ada@example.com", "ACTIVE", now, now)
}

func TestCustomerGetByDocument(t *testing.T) {
	repo, mock := newCustomerRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM customers WHERE document_number = \? AND status = 'ACTIVE'`).
		WithArgs("CC-1001").
		WillReturnRows(customerLookupRow(7, "CC-1001"))

	customer, err := repo.GetByDocument(context.Background(), "CC-1001")

	require.NoError(t, err)
	assert.Equal(t, uint64(7), customer.ID)
	assert.Equal(t, "CC-1001", customer.DocumentNumber)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerGetByDocumentNotFound(t *testing.T) {
	repo, mock := newCustomerRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM customers WHERE document_number = \? AND status = 'ACTIVE'`).
		WithArgs("CC-9999").
		WillReturnRows(sqlmock.NewRows(customerLookupCols))

	_, err := repo.GetByDocument(context.Background(), "CC-9999")

	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerGetByEmail(t *testing.T) {
	repo, mock := newCustomerRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM customers WHERE email = \? AND status = 'ACTIVE' ORDER BY id LIMIT 1`).
		WithArgs("ada@example.com").
		WillReturnRows(customerLookupRow(7, "CC-1001"))

	customer, err := repo.GetByEmail(context.Background(), "ada@example.com")

	require.NoError(t, err)
	require.NotNil(t, customer.Email)
	assert.Equal(t, "ada@example.com", *customer.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatGetByPosition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := NewSeatRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM seats WHERE room_id = \? AND row_num = \? AND seat_number = \?`).
		WithArgs(uint64(2), uint32(4), uint32(11)).
		WillReturnRows(sqlmock.NewRows(seatLookupCols).
			AddRow(31, 2, 4, 11, "DISABLED", now, now))

	seat, err := repo.GetByPosition(context.Background(), 2, 4, 11)

	require.NoError(t, err)
	assert.Equal(t, uint64(31), seat.ID)
	assert.Equal(t, model.SeatDisabled, seat.State)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatGetByPositionNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := NewSeatRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM seats WHERE room_id = \? AND row_num = \? AND seat_number = \?`).
		WithArgs(uint64(2), uint32(4), uint32(99)).
		WillReturnRows(sqlmock.NewRows(seatLookupCols))

	_, err = repo.GetByPosition(context.Background(), 2, 4, 99)

	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func screeningLookupRow(id, movieID uint64, day time.Time) []driver.Value {
	now := time.Now().UTC()
	return []driver.Value{id, movieID, 1, day, "18:00", "20:30", "ACTIVE", now, now}
}

func TestScreeningListActiveByMovieAndDateRange(t *testing.T) {
	repo, mock := newScreeningRepo(t)

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6)
	rows := sqlmock.NewRows(screeningLookupCols).
		AddRow(screeningLookupRow(5, 3, from)...).
		AddRow(screeningLookupRow(6, 3, from.AddDate(0, 0, 2))...)

	mock.ExpectQuery(`SELECT .+ FROM screenings WHERE movie_id = \? AND show_date BETWEEN \? AND \? AND status = 'ACTIVE' ORDER BY show_date, starts_at, id`).
		WithArgs(uint64(3), "2026-09-01", "2026-09-07").
		WillReturnRows(rows)

	screenings, err := repo.ListActiveByMovieAndDateRange(context.Background(), 3, from, to)

	require.NoError(t, err)
	require.Len(t, screenings, 2)
	assert.Equal(t, uint64(5), screenings[0].ID)
	assert.Equal(t, uint64(3), screenings[1].MovieID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScreeningListActiveByGenreAndDateRange(t *testing.T) {
	repo, mock := newScreeningRepo(t)

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6)
	rows := sqlmock.NewRows(screeningLookupCols).
		AddRow(screeningLookupRow(5, 3, from)...)

	mock.ExpectQuery(`SELECT .+ FROM screenings sc JOIN movies m ON m\.id = sc\.movie_id AND m\.status = 'ACTIVE' WHERE m\.genre = \? AND sc\.show_date BETWEEN \? AND \? AND sc\.status = 'ACTIVE'`).
		WithArgs("DRAMA", "2026-09-01", "2026-09-07").
		WillReturnRows(rows)

	screenings, err := repo.ListActiveByGenreAndDateRange(context.Background(), "DRAMA", from, to)

	require.NoError(t, err)
	require.Len(t, screenings, 1)
	assert.Equal(t, uint64(5), screenings[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScreeningListActiveByMovieAndDateRangeEmpty(t *testing.T) {
	repo, mock := newScreeningRepo(t)

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM screenings WHERE movie_id = \?`).
		WithArgs(uint64(3), "2026-09-01", "2026-09-01").
		WillReturnRows(sqlmock.NewRows(screeningLookupCols))

	screenings, err := repo.ListActiveByMovieAndDateRange(context.Background(), 3, from, from)

	require.NoError(t, err)
	assert.Empty(t, screenings)
	require.NoError(t, mock.ExpectationsWereMet())
}
