package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cine-reservas/internal/model"
	"github.com/iliyamo/cine-reservas/internal/repository"
	"github.com/iliyamo/cine-reservas/internal/service"
)

func newBookingHandler(t *testing.T) (*BookingHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	bookings := repository.NewBookingRepo(db)
	ledger := service.NewSeatLedger(repository.NewSeatRepo(db), bookings)
	svc := service.NewBookingService(db, repository.NewScreeningRepo(db), repository.NewCustomerRepo(db), bookings, ledger)
	return NewBookingHandler(svc), mock
}

func expectCreateBooking(mock sqlmock.Sqlmock, screeningID, seatID, customerID, bookingID uint64) {
	now := time.Now().UTC()
	date := now.AddDate(0, 0, 3).Truncate(24 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM screenings WHERE id = \? AND status = 'ACTIVE' FOR UPDATE`).
		WithArgs(screeningID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "room_id", "show_date", "starts_at", "ends_at", "status", "created_at", "updated_at"}).
			AddRow(screeningID, 1, 1, date, "18:00:00", "20:30:00", "ACTIVE", now, now))
	mock.ExpectQuery(`SELECT .+ FROM customers WHERE id = \? AND status = \?`).
		WithArgs(customerID, "ACTIVE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_number", "name", "lastname", "age", "phone_number", "email", "status", "created_at", "updated_at"}).
			AddRow(customerID, "0912345678", "Ada", "Lovelace", 30, nil, "ada@example.com", "ACTIVE", now, now))
	mock.ExpectQuery(`SELECT .+ FROM seats WHERE id = \? FOR UPDATE`).
		WithArgs(seatID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "row_num", "seat_number", "seat_state", "created_at", "updated_at"}).
			AddRow(seatID, 1, 1, 1, "ENABLED", now, now))
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE seat_id = \? AND screening_id = \? AND status = 'ACTIVE' FOR UPDATE`).
		WithArgs(seatID, screeningID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(customerID, seatID, screeningID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(int64(bookingID), 1))
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \?`).
		WithArgs(int64(bookingID)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "seat_id", "screening_id", "booked_on", "status", "created_at", "updated_at"}).
			AddRow(bookingID, customerID, seatID, screeningID, now.Truncate(24*time.Hour), "ACTIVE", now, now))
	mock.ExpectCommit()
}

func TestBookingHandlerCreate(t *testing.T) {
	h, mock := newBookingHandler(t)
	expectCreateBooking(mock, 5, 3, 9, 42)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings",
		strings.NewReader(`{"screening_id": 5, "seat_id": 3, "customer_id": 9}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Create(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(42), got.ID)
	assert.Equal(t, model.RecordActive, got.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingHandlerCreateRejectsMissingFields(t *testing.T) {
	h, mock := newBookingHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings",
		strings.NewReader(`{"screening_id": 5, "seat_id": 3}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Create(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingHandlerCreateConflict(t *testing.T) {
	h, mock := newBookingHandler(t)

	now := time.Now().UTC()
	date := now.AddDate(0, 0, 3).Truncate(24 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM screenings WHERE id = \? AND status = 'ACTIVE' FOR UPDATE`).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "room_id", "show_date", "starts_at", "ends_at", "status", "created_at", "updated_at"}).
			AddRow(5, 1, 1, date, "18:00:00", "20:30:00", "ACTIVE", now, now))
	mock.ExpectQuery(`SELECT .+ FROM customers WHERE id = \? AND status = \?`).
		WithArgs(uint64(9), "ACTIVE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_number", "name", "lastname", "age", "phone_number", "email", "status", "created_at", "updated_at"}).
			AddRow(9, "0912345678", "Ada", "Lovelace", 30, nil, "ada@example.com", "ACTIVE", now, now))
	mock.ExpectQuery(`SELECT .+ FROM seats WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "row_num", "seat_number", "seat_state", "created_at", "updated_at"}).
			AddRow(3, 1, 1, 1, "ENABLED", now, now))
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE seat_id = \? AND screening_id = \? AND status = 'ACTIVE' FOR UPDATE`).
		WithArgs(uint64(3), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "seat_id", "screening_id", "booked_on", "status", "created_at", "updated_at"}).
			AddRow(41, 8, 3, 5, now.Truncate(24*time.Hour), "ACTIVE", now, now))
	mock.ExpectRollback()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings",
		strings.NewReader(`{"screening_id": 5, "seat_id": 3, "customer_id": 9}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Create(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingHandlerCancelNotFound(t *testing.T) {
	h, mock := newBookingHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \? AND status = 'ACTIVE' FOR UPDATE`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/bookings/42/cancel", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingHandlerCancelBadID(t *testing.T) {
	h, mock := newBookingHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/bookings/zero/cancel", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("zero")

	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
