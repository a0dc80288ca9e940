package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cine-reservas/internal/model"
	"github.com/iliyamo/cine-reservas/internal/repository"
)

const selectAvailability = `SELECT rm\.id, .+ FROM screenings sc JOIN rooms rm .+ GROUP BY rm\.id`

func newAvailabilityService(t *testing.T) (*AvailabilityService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewAvailabilityService(repository.NewScreeningRepo(db)), mock
}

func TestAvailabilityServiceComputeForDate(t *testing.T) {
	svc, mock := newAvailabilityService(t)

	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "total", "occupied", "available"}).
		AddRow(1, 40, 25, 15).
		AddRow(2, 12, 0, 12)
	mock.ExpectQuery(selectAvailability).WithArgs("2026-09-12").WillReturnRows(rows)

	got, err := svc.ComputeForDate(context.Background(), date)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.RoomAvailability{Total: 40, Occupied: 25, Available: 15}, got[1])
	assert.Equal(t, model.RoomAvailability{Total: 12, Occupied: 0, Available: 12}, got[2])
	for roomID, a := range got {
		assert.Equal(t, a.Total-a.Occupied, a.Available, "room %d", roomID)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityServiceComputeForDateNoScreenings(t *testing.T) {
	svc, mock := newAvailabilityService(t)

	mock.ExpectQuery(selectAvailability).WithArgs("2026-09-12").
		WillReturnRows(sqlmock.NewRows([]string{"id", "total", "occupied", "available"}))

	got, err := svc.ComputeForDate(context.Background(), time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
