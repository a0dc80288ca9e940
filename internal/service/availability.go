package service

import (
	"context"
	"time"

	"github.com/iliyamo/cine-reservas/internal/model"
	"github.com/iliyamo/cine-reservas/internal/repository"
)

// AvailabilityService reports per-room seat counts for a date.  It is
// strictly read-only: the counts come from a single aggregate query,
// so total, occupied and available always describe one snapshot and
// available can never go negative or drift from total minus occupied.
type AvailabilityService struct {
	screenings *repository.ScreeningRepo
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(screenings *repository.ScreeningRepo) *AvailabilityService {
	if screenings == nil {
		panic("nil repository passed to NewAvailabilityService")
	}
	return &AvailabilityService{screenings: screenings}
}

// ComputeForDate returns, for every room with an active screening on
// the date, the total enabled seats across those screenings, how many
// carry an active booking, and the difference.  Rooms with no active
// screening that day are absent from the map.
func (s *AvailabilityService) ComputeForDate(ctx context.Context, date time.Time) (map[uint64]model.RoomAvailability, error) {
	return s.screenings.AvailabilityByRoom(ctx, date)
}
