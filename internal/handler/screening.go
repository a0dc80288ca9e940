package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cine-reservas/internal/model"
	"github.com/iliyamo/cine-reservas/internal/repository"
	"github.com/iliyamo/cine-reservas/internal/service"
)

// ScreeningHandler exposes scheduling lookups, screening creation and
// the cancellation cascade.  Cancellation goes through the screening
// service; plain lookups hit the repository directly.
type ScreeningHandler struct {
	Screenings    *service.ScreeningService
	ScreeningRepo *repository.ScreeningRepo
	MovieRepo     *repository.MovieRepo
	RoomRepo      *repository.RoomRepo
}

// NewScreeningHandler constructs a ScreeningHandler with the provided
// service and repositories.  All dependencies must be non-nil.
func NewScreeningHandler(screenings *service.ScreeningService, screeningRepo *repository.ScreeningRepo, movieRepo *repository.MovieRepo, roomRepo *repository.RoomRepo) *ScreeningHandler {
	if screenings == nil || screeningRepo == nil || movieRepo == nil || roomRepo == nil {
		panic("nil dependency passed to NewScreeningHandler")
	}
	return &ScreeningHandler{Screenings: screenings, ScreeningRepo: screeningRepo, MovieRepo: movieRepo, RoomRepo: roomRepo}
}

// Create handles POST /v1/screenings.  The body must reference an
// active movie and room and carry show_date (YYYY-MM-DD) plus
// starts_at/ends_at times of day (HH:MM:SS).
func (h *ScreeningHandler) Create(c echo.Context) error {
	var body struct {
		MovieID  uint64 `json:"movie_id"`
		RoomID   uint64 `json:"room_id"`
		ShowDate string `json:"show_date"`
		StartsAt string `json:"starts_at"`
		EndsAt   string `json:"ends_at"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := parseDate(body.ShowDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show_date, expected YYYY-MM-DD"})
	}
	if body.StartsAt == "" || body.EndsAt == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at and ends_at are required"})
	}
	ctx := c.Request().Context()
	if _, err := h.MovieRepo.GetByID(ctx, body.MovieID); err != nil {
		return writeError(c, err)
	}
	if _, err := h.RoomRepo.GetByID(ctx, body.RoomID); err != nil {
		return writeError(c, err)
	}
	screening := &model.Screening{
		MovieID:  body.MovieID,
		RoomID:   body.RoomID,
		ShowDate: date,
		StartsAt: body.StartsAt,
		EndsAt:   body.EndsAt,
	}
	if err := h.ScreeningRepo.Insert(ctx, screening); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, screening)
}

// Get handles GET /v1/screenings/:id.
func (h *ScreeningHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	screening, err := h.ScreeningRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, screening)
}

// List handles GET /v1/screenings.  With ?date= it returns the active
// screenings of that day; with ?from=&to= those inside the range,
// optionally narrowed by ?movie_id= or ?genre=.
func (h *ScreeningHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if d := c.QueryParam("date"); d != "" {
		date, err := parseDate(d)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
		}
		screenings, err := h.ScreeningRepo.ListActiveByDate(ctx, date)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, screenings)
	}
	from, err := parseDate(c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date or from/to query parameters are required"})
	}
	to, err := parseDate(c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to date, expected YYYY-MM-DD"})
	}
	var screenings []model.Screening
	switch {
	case c.QueryParam("movie_id") != "":
		movieID, err := parseQueryID(c.QueryParam("movie_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie_id"})
		}
		if _, err := h.MovieRepo.GetByID(ctx, movieID); err != nil {
			return writeError(c, err)
		}
		screenings, err = h.ScreeningRepo.ListActiveByMovieAndDateRange(ctx, movieID, from, to)
		if err != nil {
			return writeError(c, err)
		}
	case c.QueryParam("genre") != "":
		screenings, err = h.ScreeningRepo.ListActiveByGenreAndDateRange(ctx, c.QueryParam("genre"), from, to)
		if err != nil {
			return writeError(c, err)
		}
	default:
		screenings, err = h.ScreeningRepo.ListActiveByDateRange(ctx, from, to)
		if err != nil {
			return writeError(c, err)
		}
	}
	return c.JSON(http.StatusOK, screenings)
}

// ListByRoom handles GET /v1/rooms/:id/screenings?date=YYYY-MM-DD.
func (h *ScreeningHandler) ListByRoom(c echo.Context) error {
	roomID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	date, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	ctx := c.Request().Context()
	if _, err := h.RoomRepo.GetByID(ctx, roomID); err != nil {
		return writeError(c, err)
	}
	screenings, err := h.ScreeningRepo.ListActiveByRoomAndDate(ctx, roomID, date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, screenings)
}

// Cancel handles PUT /v1/screenings/:id/cancel.  It cancels the
// screening together with every active booking on it, atomically, and
// responds with the distinct customers whose bookings were cancelled.
// Screenings dated before today cannot be cancelled (400).
func (h *ScreeningHandler) Cancel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	affected, err := h.Screenings.Cancel(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"affected_customers": affected})
}
