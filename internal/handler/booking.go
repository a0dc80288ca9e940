package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cine-reservas/internal/service"
)

// BookingHandler exposes booking creation, cancellation and listings.
// All state changes are delegated to the booking service, which owns
// the transaction; the handler only binds input and maps errors.
type BookingHandler struct {
	Bookings *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	if bookings == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings}
}

// Create handles POST /v1/bookings.  The request body must contain a
// JSON object with screening_id, seat_id and customer_id.  It returns
// 201 Created with the new booking, 404 when any referenced entity is
// missing or inactive, and 409 when the seat is already claimed for
// the screening.
func (h *BookingHandler) Create(c echo.Context) error {
	var body struct {
		ScreeningID uint64 `json:"screening_id"`
		SeatID      uint64 `json:"seat_id"`
		CustomerID  uint64 `json:"customer_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ScreeningID == 0 || body.SeatID == 0 || body.CustomerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "screening_id, seat_id and customer_id are required"})
	}
	booking, err := h.Bookings.Create(c.Request().Context(), body.ScreeningID, body.SeatID, body.CustomerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

// Cancel handles PUT /v1/bookings/:id/cancel.  Cancelling a booking
// that does not exist or was already cancelled returns 404; the second
// cancel of the same booking is deliberately an error.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Bookings.Cancel(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListByScreening handles GET /v1/screenings/:id/bookings and returns
// the bookings currently active for the screening.
func (h *BookingHandler) ListByScreening(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bookings, err := h.Bookings.ListActiveByScreening(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

// ListByCustomer handles GET /v1/customers/:id/bookings and returns
// the customer's active bookings, newest first.
func (h *BookingHandler) ListByCustomer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bookings, err := h.Bookings.ListActiveByCustomer(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

// ListByDateRange handles GET /v1/bookings?from=YYYY-MM-DD&to=YYYY-MM-DD
// and returns active bookings created inside the range.
func (h *BookingHandler) ListByDateRange(c echo.Context) error {
	from, err := parseDate(c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from date, expected YYYY-MM-DD"})
	}
	to, err := parseDate(c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to date, expected YYYY-MM-DD"})
	}
	bookings, err := h.Bookings.ListActiveByDateRange(c.Request().Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}
