package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cine-reservas/internal/repository"
	"github.com/iliyamo/cine-reservas/internal/service"
)

// parseID extracts a positive integer path parameter.  Zero and
// malformed values are rejected.
func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// parseQueryID parses a positive integer query parameter value.
func parseQueryID(value string) (uint64, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// parsePosition parses a positive seat coordinate (row or number).
func parsePosition(value string) (uint32, error) {
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil || n == 0 {
		return 0, errors.New("invalid position")
	}
	return uint32(n), nil
}

// parseDate parses a YYYY-MM-DD query or path value.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// writeError translates the service/repository error taxonomy into
// HTTP responses: missing or inactive entities are 404, claimed seats
// are 409, past-date cancellations are 400, and anything else is an
// unexpected store failure reported as 500 without leaking detail.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrScreeningPast):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
