package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe.  It answers as long as the process is
// up, regardless of dependency state.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Readiness reports whether the service can actually serve traffic,
// which for this service means the database answers a ping.
type Readiness struct {
	DB *sql.DB
}

// Ready handles GET /readyz.  A failed ping returns 503 so load
// balancers stop routing bookings at an instance that cannot commit
// them.
func (h *Readiness) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
