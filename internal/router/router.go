package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/cine-reservas/internal/handler" // import the handlers that implement the endpoints
)

// RegisterRoutes registers the probe routes that live outside the
// versioned API: liveness at /healthz and database-backed readiness at
// /readyz.
func RegisterRoutes(e *echo.Echo, ready *handler.Readiness) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", ready.Ready)
}

// RegisterAPI registers every /v1 endpoint.  readCache is applied to
// the hot read endpoints (availability and screening listings) and
// writeLimit to the booking/cancellation mutations; either may be a
// pass-through when Redis is unavailable.
func RegisterAPI(
	e *echo.Echo,
	catalog *handler.CatalogHandler,
	screenings *handler.ScreeningHandler,
	bookings *handler.BookingHandler,
	availability *handler.AvailabilityHandler,
	readCache echo.MiddlewareFunc,
	writeLimit echo.MiddlewareFunc,
) {
	v1 := e.Group("/v1")

	// Catalog lookups: the keyed-entity collaborators of the core.
	v1.GET("/movies", catalog.ListMovies)
	v1.POST("/movies", catalog.CreateMovie)
	v1.GET("/movies/:id", catalog.GetMovie)
	v1.PUT("/movies/:id", catalog.UpdateMovie)
	v1.DELETE("/movies/:id", catalog.DeleteMovie)

	v1.GET("/rooms", catalog.ListRooms)
	v1.POST("/rooms", catalog.CreateRoom)
	v1.GET("/rooms/:id", catalog.GetRoom)
	v1.PUT("/rooms/:id", catalog.UpdateRoom)
	v1.GET("/rooms/:id/seats", catalog.ListRoomSeats)
	v1.POST("/rooms/:id/seats", catalog.CreateSeat)
	v1.DELETE("/seats/:id", catalog.DisableSeat)
	v1.PUT("/seats/:id/enable", catalog.EnableSeat)

	v1.GET("/customers", catalog.ListCustomers)
	v1.POST("/customers", catalog.CreateCustomer)
	v1.GET("/customers/:id", catalog.GetCustomer)
	v1.PUT("/customers/:id", catalog.UpdateCustomer)
	v1.DELETE("/customers/:id", catalog.DeleteCustomer)
	v1.GET("/customers/:id/bookings", bookings.ListByCustomer)

	// Scheduling reads are cache-friendly; the cancellation cascade is
	// a mutation and stays uncached.
	v1.GET("/screenings", screenings.List, readCache)
	v1.POST("/screenings", screenings.Create)
	v1.GET("/screenings/:id", screenings.Get)
	v1.GET("/screenings/:id/bookings", bookings.ListByScreening)
	v1.PUT("/screenings/:id/cancel", screenings.Cancel, writeLimit)
	v1.GET("/rooms/:id/screenings", screenings.ListByRoom, readCache)

	// Reservation lifecycle.
	v1.POST("/bookings", bookings.Create, writeLimit)
	v1.GET("/bookings", bookings.ListByDateRange)
	v1.PUT("/bookings/:id/cancel", bookings.Cancel, writeLimit)

	// Read-only availability view.
	v1.GET("/availability", availability.Get, readCache)
}
