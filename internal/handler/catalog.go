package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cine-reservas/internal/model"
	"github.com/iliyamo/cine-reservas/internal/repository"
)

// CatalogHandler exposes the plain keyed-entity lookups the
// reservation core collaborates with: movies, rooms, seats and
// customers.  Everything here goes straight through the generic store
// compositions; there is no business logic to protect.
type CatalogHandler struct {
	Movies    *repository.MovieRepo
	Rooms     *repository.RoomRepo
	Seats     *repository.SeatRepo
	Customers *repository.CustomerRepo
}

// NewCatalogHandler constructs a CatalogHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewCatalogHandler(movies *repository.MovieRepo, rooms *repository.RoomRepo, seats *repository.SeatRepo, customers *repository.CustomerRepo) *CatalogHandler {
	if movies == nil || rooms == nil || seats == nil || customers == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Movies: movies, Rooms: rooms, Seats: seats, Customers: customers}
}

// ListMovies handles GET /v1/movies.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	movies, err := h.Movies.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, movies)
}

// GetMovie handles GET /v1/movies/:id.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	movie, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, movie)
}

// CreateMovie handles POST /v1/movies.
func (h *CatalogHandler) CreateMovie(c echo.Context) error {
	var movie model.Movie
	if err := c.Bind(&movie); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if movie.Name == "" || movie.Genre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and genre are required"})
	}
	if err := h.Movies.Insert(c.Request().Context(), &movie); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, movie)
}

// UpdateMovie handles PUT /v1/movies/:id and rewrites the mutable
// fields of an active movie.
func (h *CatalogHandler) UpdateMovie(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var movie model.Movie
	if err := c.Bind(&movie); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if movie.Name == "" || movie.Genre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and genre are required"})
	}
	if err := h.Movies.Update(c.Request().Context(), id, &movie); err != nil {
		return writeError(c, err)
	}
	movie.ID = id
	return c.JSON(http.StatusOK, movie)
}

// DeleteMovie handles DELETE /v1/movies/:id (soft delete).
func (h *CatalogHandler) DeleteMovie(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Movies.Deactivate(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRooms handles GET /v1/rooms.
func (h *CatalogHandler) ListRooms(c echo.Context) error {
	rooms, err := h.Rooms.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /v1/rooms/:id.
func (h *CatalogHandler) GetRoom(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// CreateRoom handles POST /v1/rooms.
func (h *CatalogHandler) CreateRoom(c echo.Context) error {
	var room model.Room
	if err := c.Bind(&room); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if room.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if err := h.Rooms.Insert(c.Request().Context(), &room); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom handles PUT /v1/rooms/:id.
func (h *CatalogHandler) UpdateRoom(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var room model.Room
	if err := c.Bind(&room); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if room.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if err := h.Rooms.Update(c.Request().Context(), id, &room); err != nil {
		return writeError(c, err)
	}
	room.ID = id
	return c.JSON(http.StatusOK, room)
}

// ListRoomSeats handles GET /v1/rooms/:id/seats.  Without parameters
// it returns the in-service seats of the room ordered by row and
// number; with ?row= and ?number= it returns the single seat at that
// position regardless of its service state.
func (h *CatalogHandler) ListRoomSeats(c echo.Context) error {
	roomID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		return writeError(c, err)
	}
	if c.QueryParam("row") != "" || c.QueryParam("number") != "" {
		rowNum, err := parsePosition(c.QueryParam("row"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid row"})
		}
		seatNumber, err := parsePosition(c.QueryParam("number"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid number"})
		}
		seat, err := h.Seats.GetByPosition(ctx, roomID, rowNum, seatNumber)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, seat)
	}
	seats, err := h.Seats.ListEnabledByRoom(ctx, roomID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, seats)
}

// CreateSeat handles POST /v1/rooms/:id/seats and registers a seat in
// the room.  A duplicate (row, number) pair in the same room is a 409.
func (h *CatalogHandler) CreateSeat(c echo.Context) error {
	roomID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body struct {
		RowNum     uint32 `json:"row"`
		SeatNumber uint32 `json:"number"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RowNum == 0 || body.SeatNumber == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "row and number are required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		return writeError(c, err)
	}
	seat := &model.Seat{RoomID: roomID, RowNum: body.RowNum, SeatNumber: body.SeatNumber}
	if err := h.Seats.Insert(ctx, seat); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, seat)
}

// DisableSeat handles DELETE /v1/seats/:id and takes a seat out of
// service.  Existing bookings are untouched; the seat just stops being
// claimable and drops out of availability totals.
func (h *CatalogHandler) DisableSeat(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Seats.Deactivate(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// EnableSeat handles PUT /v1/seats/:id/enable and returns a disabled
// seat to service.  Enabling a seat that is already in service (or
// missing) is a 404.
func (h *CatalogHandler) EnableSeat(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Seats.Reactivate(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCustomers handles GET /v1/customers.  With ?document_number= or
// ?email= it resolves to the single matching active customer instead
// of the full listing.
func (h *CatalogHandler) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	if doc := c.QueryParam("document_number"); doc != "" {
		customer, err := h.Customers.GetByDocument(ctx, doc)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, customer)
	}
	if email := c.QueryParam("email"); email != "" {
		customer, err := h.Customers.GetByEmail(ctx, email)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, customer)
	}
	customers, err := h.Customers.ListActive(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /v1/customers/:id.
func (h *CatalogHandler) GetCustomer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	customer, err := h.Customers.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// CreateCustomer handles POST /v1/customers.  The document number must
// be unique; a duplicate is reported as 409.
func (h *CatalogHandler) CreateCustomer(c echo.Context) error {
	var customer model.Customer
	if err := c.Bind(&customer); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if customer.DocumentNumber == "" || customer.Name == "" || customer.Lastname == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "document_number, name and lastname are required"})
	}
	if err := h.Customers.Insert(c.Request().Context(), &customer); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer handles PUT /v1/customers/:id.
func (h *CatalogHandler) UpdateCustomer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var customer model.Customer
	if err := c.Bind(&customer); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if customer.DocumentNumber == "" || customer.Name == "" || customer.Lastname == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "document_number, name and lastname are required"})
	}
	if err := h.Customers.Update(c.Request().Context(), id, &customer); err != nil {
		return writeError(c, err)
	}
	customer.ID = id
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /v1/customers/:id (soft delete).
func (h *CatalogHandler) DeleteCustomer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Customers.Deactivate(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
