package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

type ReservationHandler struct {
	service ports.ReservationService
}

func NewReservationHandler(service ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// Create handles POST /api/reservations.
//
// @Summary      Book a table
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReservationRequest  true  "Reservation"
// @Success      201   {object}  domain.Reservation
// @Failure      400   {object}  errorResponse
// @Router       /api/reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req createReservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := toReservationInput(req)
	if err != nil {
		return err
	}
	r, err := h.service.Create(c.Request().Context(), caller, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// ListMine handles GET /api/reservations/user.
//
// @Summary      List own reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(20)
// @Success      200    {object}  listResponse[reservationResponse]
// @Router       /api/reservations/user [get]
func (h *ReservationHandler) ListMine(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	page, err := ctxPage(c)
	if err != nil {
		return err
	}
	res, err := h.service.ListMine(c.Request().Context(), caller, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(res, toReservationResponse))
}

// Get handles GET /api/reservations/:id.
//
// @Summary      Get a reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reservation id"
// @Success      200  {object}  reservationResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/reservations/{id} [get]
func (h *ReservationHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	view, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReservationResponse(*view))
}

// ListAll handles GET /api/reservations.
//
// @Summary      List all reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(20)
// @Success      200    {object}  listResponse[reservationResponse]
// @Failure      403    {object}  errorResponse
// @Router       /api/reservations [get]
func (h *ReservationHandler) ListAll(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	page, err := ctxPage(c)
	if err != nil {
		return err
	}
	res, err := h.service.ListAll(c.Request().Context(), caller, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(res, toReservationResponse))
}

// SetStatus handles PUT /api/reservations/:id/status.
//
// @Summary      Update reservation status
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Reservation id"
// @Param        body  body      reservationStatusRequest  true  "New status"
// @Success      200   {object}  domain.Reservation
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/reservations/{id}/status [put]
func (h *ReservationHandler) SetStatus(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req reservationStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.service.SetStatus(c.Request().Context(), caller, c.Param("id"), domain.ReservationStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}
