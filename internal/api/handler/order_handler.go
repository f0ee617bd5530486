package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /api/orders.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Replays the order created earlier with the same key"
// @Param        body             body      createOrderRequest  true   "Order items"
// @Success      201              {object}  orderResponse
// @Success      200              {object}  orderResponse  "Idempotent replay"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse  "Same key still in progress"
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), caller, toCreateOrderInput(req, c.Request().Header.Get("Idempotency-Key")))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	return c.JSON(status, toPlainOrderResponse(result.Order))
}

// ListMine handles GET /api/orders/user.
//
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(20)
// @Success      200    {object}  listResponse[orderResponse]
// @Failure      401    {object}  errorResponse
// @Router       /api/orders/user [get]
func (h *OrderHandler) ListMine(c echo.Context) error {
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
	return c.JSON(http.StatusOK, toList(res, toOrderResponse))
}

// Get handles GET /api/orders/:id.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	view, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(*view))
}

// ListAll handles GET /api/orders.
//
// @Summary      List all orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(20)
// @Success      200    {object}  listResponse[orderResponse]
// @Failure      403    {object}  errorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
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
	return c.JSON(http.StatusOK, toList(res, toOrderResponse))
}

// SetStatus handles PUT /api/orders/:id/status.
//
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Order id"
// @Param        body  body      orderStatusRequest  true  "New status"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) SetStatus(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req orderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	order, err := h.service.SetStatus(c.Request().Context(), caller, c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPlainOrderResponse(order))
}
