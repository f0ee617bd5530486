package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Create handles POST /api/payments.
//
// @Summary      Pay for an order
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Replays the payment created earlier with the same key"
// @Param        body             body      createPaymentRequest  true   "Payment"
// @Success      201              {object}  domain.Payment
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse  "Same key still in progress"
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req createPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), caller, ports.CreatePaymentInput{
		OrderID:        req.OrderID,
		Amount:         req.Amount,
		Method:         domain.PaymentMethod(req.Method),
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	return c.JSON(status, result.Payment)
}

// ListMine handles GET /api/payments/user.
//
// @Summary      List own payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(20)
// @Success      200    {object}  listResponse[paymentResponse]
// @Router       /api/payments/user [get]
func (h *PaymentHandler) ListMine(c echo.Context) error {
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
	return c.JSON(http.StatusOK, toList(res, toPaymentResponse))
}

// ListAll handles GET /api/payments.
//
// @Summary      List all payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(20)
// @Success      200    {object}  listResponse[paymentResponse]
// @Failure      403    {object}  errorResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) ListAll(c echo.Context) error {
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
	return c.JSON(http.StatusOK, toList(res, toPaymentResponse))
}

// SetStatus handles PUT /api/payments/:id/status.
//
// @Summary      Record a payment outcome
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Payment id"
// @Param        body  body      paymentStatusRequest  true  "New status"
// @Success      200   {object}  domain.Payment
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/payments/{id}/status [put]
func (h *PaymentHandler) SetStatus(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req paymentStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	payment, err := h.service.SetStatus(c.Request().Context(), caller, c.Param("id"), domain.PaymentStatus(req.Status), req.TransactionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}
