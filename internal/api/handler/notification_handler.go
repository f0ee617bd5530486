package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// Create handles POST /api/notifications.
//
// @Summary      Notify a user
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNotificationRequest  true  "Notification"
// @Success      201   {object}  domain.Notification
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/notifications [post]
func (h *NotificationHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req createNotificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	n, err := h.service.Create(c.Request().Context(), caller, ports.CreateNotificationInput{
		UserID:  req.UserID,
		Type:    req.Type,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, n)
}

// ListMine handles GET /api/notifications/user. Newest first.
//
// @Summary      List own notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(20)
// @Success      200    {object}  listResponse[domain.Notification]
// @Router       /api/notifications/user [get]
func (h *NotificationHandler) ListMine(c echo.Context) error {
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
	return c.JSON(http.StatusOK, toList(res, identity[*domain.Notification]))
}

// MarkRead handles PUT /api/notifications/:id/read.
//
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  domain.Notification
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	n, err := h.service.MarkRead(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}
