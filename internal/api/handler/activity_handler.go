package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

// ActivityLogHandler exposes the read side of the audit trail.
type ActivityLogHandler struct {
	service ports.ActivityLogService
}

func NewActivityLogHandler(service ports.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{service: service}
}

// ListMine handles GET /api/activity-logs/user.
//
// @Summary      List own activity
// @Tags         activity-logs
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(20)
// @Success      200    {object}  listResponse[activityLogResponse]
// @Router       /api/activity-logs/user [get]
func (h *ActivityLogHandler) ListMine(c echo.Context) error {
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
	return c.JSON(http.StatusOK, toList(res, toActivityLogResponse))
}

// ListAll handles GET /api/activity-logs.
//
// @Summary      List all activity
// @Tags         activity-logs
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(20)
// @Success      200    {object}  listResponse[activityLogResponse]
// @Failure      403    {object}  errorResponse
// @Router       /api/activity-logs [get]
func (h *ActivityLogHandler) ListAll(c echo.Context) error {
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
	return c.JSON(http.StatusOK, toList(res, toActivityLogResponse))
}
