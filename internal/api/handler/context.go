package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chickensystem/restaurant-api/internal/api/middleware"
	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

// ctxCaller extracts the identity injected by the Auth middleware and
// fails fast before any service call when it is missing.
func ctxCaller(c echo.Context) (domain.Caller, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	role, _ := c.Get(middleware.ContextRole).(domain.Role)
	if userID == "" || role == "" {
		return domain.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Caller{UserID: userID, Role: role}, nil
}

// bindAndValidate decodes the request into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

type pageQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// ctxPage reads ?page= and ?limit= with defaults applied.
func ctxPage(c echo.Context) (domain.Page, error) {
	var q pageQuery
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		BindError()
	if err != nil {
		return domain.Page{}, echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}
	return domain.NewPage(q.Page, q.Limit), nil
}
