package handler

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chickensystem/restaurant-api/internal/api/middleware"
	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withCaller(c echo.Context, caller domain.Caller) echo.Context {
	c.Set(middleware.ContextUserID, caller.UserID)
	c.Set(middleware.ContextRole, caller.Role)
	return c
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != code {
		t.Fatalf("expected HTTP %d error, got %v", code, err)
	}
}

var (
	userCaller  = domain.Caller{UserID: "u1", Role: domain.RoleUser}
	adminCaller = domain.Caller{UserID: "admin", Role: domain.RoleAdmin}
)
