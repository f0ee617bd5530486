package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
	"github.com/chickensystem/restaurant-api/internal/pkg/token"
)

// Context keys set by Auth and Session.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextUser   = "user"
)

// SessionCookie carries the same JWT as the bearer header for the browser flow.
const SessionCookie = "session"

// Auth validates the bearer JWT, resolves the stored account and injects it
// into the context. The stored role wins over the claimed one. A nil resolver
// trusts the claims as issued.
func Auth(jwtSecret string, resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			if err := authenticate(c, parts[1], jwtSecret, resolver); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// Session authenticates from the session cookie set by the federated login callback.
func Session(jwtSecret string, resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if err := authenticate(c, cookie.Value, jwtSecret, resolver); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func authenticate(c echo.Context, raw, jwtSecret string, resolver ports.IdentityResolver) error {
	claims, err := token.Parse(raw, jwtSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	userID, role := claims.Subject, claims.Role
	if resolver != nil {
		user, err := resolver.Resolve(c.Request().Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return echo.NewHTTPError(http.StatusUnauthorized, "account not found or inactive")
			}
			return err
		}
		userID, role = user.ID, user.Role
		c.Set(ContextUser, user)
	}

	c.Set(ContextUserID, userID)
	c.Set(ContextRole, role)
	return nil
}
