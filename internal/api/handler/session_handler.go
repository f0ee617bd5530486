package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/api/middleware"
	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

const (
	stateCookie = "oauth_state"
	stateTTL    = 10 * time.Minute
)

// SessionOptions configures the browser login flow.
type SessionOptions struct {
	FrontendURL  string
	TokenTTL     time.Duration
	SecureCookie bool
}

// SessionHandler runs the federated login round trip and manages the session cookie.
type SessionHandler struct {
	authService ports.AuthService
	provider    ports.IdentityProvider
	opts        SessionOptions
	logger      zerolog.Logger
}

// NewSessionHandler builds the handler. provider may be nil when federated
// login is not configured; Start and Callback then answer 503.
func NewSessionHandler(authService ports.AuthService, provider ports.IdentityProvider, opts SessionOptions, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{authService: authService, provider: provider, opts: opts, logger: logger}
}

// Start redirects the browser to the identity provider.
//
// @Summary      Start Google login
// @Tags         auth
// @Success      307
// @Failure      503  {object}  errorResponse
// @Router       /api/auth/google/web [get]
func (h *SessionHandler) Start(c echo.Context) error {
	if h.provider == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "federated login is not configured")
	}
	state := uuid.NewString()
	c.SetCookie(h.cookie(stateCookie, state, stateTTL))
	return c.Redirect(http.StatusTemporaryRedirect, h.provider.AuthCodeURL(state))
}

// Callback completes the provider handshake, upserts the account and stores
// the session cookie. Failures redirect back to the frontend login page.
//
// @Summary      Google login callback
// @Tags         auth
// @Param        state  query  string  true  "Opaque state echoed by the provider"
// @Param        code   query  string  true  "Authorization code"
// @Success      307
// @Router       /api/auth/google/callback [get]
func (h *SessionHandler) Callback(c echo.Context) error {
	if h.provider == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "federated login is not configured")
	}
	c.SetCookie(h.cookie(stateCookie, "", -1))

	expected, err := c.Cookie(stateCookie)
	if err != nil || expected.Value == "" || expected.Value != c.QueryParam("state") {
		return h.fail(c, "invalid_state", nil)
	}
	code := c.QueryParam("code")
	if code == "" {
		return h.fail(c, "missing_code", nil)
	}

	profile, err := h.provider.Exchange(c.Request().Context(), code)
	if err != nil {
		return h.fail(c, "exchange_failed", err)
	}
	token, user, err := h.authService.FederatedLogin(c.Request().Context(), *profile)
	if err != nil {
		return h.fail(c, "login_failed", err)
	}

	c.SetCookie(h.cookie(middleware.SessionCookie, token, h.opts.TokenTTL))
	h.logger.Info().Str("user_id", user.ID).Msg("federated login")
	return c.Redirect(http.StatusTemporaryRedirect, h.opts.FrontendURL)
}

// Me returns the account behind the session cookie.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *SessionHandler) Me(c echo.Context) error {
	if user, ok := c.Get(middleware.ContextUser).(*domain.User); ok {
		return c.JSON(http.StatusOK, sessionResponse{OK: true, User: user})
	}
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	user, err := h.authService.Profile(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{OK: true, User: user})
}

// Logout clears the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      307
// @Router       /api/auth/logout [get]
func (h *SessionHandler) Logout(c echo.Context) error {
	c.SetCookie(h.cookie(middleware.SessionCookie, "", -1))
	return c.Redirect(http.StatusTemporaryRedirect, h.opts.FrontendURL)
}

func (h *SessionHandler) fail(c echo.Context, reason string, err error) error {
	ev := h.logger.Warn().Str("reason", reason)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("federated login failed")
	return c.Redirect(http.StatusTemporaryRedirect, h.opts.FrontendURL+"/login?error="+url.QueryEscape(reason))
}

// cookie builds an HttpOnly cookie; a negative ttl expires it immediately.
func (h *SessionHandler) cookie(name, value string, ttl time.Duration) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
	} else {
		ck.MaxAge = int(ttl.Seconds())
	}
	return ck
}
