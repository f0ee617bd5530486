package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
)

// CORS allows the configured frontend origins to call the API with cookies.
// An empty list falls back to any origin without credentials.
func CORS(origins []string) echo.MiddlewareFunc {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{echo.HeaderAuthorization, echo.HeaderContentType, "Idempotency-Key"},
		ExposedHeaders:   []string{echo.HeaderXRequestID},
		AllowCredentials: len(origins) > 0,
		MaxAge:           86400,
	}
	if len(origins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return echo.WrapMiddleware(cors.New(opts).Handler)
}
