package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// SecurityHeaders returns an Echo middleware that adds security headers.
// Generated resume text is personal data, so responses are marked no-store.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Set before next so the headers go out with the status line.
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Cache-Control", "no-store")

			return next(c)
		}
	}
}

// BodyLimit caps POST bodies at maxBytes. Other methods are skipped: the
// chat handler rejects them with 405 before reading, whatever the body size.
func BodyLimit(maxBytes int64) echo.MiddlewareFunc {
	return echomw.BodyLimitWithConfig(echomw.BodyLimitConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().Method != http.MethodPost
		},
		Limit: fmt.Sprintf("%dB", maxBytes),
	})
}

// CORS returns a CORS middleware allowing browser front-ends served from
// origins to POST JSON to the proxy. It returns nil when origins is empty.
func CORS(origins []string) echo.MiddlewareFunc {
	if len(origins) == 0 {
		return nil
	}
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodPost},
		AllowHeaders: []string{echo.HeaderContentType},
		MaxAge:       600,
	})
}
