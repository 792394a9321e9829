// Package server builds the Echo instance the proxy runs on and ties its
// listener to the fx lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"resume-proxy-go/internal/config"
	"resume-proxy-go/internal/handler"
	"resume-proxy-go/internal/metrics"
	"resume-proxy-go/internal/middleware"
)

const (
	readTimeout       = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 120 * time.Second
)

// New returns an Echo instance with the proxy's error envelope, inbound
// timeouts and middleware chain installed. Routes are registered separately.
func New(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	srv := e.Server
	srv.ReadTimeout = readTimeout
	srv.ReadHeaderTimeout = readHeaderTimeout
	srv.IdleTimeout = idleTimeout
	// A completion can take minutes; the upstream client timeout bounds it.
	srv.WriteTimeout = 0

	e.Use(chain(cfg, logger, m)...)
	return e
}

// chain lists middleware outermost first. Security headers go ahead of the
// body limit so 413 responses carry them too.
func chain(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) []echo.MiddlewareFunc {
	mw := []echo.MiddlewareFunc{
		echomw.Recover(),
		echomw.RequestID(),
		middleware.RequestLogger(logger),
	}

	if cfg.Metrics.Enabled {
		mw = append(mw, middleware.MetricsMiddleware(m, cfg.Metrics.Path))
	}
	if cors := middleware.CORS(cfg.Server.AllowedOrigins); cors != nil {
		mw = append(mw, cors)
		logger.Info("cors enabled", "origins", cfg.Server.AllowedOrigins)
	}

	mw = append(mw,
		middleware.SecurityHeaders(),
		middleware.BodyLimit(cfg.Server.BodyMaxBytes),
	)

	if rl := cfg.Server.RateLimit; rl.Enabled {
		mw = append(mw, middleware.RateLimit(rl.RequestsPerSecond))
		logger.Info("rate limiter enabled", "rps", rl.RequestsPerSecond)
	}

	return mw
}

// Run binds the listen address when fx starts and drains connections when it
// stops. Binding happens in OnStart so a busy port aborts startup.
func Run(lc fx.Lifecycle, e *echo.Echo, cfg *config.Config, logger *slog.Logger) {
	addr := cfg.Server.Addr()

	lc.Append(fx.StartStopHook(
		func(context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", addr, err)
			}
			logger.Info("listening",
				"addr", ln.Addr().String(),
				"upstream", cfg.Upstream.URL,
			)
			go serve(e, ln, logger)
			return nil
		},
		func(ctx context.Context) error {
			logger.Info("draining connections")
			return e.Shutdown(ctx)
		},
	))
}

func serve(e *echo.Echo, ln net.Listener, logger *slog.Logger) {
	if err := e.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("serve", "err", err)
	}
}
