package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"resume-proxy-go/internal/config"
	"resume-proxy-go/internal/metrics"
)

// RegisterRoutes wires all route handlers onto the Echo instance.
func RegisterRoutes(e *echo.Echo, cfg *config.Config, m *metrics.Metrics, chat *ChatHandler, health *HealthHandler) {
	e.GET("/healthz", health.Healthz)
	e.GET("/proxy/status", health.Status)

	for _, path := range config.ChatRoutes {
		e.Any(path, chat.Handle)
		// Any covers a fixed method list; anything else (QUERY, FOO) would
		// hit Echo's 405 instead of the chat handler's envelope.
		e.RouteNotFound(path, chat.Handle)
	}

	if cfg.Metrics.Enabled {
		e.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}
}
