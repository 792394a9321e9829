package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"resume-proxy-go/internal/metrics"
)

// MetricsMiddleware returns an Echo middleware that records Prometheus metrics
// for each inbound request. Requests to skipPaths (typically the scrape
// endpoint itself) are not recorded.
func MetricsMiddleware(m *metrics.Metrics, skipPaths ...string) echo.MiddlewareFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skip[c.Request().URL.Path] {
				return next(c)
			}

			m.RequestsInFlight.Inc()
			defer m.RequestsInFlight.Dec()

			start := time.Now()
			err := next(c)

			m.RequestsTotal.WithLabelValues(labels(c, err)...).Inc()
			m.RequestDuration.WithLabelValues(labels(c, err)...).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// labels returns method, status_code and path_prefix for the request. When a
// handler returns an *echo.HTTPError the response is not written yet, so the
// status is taken from the error.
func labels(c echo.Context, err error) []string {
	statusCode := c.Response().Status
	var he *echo.HTTPError
	if err != nil && errors.As(err, &he) {
		statusCode = he.Code
	}

	return []string{
		metrics.NormalizeMethod(c.Request().Method),
		strconv.Itoa(statusCode),
		metrics.NormalizePath(c.Request().URL.Path),
	}
}
