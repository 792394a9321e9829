// Package client provides the upstream HTTP client for the Fireworks inference API.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"resume-proxy-go/internal/config"
	"resume-proxy-go/internal/metrics"
	"resume-proxy-go/internal/model"
)

// FireworksClient sends requests to the upstream inference API.
type FireworksClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewFireworksClient creates a FireworksClient with connection pooling.
// A timeout_seconds of config.NoTimeout leaves the client without a deadline.
// The metrics parameter is optional; pass nil to disable upstream metrics recording.
func NewFireworksClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *FireworksClient {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.Upstream.IdleConnections,
		MaxIdleConnsPerHost: cfg.Upstream.IdleConnections,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	var timeout time.Duration
	if cfg.Upstream.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second
	}

	return &FireworksClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		logger:  logger.With("component", "fireworks_client"),
		metrics: m,
	}
}

// Do executes a request against the upstream and reads the whole response body.
// A failure to read the body counts as a transport failure.
func (c *FireworksClient) Do(req *http.Request) (*model.ChatResponse, error) {
	c.logger.Debug("upstream request",
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	method := metrics.NormalizeMethod(req.Method)

	if err != nil {
		c.observe(method, start, 0)
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(method, start, 0)
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	c.observe(method, start, resp.StatusCode)

	return &model.ChatResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// Post sends body to url with the given headers.
// The provided context controls the lifetime of the upstream request:
// when the context is canceled (e.g. client disconnects), the upstream
// request is also canceled.
func (c *FireworksClient) Post(ctx context.Context, url string, header http.Header, body io.Reader) (*model.ChatResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header = header

	return c.Do(req)
}

// observe records upstream latency; status 0 marks a transport failure.
func (c *FireworksClient) observe(method string, start time.Time, status int) {
	if c.metrics == nil {
		return
	}
	c.metrics.UpstreamDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if status == 0 {
		c.metrics.UpstreamErrors.Inc()
		return
	}
	c.metrics.UpstreamResponses.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
