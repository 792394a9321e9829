// Package service implements the chat-completion forwarding logic.
package service

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"resume-proxy-go/internal/client"
	"resume-proxy-go/internal/config"
	"resume-proxy-go/internal/model"
)

// ErrMissingCredential is returned when no upstream credential is configured.
// No upstream call is made in that case.
var ErrMissingCredential = errors.New(config.CredentialEnv + " not configured in environment")

// allowedUpstreamHosts restricts which hosts the proxy will forward to.
var allowedUpstreamHosts = map[string]bool{
	"api.fireworks.ai": true,
}

const userAgent = "resume-proxy-go/1.0"

// ChatService relays chat-completion payloads to the upstream API.
type ChatService struct {
	client      *client.FireworksClient
	cfg         *config.Config
	logger      *slog.Logger
	upstreamURL string
}

// NewChatService creates a ChatService.
func NewChatService(c *client.FireworksClient, cfg *config.Config, logger *slog.Logger) (*ChatService, error) {
	u, err := url.Parse(cfg.Upstream.URL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream url: %w", err)
	}

	if !allowedUpstreamHosts[u.Hostname()] {
		return nil, fmt.Errorf("upstream host %q is not in the allowlist", u.Hostname())
	}

	return newChatService(c, cfg, logger, u), nil
}

// NewChatServiceForTest creates a ChatService without host allowlist validation.
// This is intended only for tests that use httptest servers on localhost.
func NewChatServiceForTest(c *client.FireworksClient, cfg *config.Config, logger *slog.Logger) (*ChatService, error) {
	u, err := url.Parse(cfg.Upstream.URL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream url: %w", err)
	}

	return newChatService(c, cfg, logger, u), nil
}

func newChatService(c *client.FireworksClient, cfg *config.Config, logger *slog.Logger, u *url.URL) *ChatService {
	return &ChatService{
		client:      c,
		cfg:         cfg,
		logger:      logger.With("component", "chat_service"),
		upstreamURL: u.String(),
	}
}

// Forward posts the request payload upstream unchanged and returns the
// upstream status and raw body. An upstream non-2xx status is not an error.
func (s *ChatService) Forward(cr *model.ChatRequest) (*model.ChatResponse, error) {
	apiKey := s.cfg.Fireworks.APIKey
	if apiKey == "" {
		return nil, ErrMissingCredential
	}

	s.logger.Debug("forwarding chat completion",
		"bytes", len(cr.Payload),
	)

	resp, err := s.client.Post(cr.Ctx, s.upstreamURL, upstreamHeader(apiKey), bytes.NewReader(cr.Payload))
	if err != nil {
		return nil, fmt.Errorf("forward to upstream: %w", err)
	}

	return resp, nil
}

// UpstreamURL returns the endpoint requests are forwarded to.
func (s *ChatService) UpstreamURL() string {
	return s.upstreamURL
}

// CredentialConfigured reports whether a credential is available.
func (s *ChatService) CredentialConfigured() bool {
	return s.cfg.Fireworks.APIKey != ""
}

// upstreamHeader builds the outbound header set. Nothing is copied from the
// inbound request.
func upstreamHeader(apiKey string) http.Header {
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+apiKey)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("User-Agent", userAgent)
	return h
}
