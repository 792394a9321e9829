package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"resume-proxy-go/internal/service"
)

// Version is a string type for dependency injection of the build version.
type Version string

// HealthHandler serves health and status endpoints.
type HealthHandler struct {
	service *service.ChatService
	version Version
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(svc *service.ChatService, v Version) *HealthHandler {
	return &HealthHandler{service: svc, version: v}
}

// Healthz returns a simple OK response for liveness probes.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Status returns proxy status information. The credential itself is never exposed.
func (h *HealthHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":                "ok",
		"version":               string(h.version),
		"upstream_url":          h.service.UpstreamURL(),
		"credential_configured": h.service.CredentialConfigured(),
	})
}
