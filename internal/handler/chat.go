package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	"resume-proxy-go/internal/model"
	"resume-proxy-go/internal/service"
)

const (
	msgMethodNotAllowed = "Method not allowed, POST only"
	msgProxyFailed      = "Proxy failed"
	msgBadBody          = "failed to read request body"
)

// bearerPattern matches bearer tokens that may surface in error messages.
var bearerPattern = regexp.MustCompile(`(?i)(Bearer\s+)[^\s"]+`)

// ChatHandler relays chat-completion requests to the upstream inference API.
type ChatHandler struct {
	service *service.ChatService
	logger  *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		service: svc,
		logger:  logger.With("component", "chat_handler"),
	}
}

// Handle forwards a POSTed chat-completion body upstream and writes back the
// upstream status and body verbatim. It is routed for every method, including
// ones Echo does not know, so that non-POST requests get the JSON 405
// envelope instead of Echo's default.
func (h *ChatHandler) Handle(c echo.Context) error {
	req := c.Request()

	if req.Method != http.MethodPost {
		c.Response().Header().Set(echo.HeaderAllow, http.MethodPost)
		return c.JSON(http.StatusMethodNotAllowed, model.ErrorEnvelope{Error: msgMethodNotAllowed})
	}

	payload, err := io.ReadAll(req.Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			// BodyLimit reports oversize bodies as *echo.HTTPError.
			return he
		}
		h.logger.Warn("reading request body", "err", err, "path", req.URL.Path)
		return c.JSON(http.StatusBadRequest, model.ErrorEnvelope{Error: msgBadBody})
	}

	resp, err := h.service.Forward(&model.ChatRequest{
		Ctx:     req.Context(),
		Payload: payload,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSONBlob(resp.StatusCode, resp.Body)
}

func (h *ChatHandler) mapError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrMissingCredential) {
		h.logger.Error("upstream credential missing", "path", c.Request().URL.Path)
		return c.JSON(http.StatusInternalServerError, model.ErrorEnvelope{Error: service.ErrMissingCredential.Error()})
	}

	details := sanitizeError(err)
	h.logger.Error("proxy error",
		"err", details,
		"path", c.Request().URL.Path,
	)

	return c.JSON(http.StatusBadGateway, model.ErrorEnvelope{
		Error:   msgProxyFailed,
		Details: details,
	})
}

// sanitizeError redacts bearer tokens from error messages.
func sanitizeError(err error) string {
	return bearerPattern.ReplaceAllString(err.Error(), "${1}[REDACTED]")
}
