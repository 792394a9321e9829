package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"resume-proxy-go/internal/model"
)

// ErrorHandler renders errors that reach Echo (unknown routes, body limit,
// recovered panics) as the same {"error": ...} envelope the chat handler
// writes, instead of Echo's {"message": ...}.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "error_handler")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if inner, ok := he.Internal.(*echo.HTTPError); ok {
				he = inner
			}
			code = he.Code
		} else {
			logger.Error("unhandled error",
				"err", sanitizeError(err),
				"path", c.Request().URL.Path,
			)
		}

		msg := http.StatusText(code)
		if msg == "" && he != nil {
			msg = fmt.Sprint(he.Message)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, model.ErrorEnvelope{Error: msg})
		}
		if err != nil {
			logger.Warn("writing error response", "err", err)
		}
	}
}
