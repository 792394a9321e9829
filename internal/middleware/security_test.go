package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSecurityHeaders_AddsHeaders(t *testing.T) {
	e := echo.New()
	e.Use(SecurityHeaders())
	e.POST("/api/chat", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, []byte(`{}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "no-referrer",
		"Cache-Control":          "no-store",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestBodyLimit_OnlyPOST(t *testing.T) {
	e := echo.New()
	e.Use(BodyLimit(16))
	e.Any("/api/chat", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Request().Method)
	})

	large := `{"model":"` + strings.Repeat("x", 64) + `"}`
	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
	}{
		{"small POST", http.MethodPost, `{}`, http.StatusOK},
		{"large POST", http.MethodPost, large, http.StatusRequestEntityTooLarge},
		{"large GET skipped", http.MethodGet, large, http.StatusOK},
		{"large PUT skipped", http.MethodPut, large, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/chat", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestCORS_DisabledWithoutOrigins(t *testing.T) {
	if mw := CORS(nil); mw != nil {
		t.Error("CORS(nil) should return nil")
	}
}

func TestCORS_Preflight(t *testing.T) {
	e := echo.New()
	e.Use(CORS([]string{"https://resume.example.com"}))
	e.Any("/api/chat", func(c echo.Context) error {
		return c.String(http.StatusMethodNotAllowed, "handler")
	})

	tests := []struct {
		name       string
		origin     string
		wantOrigin string
	}{
		{"allowed origin", "https://resume.example.com", "https://resume.example.com"},
		{"other origin", "https://evil.example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/chat", http.NoBody)
			req.Header.Set(echo.HeaderOrigin, tt.origin)
			req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}
