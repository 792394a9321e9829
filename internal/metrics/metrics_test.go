package metrics

import (
	"testing"
)

func TestNew_GathersMetrics(t *testing.T) {
	m := New()

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	// Should include at least Go runtime and process collectors.
	if len(families) == 0 {
		t.Fatal("expected non-empty metric families from Gather()")
	}

	// Verify our custom metrics exist by incrementing one and gathering again.
	m.RequestsTotal.WithLabelValues("POST", "200", "/api/chat").Inc()

	families, err = m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "resume_proxy_http_requests_total" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected resume_proxy_http_requests_total in gathered metrics")
	}
}

func TestNormalizeMethod(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"GET", "GET"},
		{"POST", "POST"},
		{"PUT", "PUT"},
		{"DELETE", "DELETE"},
		{"PATCH", "PATCH"},
		{"HEAD", "HEAD"},
		{"OPTIONS", "OPTIONS"},
		{"FOOBAR", "other"},
		{"get", "other"},
		{"X-CUSTOM", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got := NormalizeMethod(tt.method)
			if got != tt.want {
				t.Errorf("NormalizeMethod(%q) = %q, want %q", tt.method, got, tt.want)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/chat", "/api/chat"},
		{"/api/chat/", "/api/chat"},
		{"/api/chat?stream=false", "/api/chat"},
		{"/api/proxy", "/api/proxy"},
		{"/api/index", "/api/index"},
		{"/healthz", "/healthz"},
		{"/proxy/status", "/proxy/status"},
		{"/metrics", "/metrics"},
		{"/unknown", "other"},
		{"/", "other"},
		{"/api/chatter", "other"},
		{"/api/v1/chat/completions", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := NormalizePath(tt.path)
			if got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestUpstreamErrors_Registered(t *testing.T) {
	m := New()
	m.UpstreamErrors.Inc()

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, f := range families {
		if f.GetName() == "resume_proxy_upstream_errors_total" {
			if v := f.GetMetric()[0].GetCounter().GetValue(); v != 1 {
				t.Errorf("counter value = %v, want 1", v)
			}
			return
		}
	}
	t.Error("expected resume_proxy_upstream_errors_total in gathered metrics")
}

func TestNew_SeriesNames(t *testing.T) {
	m := New()
	m.RequestsTotal.WithLabelValues("POST", "200", "/api/chat").Inc()
	m.RequestDuration.WithLabelValues("POST", "200", "/api/chat").Observe(0.2)
	m.UpstreamDuration.WithLabelValues("POST").Observe(1.5)
	m.UpstreamResponses.WithLabelValues("POST", "200").Inc()

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	got := make(map[string]bool, len(families))
	for _, f := range families {
		got[f.GetName()] = true
	}

	for _, name := range []string{
		"resume_proxy_http_requests_total",
		"resume_proxy_http_request_duration_seconds",
		"resume_proxy_http_requests_in_flight",
		"resume_proxy_upstream_request_duration_seconds",
		"resume_proxy_upstream_responses_total",
		"resume_proxy_upstream_errors_total",
	} {
		if !got[name] {
			t.Errorf("missing series %s", name)
		}
	}
}
