// Package metrics provides Prometheus metrics for the proxy.
package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resume_proxy"

// Chat completions routinely take seconds, so the upper buckets are wide.
var latencyBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120}

var requestLabels = []string{"method", "status_code", "path_prefix"}

// Metrics holds the proxy's collectors and the registry they live in.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	UpstreamDuration  *prometheus.HistogramVec
	UpstreamResponses *prometheus.CounterVec
	UpstreamErrors    prometheus.Counter
}

// New builds a private registry with runtime collectors and the proxy's
// own series. Series are named resume_proxy_<subsystem>_<name>.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)
	inbound := func(name string) prometheus.Opts {
		return prometheus.Opts{Namespace: namespace, Subsystem: "http", Name: name}
	}
	upstream := func(name string) prometheus.Opts {
		return prometheus.Opts{Namespace: namespace, Subsystem: "upstream", Name: name}
	}

	m := &Metrics{Registry: reg}

	o := inbound("requests_total")
	o.Help = "Total inbound HTTP requests."
	m.RequestsTotal = f.NewCounterVec(prometheus.CounterOpts(o), requestLabels)

	o = inbound("request_duration_seconds")
	m.RequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: o.Namespace,
		Subsystem: o.Subsystem,
		Name:      o.Name,
		Help:      "Inbound HTTP request latency in seconds.",
		Buckets:   latencyBuckets,
	}, requestLabels)

	o = inbound("requests_in_flight")
	o.Help = "HTTP requests currently being served."
	m.RequestsInFlight = f.NewGauge(prometheus.GaugeOpts(o))

	o = upstream("request_duration_seconds")
	m.UpstreamDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: o.Namespace,
		Subsystem: o.Subsystem,
		Name:      o.Name,
		Help:      "Fireworks call latency in seconds.",
		Buckets:   latencyBuckets,
	}, []string{"method"})

	o = upstream("responses_total")
	o.Help = "Fireworks responses by method and status code."
	m.UpstreamResponses = f.NewCounterVec(prometheus.CounterOpts(o), []string{"method", "status_code"})

	o = upstream("errors_total")
	o.Help = "Fireworks calls that failed before a response arrived."
	m.UpstreamErrors = f.NewCounter(prometheus.CounterOpts(o))

	return m
}

// NormalizeMethod maps anything outside the standard request methods to
// "other" so the method label stays bounded.
func NormalizeMethod(method string) string {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		http.MethodPatch, http.MethodHead, http.MethodOptions:
		return method
	}
	return "other"
}

// routePrefixes are the only path label values besides "other".
var routePrefixes = []string{"/api/chat", "/api/proxy", "/api/index", "/healthz", "/proxy/status", "/metrics"}

// NormalizePath returns the route prefix path falls under, or "other".
func NormalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for _, prefix := range routePrefixes {
		if rest, ok := strings.CutPrefix(path, prefix); ok && (rest == "" || rest[0] == '/') {
			return prefix
		}
	}
	return "other"
}
