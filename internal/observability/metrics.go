// Package observability exposes Prometheus metrics for the editor
// service: clipboard activity, project persistence and HTTP traffic.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the application metrics. Each instance carries its
// own registry so tests never trip duplicate registration.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Editor metrics
	ClipboardCopies  prometheus.Counter
	ClipboardPastes  prometheus.Counter
	ProjectSaves     *prometheus.CounterVec
	WorkspacesOpen   prometheus.Gauge
	ValidationIssues prometheus.Counter
}

// NewCollector creates a collector with all metrics registered under
// the given namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	clipboardCopies := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clipboard_copies_total",
			Help:      "Total number of clipboard copy operations",
		},
	)

	clipboardPastes := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clipboard_pastes_total",
			Help:      "Total number of clipboard paste operations",
		},
	)

	projectSaves := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "project_saves_total",
			Help:      "Total number of project save operations",
		},
		[]string{"status"},
	)

	workspacesOpen := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workspaces_open",
			Help:      "Number of currently open workspaces",
		},
	)

	validationIssues := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_issues_total",
			Help:      "Total number of graph validation issues reported",
		},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		clipboardCopies,
		clipboardPastes,
		projectSaves,
		workspacesOpen,
		validationIssues,
	)

	return &Collector{
		registry:         registry,
		HTTPRequests:     httpRequests,
		HTTPDuration:     httpDuration,
		ClipboardCopies:  clipboardCopies,
		ClipboardPastes:  clipboardPastes,
		ProjectSaves:     projectSaves,
		WorkspacesOpen:   workspacesOpen,
		ValidationIssues: validationIssues,
	}
}

// Handler returns the /metrics endpoint handler for this registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Middleware instruments an HTTP handler with request count and latency.
func (c *Collector) Middleware(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			c.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
			c.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
