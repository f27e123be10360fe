// Package metrics exposes Prometheus instrumentation for the HTTP API and the
// family tree service.
//
// All metric operations are safe for concurrent use. Methods on a nil
// *Metrics are no-ops, so components can run uninstrumented in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "familytree"

// Metrics holds the application's collectors.
type Metrics struct {
	// RequestsTotal counts HTTP requests by method, route pattern and status.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration measures HTTP handling latency by method and route pattern.
	RequestDuration *prometheus.HistogramVec

	// UnresolvedDatesTotal counts birth dates that could not be scheduled.
	// Labels: system (hebrew, gregorian)
	UnresolvedDatesTotal *prometheus.CounterVec

	// SuggestionsTotal counts relationship suggestions by rule name.
	SuggestionsTotal *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors with reg. A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
		UnresolvedDatesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "calendar",
				Name:      "unresolved_dates_total",
				Help:      "Birth dates that could not be resolved to a next occurrence",
			},
			[]string{"system"},
		),
		SuggestionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "family",
				Name:      "suggestions_total",
				Help:      "Relationship suggestions produced, by rule",
			},
			[]string{"rule"},
		),
		gatherer: reg,
	}
}

// UnresolvedDate records a date in system that failed to parse or resolve.
func (m *Metrics) UnresolvedDate(system string) {
	if m == nil {
		return
	}
	m.UnresolvedDatesTotal.WithLabelValues(system).Inc()
}

// Suggestion records a suggestion produced by rule.
func (m *Metrics) Suggestion(rule string) {
	if m == nil {
		return
	}
	m.SuggestionsTotal.WithLabelValues(rule).Inc()
}

// Middleware records request count and latency. The route label is the chi
// route pattern, so path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
