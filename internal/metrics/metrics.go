// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// Metrics exposes storefront instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	created       *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// New creates a registry with the storefront collectors plus the Go runtime
// and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "HTTP requests by method, route template and status code.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route template.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "route"})
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_records_created_total",
		Help: "Configurations, inquiries and quotes accepted.",
	}, []string{"kind"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_notifications_total",
		Help: "Notification attempts by kind and outcome.",
	}, []string{"kind", "outcome"})

	registry.MustRegister(
		requests,
		duration,
		created,
		notifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:      registry,
		requests:      requests,
		duration:      duration,
		created:       created,
		notifications: notifications,
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordCreated counts a persisted record of the given kind.
func (m *Metrics) RecordCreated(kind string) {
	if m == nil {
		return
	}
	m.created.WithLabelValues(kind).Inc()
}

// RecordNotification counts a notification attempt.
func (m *Metrics) RecordNotification(kind, outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
