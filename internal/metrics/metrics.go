// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smart_bulb"

type Metrics struct {
	registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Outcomes        *prometheus.CounterVec
}

// New builds a registry with the HTTP collectors plus the Go runtime and
// process collectors. Each call returns an independent registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total requests by route, method and status.",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Request latency by route and method.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		Outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operation_outcomes_total",
				Help:      "Service operation results by operation and outcome kind.",
			},
			[]string{"operation", "outcome"},
		),
	}

	m.registry.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.Outcomes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveOutcome counts one finished operation. outcome is "success" or an error kind.
func (m *Metrics) ObserveOutcome(operation, outcome string) {
	m.Outcomes.WithLabelValues(operation, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
