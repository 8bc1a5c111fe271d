// Package metrics registers the Prometheus collectors exposed on
// /metrics by the HTTP shell.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts handled HTTP requests by route and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maintrack_http_requests_total",
		Help: "Handled HTTP requests.",
	}, []string{"route", "code"})

	// RequestDuration observes request latency by route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "maintrack_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// BatchOutcomes counts per-item results of batch updates.
	BatchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maintrack_batch_outcomes_total",
		Help: "Per-item outcomes of batch updates.",
	}, []string{"result"})
)
