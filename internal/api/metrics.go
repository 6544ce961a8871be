package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for the /metrics endpoint.
var (
	generateRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synthdata_generate_requests_total",
		Help: "Number of batch generation requests, by outcome.",
	}, []string{"status"})

	recordsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "synthdata_records_generated_total",
		Help: "Total transaction records generated across all requests.",
	})

	anomaliesInjected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synthdata_anomalies_injected_total",
		Help: "Total anomalies injected, by archetype.",
	}, []string{"type"})

	generateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "synthdata_generate_duration_seconds",
		Help:    "Wall-clock time spent generating one batch.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})
)
