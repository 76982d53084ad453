// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScoringRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_requests_total",
			Help: "Total number of scoring requests by outcome",
		},
		[]string{"status"},
	)

	ScoringRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "scoring_request_duration_seconds",
			Help: "Duration of transcript scoring in seconds",
		},
	)

	ScoringOverallScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scoring_overall_score",
			Help:    "Distribution of overall transcript scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	EmbeddingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedding_requests_total",
			Help: "Total number of embedding lookups by cache outcome",
		},
		[]string{"cache"},
	)

	EmbeddingFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "embedding_failures_total",
			Help: "Total number of failed embedding provider calls",
		},
	)
)
