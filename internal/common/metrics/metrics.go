package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beacon_match_requests_total",
			Help: "Total number of match requests received",
		},
	)

	MatchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_match_failures_total",
			Help: "Total number of failed match requests",
		},
		[]string{"error_code"},
	)

	MatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "beacon_match_duration_seconds",
			Help: "Duration of match request processing in seconds",
		},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_uploads_total",
			Help: "Total number of upload requests by outcome",
		},
		[]string{"outcome"},
	)

	CandidatesScanned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "beacon_candidates_scanned",
			Help:    "Number of candidate assets enumerated per match request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	ScorerCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_scorer_cache_requests_total",
			Help: "Scorer cache lookups by result",
		},
		[]string{"result"},
	)
)
