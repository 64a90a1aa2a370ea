package main

import (
	"time"

	"github.com/poiesic/shortlist/recommend"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes.
const (
	outcomeGenerated      = "generated"
	outcomeNoResults      = "no_results"
	outcomeFallback       = "fallback"
	outcomeBackendError   = "backend_error"
	outcomeInvalidRequest = "invalid_request"
	outcomeInternalError  = "internal_error"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortlist_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shortlist_generation_duration_seconds",
			Help:    "Duration of generation backend calls in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
		[]string{"status"},
	)

	CandidatesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shortlist_candidates_returned",
			Help:    "Number of candidates handed to the generation backend",
			Buckets: prometheus.LinearBuckets(0, 1, 6),
		},
	)

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shortlist_dataset_records",
			Help: "Number of records in the loaded snapshot",
		},
	)
)

// generationObserver records generation latency.
type generationObserver struct{}

var _ recommend.Observer = generationObserver{}

func (generationObserver) ObserveGeneration(elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	GenerationDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}
