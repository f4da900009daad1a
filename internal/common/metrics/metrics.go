// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_requests_total",
			Help: "Total number of ranking requests served",
		},
		[]string{"content_type"},
	)

	ColdStartServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_cold_start_total",
			Help: "Ranking requests answered by the cold-start fallback",
		},
		[]string{"content_type"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_cache_hits_total",
			Help: "Result cache hits",
		},
		[]string{"content_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_cache_misses_total",
			Help: "Result cache misses",
		},
		[]string{"content_type"},
	)

	RankDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "recommender_rank_duration_seconds",
			Help: "Duration of one ranking call in seconds",
		},
		[]string{"content_type"},
	)

	ItemsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_items_scored_total",
			Help: "Content items put through the scoring pipeline",
		},
		[]string{"content_type"},
	)

	DataQualityWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_data_quality_warnings_total",
			Help: "Content records defaulted due to data-quality issues",
		},
		[]string{"source"},
	)
)
