/*
Package metrics holds the Prometheus collectors exported at /metrics.

Recommendation metrics:
  - recommendation_requests_total{type,state}: finished requests by result
    type (general, ai) and terminal engine state
  - recommendation_fallbacks_total{reason}: curated fallback activations
  - recommendation_entries_skipped_total: AI entries dropped for missing fields
  - completion_request_duration_seconds: completion endpoint latency

Cache metrics:
  - cache_hits_total{cache_type}, cache_misses_total{cache_type}

HTTP metrics:
  - http_requests_total{method,route,status}
  - http_request_duration_seconds{method,route}
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total recommendation requests by result type and terminal state",
		},
		[]string{"type", "state"},
	)

	RecommendationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_fallbacks_total",
			Help: "Total times the curated fallback list answered, by failure reason",
		},
		[]string{"reason"},
	)

	RecommendationEntriesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_entries_skipped_total",
			Help: "AI recommendation entries dropped because required fields were missing",
		},
	)

	CompletionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "completion_request_duration_seconds",
			Help:    "Duration of chat-completion endpoint calls",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "recommendations", "catalog"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
		},
		[]string{"method", "route"},
	)
)
