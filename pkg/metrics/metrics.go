package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by flow (login|register) and result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shidoukh_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"flow", "result"},
	)

	// EmailsSent counts transactional emails by kind (confirmation|reset) and result.
	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shidoukh_emails_sent_total",
			Help: "Total number of transactional email deliveries",
		},
		[]string{"kind", "result"},
	)

	// ViewCacheEvents counts list-view cache hits, misses and invalidations.
	ViewCacheEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shidoukh_view_cache_events_total",
			Help: "List view cache activity",
		},
		[]string{"view", "event"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shidoukh_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
