// Package observability exposes Prometheus metrics for the guide cache and
// the upstream fetcher.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telecast_cache_hits_total",
		Help: "The total number of playlist cache hits",
	})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "telecast_cache_misses_total",
		Help: "The total number of playlist cache misses",
	}, []string{"reason"})

	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telecast_fetch_failures_total",
		Help: "The total number of failed upstream content fetches",
	})

	FallbacksServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telecast_fallbacks_served_total",
		Help: "The total number of lineups served from the static fallback shuffle",
	})

	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "telecast_refresh_duration_seconds",
		Help:    "Duration of cache refresh cycles including the upstream fetch",
		Buckets: prometheus.DefBuckets,
	})
)

// Cache miss reasons
const (
	MissReasonCold    = "cold"
	MissReasonExpired = "expired"
	MissReasonBlock   = "block_rolled"
)
