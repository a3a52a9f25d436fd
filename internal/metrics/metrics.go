// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inkwell_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	FeedRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_feed_requests_total",
			Help: "Total number of feed pages served, by feed",
		},
		[]string{"feed"},
	)

	PageCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_page_cache_hits_total",
			Help: "Total number of page cache hits",
		},
		[]string{"prefix"},
	)

	PageCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_page_cache_misses_total",
			Help: "Total number of page cache misses",
		},
		[]string{"prefix"},
	)

	PageCacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_page_cache_errors_total",
			Help: "Total number of page cache backend errors",
		},
		[]string{"prefix", "op"},
	)
)

// RecordRequest observes one finished HTTP request.
func RecordRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
