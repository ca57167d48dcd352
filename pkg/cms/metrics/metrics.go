// Package metrics provides Prometheus collectors for the CMS.
// Collectors are grouped by concern: HTTP traffic, content workflow and
// media ingest.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cms"

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// Content workflow metrics
	PostViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "posts",
			Name:      "views_total",
			Help:      "Total number of published post views served by slug",
		},
	)

	PostTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "posts",
			Name:      "transitions_total",
			Help:      "Publication workflow transitions by target status",
		},
		[]string{"status"},
	)

	SlugRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "posts",
			Name:      "slug_conflict_retries_total",
			Help:      "Writes retried after the store reported a concurrent slug conflict",
		},
	)

	// Media ingest metrics
	MediaUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "uploads_total",
			Help:      "Media uploads by file type and result",
		},
		[]string{"file_type", "result"},
	)

	MediaUploadBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "upload_bytes",
			Help:      "Size in bytes of binaries sent to the asset host",
			Buckets:   prometheus.ExponentialBuckets(16<<10, 2, 10),
		},
		[]string{"file_type"},
	)

	AssetHostDeleteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "host_delete_failures_total",
			Help:      "Best-effort asset host deletes that failed and left an orphaned object",
		},
	)

	// Cache metrics
	SlideCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "active_slides_lookups_total",
			Help:      "Active slide cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)

// Upload results
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
