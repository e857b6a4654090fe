// Package observability holds the Prometheus collectors and the in-process
// route statistics exposed by the service.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "avaliafor"

var (
	// HTTPRequests counts served requests by route, method and status class.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served.",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// GRPCRequests counts gRPC calls by method and status code.
	GRPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "gRPC calls served.",
		},
		[]string{"method", "code"},
	)

	// Submissions counts evaluation submissions by origin and outcome.
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Evaluation submissions by outcome (accepted, rejected, failed).",
		},
		[]string{"origin", "outcome"},
	)

	// ArtifactUploads counts artifact uploads to the file repository.
	ArtifactUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_uploads_total",
			Help:      "Artifact uploads by outcome.",
		},
		[]string{"outcome"},
	)

	// BulkItems counts items processed by bulk maintenance operations.
	BulkItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bulk_items_total",
			Help:      "Items processed by bulk operations.",
		},
		[]string{"operation", "outcome"},
	)

	// ExistenceLookups counts artifact existence cache lookups.
	ExistenceLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "existence_cache_lookups_total",
			Help:      "Artifact existence lookups by cache result (hit, miss).",
		},
		[]string{"result"},
	)

	// DegradedLoads counts catalog loads served from the built-in dataset.
	DegradedLoads = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_degraded_loads_total",
			Help:      "Catalog loads that fell back to built-in reference data.",
		},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
