// Package metrics owns the process-wide Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statuspage_events_published_total",
			Help: "Domain events handed to the broker, by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statuspage_events_consumed_total",
			Help: "Domain events consumed from the broker, by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	ServicesReconciled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statuspage_services_reconciled_total",
			Help: "Services visited by the status reconciler, by whether the status changed",
		},
		[]string{"changed"},
	)

	StreamClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "statuspage_status_stream_clients",
		Help: "Open public status WebSocket connections",
	})

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statuspage_cache_lookups_total",
			Help: "Public page cache lookups by view and result",
		},
		[]string{"view", "result"},
	)
)

// HTTPRecorder feeds the request collectors; it satisfies the HTTP middleware's recorder.
type HTTPRecorder struct{}

func (HTTPRecorder) Observe(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
