package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsIndexed counts protocol events written to the index by contract and type
	EventsIndexed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_events_indexed_total",
			Help: "Total number of protocol events indexed",
		},
		[]string{"contract", "event_type"},
	)

	// LastIndexedBlock tracks the highest block the watcher has processed
	LastIndexedBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gateway_last_indexed_block",
			Help: "Last block number processed by the event watcher",
		},
	)

	// ErrorsTotal counts errors by component and type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// HTTPRequestsTotal counts API requests by route, method and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration tracks API request latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)
