package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boundbox_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boundbox_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Geometry metrics
	boxesIn = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boundbox_boxes_in",
			Help:    "Number of boxes received per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"endpoint"},
	)

	boxesOut = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boundbox_boxes_out",
			Help:    "Number of boxes returned per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"endpoint"},
	)

	adapterErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boundbox_adapter_errors_total",
			Help: "Total number of payloads an adapter could not convert",
		},
		[]string{"adapter"},
	)
)
