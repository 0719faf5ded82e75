package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Counter: total HTTP requests
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Histogram: request duration
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	// Counter: fire-and-forget persistence writes by outcome
	PersistWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_persist_writes_total",
			Help: "Background persistence writes",
		},
		[]string{"kind", "op", "status"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(ReqCount, ReqDuration, PersistWrites)
}
