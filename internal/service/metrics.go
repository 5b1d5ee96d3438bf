package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

var (
	estimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "union_price_estimates_total",
			Help: "Total number of estimates served, by kind, mode and outcome",
		},
		[]string{"kind", "mode", "outcome"},
	)

	upstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "union_price_upstream_request_duration_seconds",
			Help:    "Latency of prediction service calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
)
