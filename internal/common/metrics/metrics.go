// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineCallsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_pipeline_calls_completed_total",
			Help: "Total number of pipeline calls completed by operation",
		},
		[]string{"operation", "variant"},
	)

	PipelineCallsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_pipeline_calls_failed_total",
			Help: "Total number of pipeline calls failed by operation",
		},
		[]string{"operation", "error_code"},
	)

	PipelineCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gateway_pipeline_call_duration_seconds",
			Help: "Duration of pipeline call processing in seconds",
		},
		[]string{"operation"},
	)

	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_backend_requests_total",
			Help: "Outbound backend requests by operation and HTTP status",
		},
		[]string{"operation", "status"},
	)
)
