package services

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	apiErrorsTotal    *prometheus.CounterVec
}

// NewPrometheusMetrics registers the FINORA collectors with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finora_resource_operations_total",
				Help: "Total number of resource operations by resource, operation, and outcome",
			},
			[]string{"resource", "operation", "outcome"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finora_resource_operation_duration_milliseconds",
				Help:    "Resource operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"resource", "operation"},
		),
		apiErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_errors_total",
				Help: "Total number of API errors by code, endpoint, and status",
			},
			[]string{"code", "endpoint", "status"},
		),
	}
}

func (m *PrometheusMetrics) RecordOperation(resource, operation, outcome string, duration time.Duration) {
	m.operationsTotal.WithLabelValues(resource, operation, outcome).Inc()
	m.operationDuration.WithLabelValues(resource, operation).Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordAPIError(code, endpoint string, status int) {
	m.apiErrorsTotal.WithLabelValues(code, endpoint, strconv.Itoa(status)).Inc()
}
