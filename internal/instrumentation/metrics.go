package instrumentation

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric label keys - using constants for consistency.
const (
	labelIntegration = "integration"
	labelOperation   = "operation"
	labelStatus      = "status"
	labelResult      = "result"
)

// Result values for token refresh metrics.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics provides methods for recording provider observability metrics.
// A nil *Metrics is valid and records nothing, so instrumentation stays
// optional for callers such as tests.
type Metrics struct {
	providerRequestsTotal *prometheus.CounterVec
	tokenRefreshTotal     *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance registered on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		providerRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "calbridge_provider_requests_total",
			Help: "Total number of remote provider API requests",
		}, []string{labelIntegration, labelOperation, labelStatus}),
		tokenRefreshTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "calbridge_token_refresh_total",
			Help: "Total number of OAuth token refresh attempts",
		}, []string{labelIntegration, labelResult}),
	}
}

// RecordProviderRequest records one remote API request with its HTTP status.
func (m *Metrics) RecordProviderRequest(integration, operation string, status int) {
	if m == nil {
		return
	}
	m.providerRequestsTotal.WithLabelValues(integration, operation, strconv.Itoa(status)).Inc()
}

// RecordTokenRefresh records one token refresh attempt.
func (m *Metrics) RecordTokenRefresh(integration, result string) {
	if m == nil {
		return
	}
	m.tokenRefreshTotal.WithLabelValues(integration, result).Inc()
}
