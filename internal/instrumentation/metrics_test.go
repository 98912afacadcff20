package instrumentation

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordProviderRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordProviderRequest("office365_calendar", "calendars.list", 200)
	m.RecordProviderRequest("office365_calendar", "calendars.list", 200)
	m.RecordProviderRequest("office365_calendar", "events.create", 403)

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.providerRequestsTotal.WithLabelValues("office365_calendar", "calendars.list", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.providerRequestsTotal.WithLabelValues("office365_calendar", "events.create", "403")))
}

func TestRecordTokenRefresh(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordTokenRefresh("office365_calendar", ResultSuccess)
	m.RecordTokenRefresh("office365_calendar", ResultError)
	m.RecordTokenRefresh("office365_calendar", ResultError)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.tokenRefreshTotal.WithLabelValues("office365_calendar", ResultSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.tokenRefreshTotal.WithLabelValues("office365_calendar", ResultError)))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordProviderRequest("office365_calendar", "calendars.list", 200)
		m.RecordTokenRefresh("office365_calendar", ResultSuccess)
	})
}
