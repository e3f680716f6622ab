package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/api/v1/booking/preview", 200, time.Millisecond)
		m.ObserveQuery("select", time.Millisecond, nil)
		m.IncAppointmentsFinalized()
		m.IncFinalizeDuplicates()
		m.IncCheckoutSessions()
		m.IncCheckoutFailures("amount_too_low")
		m.SetGatewayBreakerState(1)
		m.IncRecommendationSubscriptions()
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "appointment-service")

	m.IncAppointmentsFinalized()
	m.IncAppointmentsFinalized()
	m.IncFinalizeDuplicates()
	m.IncCheckoutFailures("gateway")
	m.IncRecommendationSubscriptions()
	m.ObserveQuery("insert", time.Millisecond, errors.New("unique violation"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.appointmentsFinalized))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.finalizeDuplicates))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recommendationSubscriptions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkoutFailures.WithLabelValues("gateway")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("insert")))
}
