package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordOperation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordOperation("DEPOSIT", OutcomeSuccess)
	m.RecordOperation("DEPOSIT", OutcomeSuccess)
	m.RecordOperation("WITHDRAW", OutcomeInsufficientBalance)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ledgerOperations.WithLabelValues("DEPOSIT", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ledgerOperations.WithLabelValues("WITHDRAW", OutcomeInsufficientBalance)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ledgerOperations.WithLabelValues("TRANSFER", OutcomeSuccess)))
}

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("POST", "/api/transactions", 200, 0.01)
	m.ObserveRequest("POST", "/api/transactions", 422, 0.002)
	m.ObserveRequest("GET", "/api/users/{id}", 404, 0.001)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/transactions", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/transactions", "4xx")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.httpDuration))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordOperation("DEPOSIT", OutcomeSuccess)
		m.ObserveRequest("GET", "/health", 200, 0)
	})
}
