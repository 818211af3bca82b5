package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ContractCalls(t *testing.T) {
	m := NewMetrics()

	m.ObserveContractCall("FeePayment", "payFee", "success", 2*time.Second)
	m.ObserveContractCall("FeePayment", "payFee", "success", time.Second)
	m.ObserveContractCall("FeePayment", "payFee", "user_rejected", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.contractCalls.WithLabelValues("FeePayment", "payFee", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.contractCalls.WithLabelValues("FeePayment", "payFee", "user_rejected")))
}

func TestMetrics_SessionGauge(t *testing.T) {
	m := NewMetrics()
	active := 3
	m.TrackSessions(func() int { return active })

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "unifin_sessions_active" {
			found = true
			assert.Equal(t, 3.0, f.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "NOT_FOUND")
		m.ObserveContractCall("c", "m", "success", time.Second)
		m.RecordDenial("admin", "wrong_role")
	})
}
