package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.AnswerRecorded()
	m.AnswerRecorded()
	m.AnswerRejected()
	m.SessionEvent("start")
	m.GuidanceServed("static")
	m.ObserveHTTP("POST", "/api/v1/sessions", 201, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.answers.WithLabelValues(OutcomeRecorded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.answers.WithLabelValues(OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessions.WithLabelValues("start")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.guidance.WithLabelValues("static")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/v1/sessions", "201")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.httpDuration))
}

func TestNew_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	require.NoError(t, err)
	second, err := New(reg)
	require.NoError(t, err)

	second.AnswerRecorded()
	assert.Equal(t, 1.0, testutil.ToFloat64(first.answers.WithLabelValues(OutcomeRecorded)))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.AnswerRecorded()
		m.AnswerRejected()
		m.SessionEvent("reset")
		m.GuidanceServed("llm")
		m.ObserveHTTP("GET", "/healthz", 200, time.Millisecond)
	})
}
