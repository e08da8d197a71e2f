package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegistersCollectors(t *testing.T) {
	m := NewMetrics()
	require.NotNil(t, m.Registry())

	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/wells", "200").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/wells", "200")))
}

func TestObserveMerge(t *testing.T) {
	m := NewMetrics()
	m.ObserveMerge(2*time.Millisecond, 5, 2)
	m.ObserveMerge(time.Millisecond, 3, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.MergeDropped))
	assert.Equal(t, 2, testutil.CollectAndCount(m.MergeDuration))
}

func TestObserveEngineCall(t *testing.T) {
	m := NewMetrics()
	m.ObserveEngineCall("compute_nodal", 120*time.Millisecond, "")
	m.ObserveEngineCall("compute_nodal", 50*time.Millisecond, "ENG_004")

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.EngineCallErrors.WithLabelValues("compute_nodal", "ENG_004")))
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = NewMetrics()
		_ = NewMetrics()
	})
}
