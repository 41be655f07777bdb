// File: control/metrics_test.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ringbuf/api"
)

func TestRingObserverCounts(t *testing.T) {
	m, err := NewRingMetrics(prometheus.NewRegistry(), "t")
	require.NoError(t, err)

	obs := m.Observer(5)
	obs.OnWrite(8)
	obs.OnWrite(4)
	obs.OnReserve(4)
	obs.OnRead(8)
	obs.OnGrow(0, 64)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.writes.WithLabelValues("5")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reserves.WithLabelValues("5")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reads.WithLabelValues("5")))
	assert.Equal(t, 16.0, testutil.ToFloat64(m.bytesWritten.WithLabelValues("5")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.bytesRead.WithLabelValues("5")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.grows.WithLabelValues("5")))
	assert.Equal(t, 64.0, testutil.ToFloat64(m.capacity.WithLabelValues("5")))
}

func TestRingMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRingMetrics(reg, "dup")
	require.NoError(t, err)
	_, err = NewRingMetrics(reg, "dup")
	assert.Equal(t, api.ErrCodeInvalidArgument, api.CodeOf(err))
}

func TestMetricsRegistryHandler(t *testing.T) {
	mr, err := NewMetricsRegistry("rb")
	require.NoError(t, err)
	require.NotNil(t, mr.Ring)

	require.NoError(t, mr.RegisterGaugeFunc("rb", "pool_bytes", "Outstanding bytes", func() float64 { return 12 }))
	err = mr.RegisterGaugeFunc("rb", "pool_bytes", "Outstanding bytes", func() float64 { return 0 })
	assert.Equal(t, api.ErrCodeInvalidArgument, api.CodeOf(err))

	mr.Ring.Observer(0).OnWrite(4)

	rec := httptest.NewRecorder()
	mr.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "rb_pool_bytes 12")
	assert.Contains(t, string(body), `rb_ring_writes_total{buffer="0"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
