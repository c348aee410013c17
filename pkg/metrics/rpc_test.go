package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSplitsOutcomes(t *testing.T) {
	m := NewRPCMetrics(prometheus.NewRegistry())

	m.Observe("shifts.create", http.StatusOK, 250*time.Millisecond)
	m.Observe("shifts.create", http.StatusOK, 50*time.Millisecond)
	m.Observe("shifts.create", http.StatusUnprocessableEntity, 5*time.Millisecond)
	m.Observe("", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.success.WithLabelValues("shifts.create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failure.WithLabelValues("shifts.create", "422")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failure.WithLabelValues("unknown", "404")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.failure)+testutil.CollectAndCount(m.success))

	var sample dto.Metric
	hist := m.duration.WithLabelValues("shifts.create").(prometheus.Metric)
	require.NoError(t, hist.Write(&sample))
	assert.Equal(t, uint64(3), sample.GetHistogram().GetSampleCount())
	assert.InDelta(t, 0.305, sample.GetHistogram().GetSampleSum(), 1e-9)
}

func TestObserveIsNilSafe(t *testing.T) {
	var m *RPCMetrics
	assert.NotPanics(t, func() {
		m.Observe("auth.me", http.StatusOK, time.Millisecond)
		NewRPCMetrics(nil).Observe("", http.StatusInternalServerError, time.Millisecond)
	})
}
