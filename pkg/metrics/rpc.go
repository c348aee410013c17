package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RPCMetrics records per-procedure latency and outcome counts.
type RPCMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewRPCMetrics registers the procedure metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewRPCMetrics(reg prometheus.Registerer) *RPCMetrics {
	if reg == nil {
		return &RPCMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stationdesk",
		Name:      "rpc_duration_seconds",
		Help:      "Duration of RPC procedure calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stationdesk",
		Name:      "rpc_success_total",
		Help:      "RPC calls answered with a 2xx status.",
	}, []string{"procedure"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stationdesk",
		Name:      "rpc_failure_total",
		Help:      "RPC calls answered with an error status.",
	}, []string{"procedure", "status"})
	reg.MustRegister(duration, success, failure)
	return &RPCMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// Observe records one completed call.
func (m *RPCMetrics) Observe(procedure string, status int, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	procedure = normalizeLabel(procedure)
	m.duration.WithLabelValues(procedure).Observe(elapsed.Seconds())
	if status >= 200 && status < 400 {
		m.success.WithLabelValues(procedure).Inc()
		return
	}
	m.failure.WithLabelValues(procedure, strconv.Itoa(status)).Inc()
}

func normalizeLabel(procedure string) string {
	if procedure == "" {
		return "unknown"
	}
	return procedure
}
