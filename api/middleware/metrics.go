package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/stationdesk-backend/pkg/metrics"
)

// RPCMetrics observes latency and outcome per procedure. The label is read
// after routing so unknown procedures collapse into a single series.
func RPCMetrics(m *metrics.RPCMetrics, known func(string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := wrapWriter(w, r)
			start := time.Now()
			next.ServeHTTP(ww, r)

			procedure := chi.URLParam(r, ProcedureParam)
			if known != nil && !known(procedure) {
				procedure = ""
			}
			m.Observe(procedure, statusOf(ww), time.Since(start))
		})
	}
}
