package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ProcedureParam is the chi URL parameter holding namespace.procedure.
const ProcedureParam = "procedure"

// ForProcedures applies mw only to the named procedures. It must sit on the
// route itself (r.With) so the URL parameter is already resolved.
func ForProcedures(mw func(http.Handler) http.Handler, names ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := set[chi.URLParam(r, ProcedureParam)]; ok {
				wrapped.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LimitBody caps request bodies at limit bytes.
func LimitBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
