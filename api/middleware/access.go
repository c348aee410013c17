package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/angelmondragon/stationdesk-backend/api/responses"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

// RequireAuth rejects requests that carry no authenticated user.
func RequireAuth(logg *logger.Logger) func(http.Handler) http.Handler {
	return RequireRole(logg)
}

// RequireRole admits authenticated users holding one of roles. With no roles
// listed any authenticated user passes.
func RequireRole(logg *logger.Logger, roles ...enums.UserRole) func(http.Handler) http.Handler {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	denied := pkgerrors.New(pkgerrors.CodeForbidden, "requires role "+strings.Join(names, " or "))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if UserIDFromContext(ctx) == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			if len(names) > 0 && !slices.Contains(names, RoleFromContext(ctx)) {
				responses.WriteError(ctx, logg, w, denied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
