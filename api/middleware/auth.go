package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/stationdesk-backend/api/responses"
	pkgAuth "github.com/angelmondragon/stationdesk-backend/pkg/auth"
	"github.com/angelmondragon/stationdesk-backend/pkg/auth/session"
	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

// SessionToken returns the token from the session cookie, falling back to an
// Authorization bearer header.
func SessionToken(r *http.Request, cookieName string) string {
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			if v := strings.TrimSpace(c.Value); v != "" {
				return v
			}
		}
	}
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return ""
}

// Auth resolves the caller from the session token when one is presented and
// seeds the request context with the claims. Requests without a usable token
// continue anonymously; RequireAuth enforces authentication per route.
func Auth(cfg config.JWTConfig, cookieName string, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := withString(r.Context(), keyToken, token)

			claims, err := pkgAuth.ParseSessionToken(cfg, token)
			if err != nil || claims.ID == "" {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(ctx, claims.ID)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			ctx = withString(ctx, keyUserID, claims.UserID.String())
			ctx = withString(ctx, keyRole, string(claims.Role))
			ctx = withString(ctx, keyUserName, claims.Name)

			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
				ctx = logg.WithActorRole(ctx, string(claims.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

