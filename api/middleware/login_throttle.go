package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/stationdesk-backend/api/responses"
	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

type counterStore interface {
	CountAttempt(ctx context.Context, name string, window time.Duration) (int64, error)
}

// throttleBucket is one fixed-window counter: per client address or per
// hashed login email.
type throttleBucket struct {
	scope string
	limit int64
	value func(r *http.Request, body []byte) string
}

// LoginThrottle counts login attempts per client IP and per submitted email
// inside a fixed window. A nil store or a zero window disables it.
func LoginThrottle(cfg config.AuthRateLimitConfig, store counterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	var buckets []throttleBucket
	if cfg.LoginIPLimit > 0 {
		buckets = append(buckets, throttleBucket{
			scope: "ip",
			limit: int64(cfg.LoginIPLimit),
			value: func(r *http.Request, _ []byte) string { return clientIP(r) },
		})
	}
	if cfg.LoginEmailLimit > 0 {
		buckets = append(buckets, throttleBucket{
			scope: "email",
			limit: int64(cfg.LoginEmailLimit),
			value: func(_ *http.Request, body []byte) string { return hashedLoginEmail(body) },
		})
	}

	return func(next http.Handler) http.Handler {
		if store == nil || cfg.LoginWindow <= 0 || len(buckets) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request body could not be read"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			for _, b := range buckets {
				value := b.value(r, body)
				if value == "" {
					continue
				}
				count, err := store.CountAttempt(ctx, "login:"+b.scope+":"+value, cfg.LoginWindow)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiter unavailable"))
					return
				}
				if count > b.limit {
					if logg != nil {
						logg.Warn(logg.WithFields(ctx, map[string]any{
							"scope":    b.scope,
							"attempts": count,
							"limit":    b.limit,
							"window":   cfg.LoginWindow.String(),
						}), "login.throttled")
					}
					responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts, try again later"))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// hashedLoginEmail keeps raw addresses out of redis keys and logs.
func hashedLoginEmail(body []byte) string {
	var input struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(body, &input) != nil {
		return ""
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:])
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
