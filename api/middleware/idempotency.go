package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/stationdesk-backend/api/responses"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 128
)

type replayStore interface {
	ClaimReplay(ctx context.Context, scope, value string, ttl time.Duration) (bool, error)
	LoadReplay(ctx context.Context, scope string) (string, bool, error)
	SaveReplay(ctx context.Context, scope, value string, ttl time.Duration) error
	DropReplay(ctx context.Context, scope string) error
}

// replayRecord is pending while the first request runs and holds the
// captured response once it finished.
type replayRecord struct {
	Pending     bool   `json:"pending,omitempty"`
	RequestHash string `json:"request_hash"`
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        string `json:"body,omitempty"`
}

// Idempotency replays the stored response when a mutation is retried with
// the same Idempotency-Key. The header is optional. Keys are scoped to the
// caller and the procedure, and reusing one with a different body is a
// conflict. Server errors and panics release the key so the retry runs
// again.
func Idempotency(store replayStore, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || ttl <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			idemKey := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
			if idemKey == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(idemKey) > maxIdempotencyKeyLen {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key is too long"))
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request body could not be read"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			procedure := chi.URLParam(r, ProcedureParam)
			scope := strings.Join([]string{UserIDFromContext(ctx), procedure, idemKey}, "|")
			requestHash := hashRequest(procedure, body)

			pending, _ := json.Marshal(replayRecord{Pending: true, RequestHash: requestHash})
			claimed, err := store.ClaimReplay(ctx, scope, string(pending), ttl)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "idempotency store unavailable"))
				return
			}
			if !claimed {
				replayStored(ctx, w, store, scope, requestHash, logg)
				return
			}

			release := func() {
				if err := store.DropReplay(context.WithoutCancel(ctx), scope); err != nil && logg != nil {
					logg.Error(ctx, "idempotency.release_failed", err)
				}
			}

			capture := &responseCapture{ResponseWriter: w}
			completed := false
			defer func() {
				if !completed {
					release()
				}
			}()
			next.ServeHTTP(capture, r)
			completed = true

			status := capture.statusCode()
			if status >= http.StatusInternalServerError {
				release()
				return
			}
			done, _ := json.Marshal(replayRecord{
				RequestHash: requestHash,
				Status:      status,
				ContentType: capture.Header().Get("Content-Type"),
				Body:        base64.StdEncoding.EncodeToString(capture.body.Bytes()),
			})
			if err := store.SaveReplay(ctx, scope, string(done), ttl); err != nil && logg != nil {
				logg.Error(ctx, "idempotency.save_failed", err)
			}
		})
	}
}

func replayStored(ctx context.Context, w http.ResponseWriter, store replayStore, scope, requestHash string, logg *logger.Logger) {
	stored, found, err := store.LoadReplay(ctx, scope)
	if err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "idempotency store unavailable"))
		return
	}
	var rec replayRecord
	if !found || json.Unmarshal([]byte(stored), &rec) != nil || rec.Pending && rec.RequestHash == requestHash {
		responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeConflict, "a request with this Idempotency-Key is still in progress"))
		return
	}
	if rec.RequestHash != requestHash {
		responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeConflict, "Idempotency-Key was already used with a different request"))
		return
	}
	payload, err := base64.StdEncoding.DecodeString(rec.Body)
	if err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode stored response"))
		return
	}
	if logg != nil {
		logg.Info(logg.WithField(ctx, "status", rec.Status), "idempotency.replayed")
	}
	if rec.ContentType != "" {
		w.Header().Set("Content-Type", rec.ContentType)
	}
	w.Header().Set(ReplayedHeader, "true")
	w.WriteHeader(rec.Status)
	_, _ = w.Write(payload)
}

func hashRequest(procedure string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(procedure))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// responseCapture tees the response so it can be stored after the handler
// returns.
type responseCapture struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (c *responseCapture) WriteHeader(code int) {
	if c.status == 0 {
		c.status = code
	}
	c.ResponseWriter.WriteHeader(code)
}

func (c *responseCapture) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

func (c *responseCapture) statusCode() int {
	if c.status == 0 {
		return http.StatusOK
	}
	return c.status
}
