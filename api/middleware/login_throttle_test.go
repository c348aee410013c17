package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/config"
)

type memoryCounters struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *memoryCounters) CountAttempt(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	m.counts[key]++
	return m.counts[key], nil
}

func loginRequest(email, remote string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/rpc/auth.login", strings.NewReader(`{"email":"`+email+`","password":"secret"}`))
	req.RemoteAddr = remote
	return req
}

func TestLoginThrottleEmailLimit(t *testing.T) {
	store := &memoryCounters{}
	cfg := config.AuthRateLimitConfig{LoginWindow: time.Minute, LoginEmailLimit: 2}
	h := LoginThrottle(cfg, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "password") {
			t.Fatalf("body not replayed: %s", body)
		}
		w.WriteHeader(http.StatusOK)
	}))

	codes := []int{}
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, loginRequest(" Clerk@Example.com", "10.0.0.1:1000"))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}
	for key := range store.counts {
		if strings.Contains(key, "clerk@example.com") {
			t.Fatalf("raw email leaked into key %s", key)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, loginRequest("other@example.com", "10.0.0.1:1000"))
	if rec.Code != http.StatusOK {
		t.Fatalf("other email should not be throttled, got %d", rec.Code)
	}
}

func TestLoginThrottleIPLimitUsesForwardedFor(t *testing.T) {
	store := &memoryCounters{}
	cfg := config.AuthRateLimitConfig{LoginWindow: time.Minute, LoginIPLimit: 1}
	h := LoginThrottle(cfg, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := loginRequest("a@example.com", "10.0.0.2:1000")
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.2")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("attempt %d: expected %d got %d", i, want, rec.Code)
		}
	}
	if store.counts["login:ip:203.0.113.9"] != 2 {
		t.Fatalf("unexpected counters %v", store.counts)
	}
}

func TestLoginThrottleDisabledAndStoreFailure(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	rec := httptest.NewRecorder()
	LoginThrottle(config.AuthRateLimitConfig{LoginEmailLimit: 1}, &memoryCounters{}, nil)(ok).ServeHTTP(rec, loginRequest("a@example.com", "1.1.1.1:1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("zero window should disable throttling, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	failing := &memoryCounters{err: errors.New("redis down")}
	cfg := config.AuthRateLimitConfig{LoginWindow: time.Minute, LoginEmailLimit: 1}
	LoginThrottle(cfg, failing, nil)(ok).ServeHTTP(rec, loginRequest("a@example.com", "1.1.1.1:1"))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 on store failure, got %d", rec.Code)
	}
}
