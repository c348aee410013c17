package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/auth"
	"github.com/angelmondragon/stationdesk-backend/pkg/auth/session"
	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

const testCookie = "app_session_id"

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", SessionTTL: time.Hour}

type stubSessionVerifier struct {
	ok  bool
	err error
}

func (s stubSessionVerifier) HasSession(context.Context, string) (bool, error) {
	return s.ok, s.err
}

var _ session.AccessSessionChecker = stubSessionVerifier{}

func mintTestToken(t *testing.T, role enums.UserRole) (string, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	token, _, err := auth.MintSessionToken(testJWT, time.Now(), auth.SessionPayload{
		UserID: userID,
		Name:   "Dana",
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token, userID
}

type captured struct {
	user  string
	role  string
	name  string
	token string
}

func captureHandler(out *captured) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out.user = UserIDFromContext(r.Context())
		out.role = RoleFromContext(r.Context())
		out.name = UserNameFromContext(r.Context())
		out.token = SessionTokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthAnonymousWithoutToken(t *testing.T) {
	var got captured
	handler := Auth(testJWT, testCookie, stubSessionVerifier{ok: true}, nil)(captureHandler(&got))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got.user != "" {
		t.Fatalf("expected anonymous context, got user %q", got.user)
	}
}

func TestAuthIgnoresInvalidToken(t *testing.T) {
	var got captured
	handler := Auth(testJWT, testCookie, stubSessionVerifier{ok: true}, nil)(captureHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got.user != "" {
		t.Fatalf("invalid token must not authenticate")
	}
	if got.token != "invalid" {
		t.Fatalf("expected raw token to be kept, got %q", got.token)
	}
}

func TestAuthAcceptsCookie(t *testing.T) {
	token, userID := mintTestToken(t, enums.UserRoleAdmin)
	var got captured
	handler := Auth(testJWT, testCookie, stubSessionVerifier{ok: true}, nil)(captureHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got.user != userID.String() {
		t.Fatalf("expected user %s got %q", userID, got.user)
	}
	if got.role != string(enums.UserRoleAdmin) {
		t.Fatalf("expected admin role got %q", got.role)
	}
	if got.name != "Dana" {
		t.Fatalf("expected name claim got %q", got.name)
	}
}

func TestAuthAcceptsBearer(t *testing.T) {
	token, userID := mintTestToken(t, enums.UserRoleUser)
	var got captured
	handler := Auth(testJWT, testCookie, nil, nil)(captureHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got.user != userID.String() {
		t.Fatalf("expected user %s got %q", userID, got.user)
	}
}

func TestAuthRevokedSessionIsAnonymous(t *testing.T) {
	token, _ := mintTestToken(t, enums.UserRoleUser)
	var got captured
	handler := Auth(testJWT, testCookie, stubSessionVerifier{ok: false}, nil)(captureHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got.user != "" {
		t.Fatalf("revoked session must not authenticate")
	}
}

func TestAuthSessionStoreFailure(t *testing.T) {
	token, _ := mintTestToken(t, enums.UserRoleUser)
	handler := Auth(testJWT, testCookie, stubSessionVerifier{err: errors.New("redis down")}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestRequireAuthAndRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	cases := []struct {
		name   string
		user   string
		role   string
		chain  http.Handler
		status int
	}{
		{"auth anonymous", "", "", RequireAuth(nil)(ok), http.StatusUnauthorized},
		{"auth user", "u-1", "user", RequireAuth(nil)(ok), http.StatusOK},
		{"admin anonymous", "", "", RequireRole(nil, enums.UserRoleAdmin)(ok), http.StatusUnauthorized},
		{"admin as user", "u-1", "user", RequireRole(nil, enums.UserRoleAdmin)(ok), http.StatusForbidden},
		{"admin as admin", "u-1", "admin", RequireRole(nil, enums.UserRoleAdmin)(ok), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			ctx := req.Context()
			if tc.user != "" {
				ctx = WithRole(WithUserID(ctx, tc.user), tc.role)
			}
			resp := httptest.NewRecorder()
			tc.chain.ServeHTTP(resp, req.WithContext(ctx))
			if resp.Code != tc.status {
				t.Fatalf("expected %d got %d", tc.status, resp.Code)
			}
		})
	}
}
