package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrdesk/internal/domain/auth"
)

const testSecret = "test-secret"

func echoUser(t *testing.T) (http.Handler, *auth.UserContext) {
	t.Helper()
	var captured auth.UserContext
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := GetUser(r.Context()); ok {
			captured = user
		}
		w.WriteHeader(http.StatusOK)
	})
	return handler, &captured
}

func TestAuthInjectsUserContext(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, auth.Claims{
		AccountID: "acct-1",
		Username:  "jdoe",
		Role:      auth.RoleEmployee,
	}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	handler, captured := echoUser(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Auth(testSecret)(handler).ServeHTTP(rec, req)

	if captured.AccountID != "acct-1" || captured.Role != auth.RoleEmployee {
		t.Fatalf("unexpected user context: %+v", captured)
	}
}

func TestAuthIgnoresInvalidToken(t *testing.T) {
	handler, captured := echoUser(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	Auth(testSecret)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("invalid token should pass through anonymously, got %d", rec.Code)
	}
	if captured.AccountID != "" {
		t.Fatal("no user context should be set")
	}
}

func TestRequireGate(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	gate := Require(auth.IsHRManager)(next)

	// Anonymous request.
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous, got %d", rec.Code)
	}

	// Wrong role.
	token, err := auth.GenerateToken(testSecret, auth.Claims{AccountID: "a", Role: auth.RoleEmployee}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	Auth(testSecret)(gate).ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employee, got %d", rec.Code)
	}

	// Superuser bypasses the HR check.
	token, err = auth.GenerateToken(testSecret, auth.Claims{AccountID: "a", Role: auth.RoleEmployee, Superuser: true}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	Auth(testSecret)(gate).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for superuser, got %d", rec.Code)
	}
}

func TestRateLimitCapsRequests(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := RateLimit(2, time.Minute)(next)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		limited.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	limited.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over the limit, got %d", rec.Code)
	}

	// A different address has its own bucket.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	limited.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected fresh bucket for new address, got %d", rec.Code)
	}
}
