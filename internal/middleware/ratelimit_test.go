package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestRateLimiter(burst int) *RateLimiter {
	return NewRateLimiter(RateLimiterConfig{
		Rate:            0.001, // テスト中の補充をほぼ無効化
		Burst:           burst,
		CleanupInterval: time.Minute,
	})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := newTestRateLimiter(3)
	defer rl.Stop()

	handler := rl.Middleware()(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Result().StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, w.Result().StatusCode, http.StatusOK)
		}
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	rl := newTestRateLimiter(2)
	defer rl.Stop()

	handler := rl.Middleware()(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusTooManyRequests)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	var body map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["success"] != false {
		t.Error("expected success to be false")
	}
	if body["error"] != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("error = %v, want %q", body["error"], "RATE_LIMIT_EXCEEDED")
	}
}

func TestRateLimiter_CallersAreIndependent(t *testing.T) {
	rl := newTestRateLimiter(1)
	defer rl.Stop()

	handler := rl.Middleware()(okHandler())

	first := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	first.RemoteAddr = "10.0.0.1:12345"
	handler.ServeHTTP(httptest.NewRecorder(), first)

	// 別の呼び出し元は制限を共有しない
	second := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	second.RemoteAddr = "10.0.0.2:12345"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, second)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d for a different caller", w.Result().StatusCode, http.StatusOK)
	}

	if rl.LimiterCount() != 2 {
		t.Errorf("limiter count = %d, want 2", rl.LimiterCount())
	}
}

func TestCallerKey_PrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if key := CallerKey(req); key != "203.0.113.7" {
		t.Errorf("CallerKey = %q, want %q", key, "203.0.113.7")
	}
}

func TestCallerKey_FallsBackToRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:54321"

	if key := CallerKey(req); key != "10.0.0.9" {
		t.Errorf("CallerKey = %q, want %q", key, "10.0.0.9")
	}
}

func TestNewRateLimiterConfig(t *testing.T) {
	cfg := NewRateLimiterConfig(60)
	if cfg.Burst != 60 {
		t.Errorf("burst = %d, want 60", cfg.Burst)
	}
	if float64(cfg.Rate) != 1.0 {
		t.Errorf("rate = %v, want 1 req/sec", cfg.Rate)
	}

	// 不正値はデフォルトにフォールバック
	fallback := NewRateLimiterConfig(0)
	if fallback.Burst != DefaultRateLimiterConfig().Burst {
		t.Errorf("burst = %d, want default %d", fallback.Burst, DefaultRateLimiterConfig().Burst)
	}
}
