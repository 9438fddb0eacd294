package baas

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func newTestClient(srv *httptest.Server, store *cache.Store, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(Config{
		BaseURL:        srv.URL,
		AnonKey:        "anon-key",
		CircuitBreaker: breaker,
		PrincipalCache: store,
		HTTPClient:     srv.Client(),
		Logger:         logging.NewNop(),
	})
}

func TestClientVerifyAccessToken_SendsHeadersAndParsesUser(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/auth/v1/user" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("apikey"); got != "anon-key" {
			t.Errorf("unexpected apikey: %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-abc" {
			t.Errorf("unexpected authorization: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		raw, _ := sonic.Marshal(map[string]any{"id": "user-123", "email": "fan@example.com", "role": "authenticated"})
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	principal, err := newTestClient(srv, nil, resilience.CircuitBreakerConfig{}).VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.UserID != "user-123" || principal.Email != "fan@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestClientVerifyAccessToken_RejectedToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv, nil, resilience.CircuitBreakerConfig{}).VerifyAccessToken(context.Background(), "expired")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_EmptyTokenSkipsRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, nil, resilience.CircuitBreakerConfig{}).VerifyAccessToken(context.Background(), "  ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no request, got %d", calls.Load())
	}
}

func TestClientVerifyAccessToken_CachesPrincipal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"id":"user-1","email":"a@example.com"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, cache.NewMemory(time.Minute), resilience.CircuitBreakerConfig{})
	for i := 0; i < 3; i++ {
		if _, err := client.VerifyAccessToken(context.Background(), "token-1"); err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one auth request, got %d", calls.Load())
	}
}

func TestClientVerifyAccessToken_CircuitOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv, nil, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})
	for i := 0; i < 3; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("call %d: expected dependency unavailable, got %v", i, err)
		}
	}
	if calls.Load() != 2 {
		t.Fatalf("expected breaker to stop the third request, got %d calls", calls.Load())
	}
}
