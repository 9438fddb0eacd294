package email

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/domain/email"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() email.Message {
	return email.Message{
		To:      []string{"fan@example.com", "pal@example.com"},
		Subject: "Week 1 results",
		HTML:    "<p>You went 5-1</p>",
		Text:    "You went 5-1",
		From:    "league@example.com",
	}
}

func TestHTTPSender_PostsMessageAndReturnsID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "league@example.com", body["from"])
		assert.Equal(t, []any{"fan@example.com", "pal@example.com"}, body["to"])
		assert.Equal(t, "Week 1 results", body["subject"])
		assert.Equal(t, "<p>You went 5-1</p>", body["html"])
		assert.Equal(t, "You went 5-1", body["text"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer srv.Close()

	sender, err := NewHTTPSender(HTTPSenderConfig{BaseURL: srv.URL + "/", APIKey: "re_test", HTTPClient: srv.Client()}, logging.NewNop())
	require.NoError(t, err)

	receipt, err := sender.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "msg_123", receipt.MessageID)
}

func TestHTTPSender_SurfacesProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"domain not verified"}`))
	}))
	defer srv.Close()

	sender, err := NewHTTPSender(HTTPSenderConfig{BaseURL: srv.URL, APIKey: "k", HTTPClient: srv.Client()}, logging.NewNop())
	require.NoError(t, err)

	_, err = sender.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=422")
	assert.Contains(t, err.Error(), "domain not verified")
	assert.False(t, isTransient(err))
}

func TestHTTPSender_BreakerOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	sender, err := NewHTTPSender(HTTPSenderConfig{
		BaseURL:    srv.URL,
		APIKey:     "k",
		HTTPClient: srv.Client(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())
	require.NoError(t, err)

	_, err = sender.Send(context.Background(), testMessage())
	require.Error(t, err)
	_, err = sender.Send(context.Background(), testMessage())
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewHTTPSender_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  HTTPSenderConfig
	}{
		{name: "empty url", cfg: HTTPSenderConfig{APIKey: "k"}},
		{name: "bad scheme", cfg: HTTPSenderConfig{BaseURL: "ftp://mail.example.com", APIKey: "k"}},
		{name: "missing key", cfg: HTTPSenderConfig{BaseURL: "https://api.example.com"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewHTTPSender(tc.cfg, logging.NewNop()); err == nil {
				t.Fatalf("expected config error")
			}
		})
	}
}
