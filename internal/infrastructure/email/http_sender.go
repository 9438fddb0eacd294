// Package email holds the outbound mail providers behind email.Sender.
package email

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/pickem-league/internal/domain/email"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var errProviderTransient = crerr.New("email provider transient failure")

type HTTPSenderConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	HTTPClient     *http.Client
}

// HTTPSender posts messages to a transactional email REST API.
type HTTPSender struct {
	client  *http.Client
	sendURL string
	apiKey  string
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewHTTPSender(cfg HTTPSenderConfig, logger *logging.Logger) (*HTTPSender, error) {
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid EMAIL_HTTP_BASE_URL: %w", err)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("EMAIL_HTTP_API_KEY is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker,
		resilience.WithName("email-http"),
		resilience.WithStateListener(resilience.LogTransitions(logger)),
	)
	return &HTTPSender{
		client:  client,
		sendURL: baseURL + "/emails",
		apiKey:  strings.TrimSpace(cfg.APIKey),
		breaker: breaker,
		logger:  logger,
	}, nil
}

type httpSendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
}

type httpSendResponse struct {
	ID string `json:"id"`
}

func (s *HTTPSender) Send(ctx context.Context, msg email.Message) (email.Receipt, error) {
	var receipt email.Receipt
	err := s.breaker.Run(func() error {
		var sendErr error
		receipt, sendErr = s.send(ctx, msg)
		return sendErr
	}, isTransient)
	return receipt, err
}

func (s *HTTPSender) send(ctx context.Context, msg email.Message) (email.Receipt, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(httpSendRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return email.Receipt{}, crerr.Wrap(err, "encode email request")
	}
	_, _ = buf.Write(encoded)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("email.provider", "http"),
			attribute.Int("email.recipients", len(msg.To)),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.sendURL, strings.NewReader(buf.String()))
	if err != nil {
		return email.Receipt{}, crerr.Wrap(err, "create email request")
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return email.Receipt{}, ctxErr
		}
		return email.Receipt{}, crerr.Mark(crerr.Wrap(err, "post email"), errProviderTransient)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return email.Receipt{}, crerr.Mark(crerr.Wrap(err, "read email response"), errProviderTransient)
	}
	if resp.StatusCode/100 != 2 {
		providerErr := crerr.Newf("email provider status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return email.Receipt{}, crerr.Mark(providerErr, errProviderTransient)
		}
		return email.Receipt{}, providerErr
	}

	var decoded httpSendResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return email.Receipt{}, crerr.Wrap(err, "decode email response")
	}
	s.logger.DebugContext(ctx, "email accepted by provider", "message_id", decoded.ID)
	return email.Receipt{MessageID: decoded.ID}, nil
}

func isTransient(err error) bool {
	return crerr.Is(err, errProviderTransient)
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", fmt.Errorf("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", candidate, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", fmt.Errorf("%q has empty host", candidate)
	}
	return strings.TrimRight(candidate, "/"), nil
}
