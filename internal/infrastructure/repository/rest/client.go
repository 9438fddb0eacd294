package rest

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
	"github.com/valyala/fasthttp"
)

var errRESTTransient = crerr.New("baas rest transient failure")

// APIError is the error body the REST gateway returns for rejected requests.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("baas rest status=%d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("baas rest status=%d code=%s: %s", e.Status, e.Code, e.Message)
}

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	ServiceKey     string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	HTTPClient     *fasthttp.Client
}

// Client talks to the /rest/v1 table endpoints with the service key.
type Client struct {
	http       *fasthttp.Client
	baseURL    string
	apiKey     string
	serviceKey string
	timeout    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "pickem-league",
			MaxIdleConnDuration: 30 * time.Second,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		}
	}
	serviceKey := strings.TrimSpace(cfg.ServiceKey)
	if serviceKey == "" {
		serviceKey = strings.TrimSpace(cfg.APIKey)
	}

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker,
		resilience.WithName("baas-rest"),
		resilience.WithStateListener(resilience.LogTransitions(logger)),
	)
	return &Client{
		http:       httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		serviceKey: serviceKey,
		timeout:    timeout,
		logger:     logger,
		breaker:    breaker,
	}
}

// Select decodes the rows matching q into out, which must point to a slice.
func (c *Client) Select(ctx context.Context, q Query, out any) error {
	return c.do(ctx, fasthttp.MethodGet, q, nil, out, "")
}

// Insert writes body and decodes the created rows into out when non-nil.
func (c *Client) Insert(ctx context.Context, q Query, body any, out any) error {
	return c.do(ctx, fasthttp.MethodPost, q, body, out, "return=representation")
}

// Upsert merges body on the table's primary key.
func (c *Client) Upsert(ctx context.Context, q Query, body any, out any) error {
	return c.do(ctx, fasthttp.MethodPost, q, body, out, "resolution=merge-duplicates,return=representation")
}

func (c *Client) Update(ctx context.Context, q Query, body any, out any) error {
	return c.do(ctx, fasthttp.MethodPatch, q, body, out, "return=representation")
}

func (c *Client) Delete(ctx context.Context, q Query, out any) error {
	return c.do(ctx, fasthttp.MethodDelete, q, nil, out, "return=representation")
}

func (c *Client) do(ctx context.Context, method string, q Query, body any, out any, prefer string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.baseURL == "" {
		return crerr.New("baas rest base url is not configured")
	}

	var raw []byte
	err := c.breaker.Run(func() error {
		var reqErr error
		raw, reqErr = c.execute(ctx, method, q, body, prefer)
		return reqErr
	}, isTransient)
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "baas rest circuit breaker rejected request", "table", q.table, "state", c.breaker.State())
			return fmt.Errorf("%w: baas rest is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return err
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return crerr.Wrapf(err, "decode %s rows", q.table)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, method string, q Query, body any, prefer string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/rest/v1/" + q.table + "?" + q.Encode())
	req.Header.SetMethod(method)
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}
	if body != nil {
		encoded, err := sonic.Marshal(body)
		if err != nil {
			return nil, crerr.Wrapf(err, "encode %s body", q.table)
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(encoded)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, crerr.Mark(crerr.Wrapf(err, "%s %s", method, q.table), errRESTTransient)
	}

	status := resp.StatusCode()
	raw := append([]byte(nil), resp.Body()...)
	if status >= 200 && status < 300 {
		return raw, nil
	}

	apiErr := &APIError{Status: status}
	if len(raw) > 0 {
		if err := sonic.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = abbreviate(string(raw), 512)
		}
	}
	if status >= 500 || status == fasthttp.StatusTooManyRequests {
		return nil, crerr.Mark(apiErr, errRESTTransient)
	}
	return nil, apiErr
}

func isTransient(err error) bool {
	return crerr.Is(err, errRESTTransient)
}

// asAPIError extracts the gateway error, if any.
func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if crerr.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func abbreviate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
