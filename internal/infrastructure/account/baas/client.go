// Package baas verifies bearer tokens against the BaaS auth endpoint.
package baas

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const userPath = "/auth/v1/user"

var errAuthTransient = crerr.New("baas auth transient failure")

type Config struct {
	BaseURL        string
	AnonKey        string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	// PrincipalCache holds verified principals keyed by token hash. Its TTL
	// bounds how long a revoked token keeps working.
	PrincipalCache *cache.Store
	HTTPClient     *http.Client
	Logger         *logging.Logger
}

type Client struct {
	httpClient *http.Client
	userURL    string
	anonKey    string
	principals *cache.Store
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker,
		resilience.WithName("baas-auth"),
		resilience.WithStateListener(resilience.LogTransitions(logger)),
	)
	return &Client{
		httpClient: httpClient,
		userURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/") + userPath,
		anonKey:    strings.TrimSpace(cfg.AnonKey),
		principals: cfg.PrincipalCache,
		breaker:    breaker,
		logger:     logger,
	}
}

// VerifyAccessToken resolves the token to the user it was issued for.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	return cache.GetOrLoad(ctx, c.principals, "auth:principal:"+hashToken(token), nil, func(ctx context.Context) (user.Principal, error) {
		var principal user.Principal
		err := c.breaker.Run(func() error {
			var reqErr error
			principal, reqErr = c.fetchUser(ctx, token)
			return reqErr
		}, isCircuitFailure)
		if err != nil {
			if crerr.Is(err, resilience.ErrCircuitOpen) {
				c.logger.WarnContext(ctx, "baas auth circuit breaker rejected request", "state", c.breaker.State())
				return user.Principal{}, fmt.Errorf("%w: auth service is temporarily unavailable", usecase.ErrDependencyUnavailable)
			}
			if isCircuitFailure(err) {
				return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
			}
			return user.Principal{}, err
		}
		return principal, nil
	})
}

func (c *Client) fetchUser(ctx context.Context, token string) (user.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL, nil)
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create auth request")
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return user.Principal{}, ctxErr
		}
		return user.Principal{}, crerr.Mark(crerr.Wrap(err, "request baas auth"), errAuthTransient)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, crerr.Mark(crerr.Wrap(err, "read auth response"), errAuthTransient)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return user.Principal{}, fmt.Errorf("%w: token rejected", usecase.ErrUnauthorized)
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		c.logger.WarnContext(ctx, "baas auth unavailable", "status_code", resp.StatusCode)
		return user.Principal{}, crerr.Mark(crerr.Newf("baas auth status %d", resp.StatusCode), errAuthTransient)
	case resp.StatusCode != http.StatusOK:
		return user.Principal{}, fmt.Errorf("%w: auth status %d", usecase.ErrUnauthorized, resp.StatusCode)
	}

	var decoded userResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(err, "decode auth response")
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return user.Principal{}, fmt.Errorf("%w: auth response has no user id", usecase.ErrUnauthorized)
	}
	return user.Principal{UserID: decoded.ID, Email: decoded.Email}, nil
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
