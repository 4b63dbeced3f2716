package identity

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/user"
	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"github.com/ffmaxarena/arena-api/internal/platform/resilience"
	"github.com/ffmaxarena/arena-api/internal/usecase"
	jsoniter "github.com/json-iterator/go"
	"github.com/jonboulle/clockwork"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxCachedPrincipals = 1024

type Config struct {
	BaseURL        string
	LoginPath      string
	IntrospectPath string
	APIKey         string
	Timeout        time.Duration
	CacheTTL       time.Duration
	Breaker        resilience.BreakerConfig
}

// Client authenticates admins against a hosted identity provider using the
// password grant and verifies bearer tokens through its user endpoint.
type Client struct {
	httpClient    *http.Client
	loginURL      string
	introspectURL string
	apiKey        string
	logger        *logging.Logger
	breaker       *resilience.Breaker
	cache         *principalCache
	clock         clockwork.Clock
}

func NewClient(httpClient *http.Client, cfg Config, logger *logging.Logger, clock clockwork.Clock) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 3 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient:    httpClient,
		loginURL:      buildURL(cfg.BaseURL, cfg.LoginPath),
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		apiKey:        strings.TrimSpace(cfg.APIKey),
		logger:        logger,
		breaker:       resilience.NewBreaker(cfg.Breaker, clock),
		cache:         newPrincipalCache(cfg.CacheTTL, maxCachedPrincipals, clock),
		clock:         clock,
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (user.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return user.Session{}, fmt.Errorf("%w: email and password are required", usecase.ErrInvalidInput)
	}

	encoded, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return user.Session{}, fmt.Errorf("marshal login request: %w", err)
	}

	var decoded loginResponse
	err = c.call(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, bytes.NewReader(encoded))
		if err != nil {
			return fmt.Errorf("create login request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		return c.do(ctx, req, "login", &decoded)
	})
	if err != nil {
		return user.Session{}, err
	}

	if strings.TrimSpace(decoded.AccessToken) == "" || strings.TrimSpace(decoded.User.ID) == "" {
		return user.Session{}, fmt.Errorf("invalid login response: access_token or user id is empty")
	}

	principal := user.Principal{UserID: decoded.User.ID, Email: decoded.User.Email}
	expiresAt := c.clock.Now().Add(time.Duration(decoded.ExpiresIn) * time.Second)
	if decoded.ExpiresIn <= 0 {
		expiresAt = time.Time{}
	}
	c.cache.Set(hashToken(decoded.AccessToken), principal, expiresAt)

	return user.Session{
		Principal:   principal,
		AccessToken: decoded.AccessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := hashToken(token)
	if principal, ok := c.cache.Get(cacheKey); ok {
		return principal, nil
	}

	var decoded userResponse
	err := c.call(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.introspectURL, nil)
		if err != nil {
			return fmt.Errorf("create introspect request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return c.do(ctx, req, "introspect", &decoded)
	})
	if err != nil {
		return user.Principal{}, err
	}

	if strings.TrimSpace(decoded.ID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: id is empty")
	}

	principal := user.Principal{UserID: decoded.ID, Email: decoded.Email}
	c.cache.Set(cacheKey, principal, time.Time{})
	return principal, nil
}

// call runs fn through the breaker and maps transient failures to
// ErrDependencyUnavailable.
func (c *Client) call(ctx context.Context, fn func() error) error {
	err := c.breaker.Do(fn, isCircuitFailure)
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "identity circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: identity provider circuit open", usecase.ErrDependencyUnavailable)
	case isCircuitFailure(err):
		return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	default:
		return err
	}
}

func (c *Client) do(ctx context.Context, req *http.Request, op string, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s request: %v", errIdentityTransient, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", errIdentityTransient, op, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s denied", usecase.ErrUnauthorized, op)
	case op == "login" && resp.StatusCode == http.StatusBadRequest:
		// Password grants answer 400 for wrong credentials.
		return fmt.Errorf("%w: invalid login credentials", usecase.ErrUnauthorized)
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		c.logger.WarnContext(ctx, "identity provider unavailable", "op", op, "status_code", resp.StatusCode)
		return fmt.Errorf("%w: %s status %d", errIdentityTransient, op, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		c.logger.WarnContext(ctx, "identity provider non-200", "op", op, "status_code", resp.StatusCode)
		return fmt.Errorf("identity %s failed with status %d", op, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", op, err)
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        userResponse `json:"user"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
