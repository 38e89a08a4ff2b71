package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/kurochkinivan/dashboard_client/internal/config"
	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

const (
	maxResponseBytes = 16 << 20
	rosterCacheKey   = "team-leaders"
	requestIDHeader  = "X-Request-ID"
)

type Client struct {
	log        *slog.Logger
	baseURL    *url.URL
	httpClient *http.Client
	roster     *ttlworker.Cache[string, []*domain.TeamLeader]
	webhookURL string
}

type Option func(*Client)

// WithWebhookURL makes every upload ask the server to notify webhookURL once
// the archives are processed. An empty value sends no webhook field.
func WithWebhookURL(webhookURL string) Option {
	return func(c *Client) {
		c.webhookURL = webhookURL
	}
}

func New(log *slog.Logger, cfg config.Dashboard, opts ...Option) (*Client, error) {
	baseURL, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse server url: %w", err)
	}

	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("server url %q must be http or https", cfg.URL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Nanosecond
	}

	c := &Client{
		log:     log,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
			// an unauthenticated call is redirected to the login page
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		roster: ttlworker.NewCache[string, []*domain.TeamLeader](cacheTTL),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.webhookURL != "" {
		u, err := url.Parse(c.webhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, &domain.ValidationError{Reason: fmt.Sprintf("webhook url %q must be an absolute http or https url", c.webhookURL)}
		}
	}

	return c, nil
}

// envelope is the part of every response body the client interprets itself.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e *envelope) reason() string {
	if e.Error != "" {
		return e.Error
	}

	return e.Message
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, username, password string) error {
	err := c.doJSON(ctx, http.MethodPost, "/login", loginRequest{
		Username: username,
		Password: password,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to log in as %q: %w", username, err)
	}

	c.log.DebugContext(ctx, "logged in", slog.String("username", username))

	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := sonic.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	return req, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// do sends req and decodes the response. The body-level success flag is
// authoritative for every endpoint: a 2xx response with success=false is a
// rejection, and a missing flag on a 2xx response counts as success.
func (c *Client) do(req *http.Request, out any) error {
	log := c.log.With(
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("request_id", req.Header.Get(requestIDHeader)),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.TransportError{Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warn("failed to close response body", slog.String("err", err.Error()))
		}
	}()

	log.Debug("response received",
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	empty := len(bytes.TrimSpace(data)) == 0

	var env envelope
	var decodeErr error
	if !empty {
		decodeErr = sonic.Unmarshal(data, &env)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		rejection := &domain.ServerRejection{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			rejection.Message = env.reason()
		}

		if rejection.Message == "" && isAuthStatus(resp.StatusCode) {
			rejection.Message = "authentication required"
		}

		return rejection
	}

	if decodeErr != nil {
		return &domain.ServerRejection{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("malformed response: %v", decodeErr),
		}
	}

	if env.Success != nil && !*env.Success {
		return &domain.ServerRejection{StatusCode: resp.StatusCode, Message: env.reason()}
	}

	if out == nil {
		return nil
	}

	if empty {
		return &domain.ServerRejection{StatusCode: resp.StatusCode, Message: "malformed response: empty body"}
	}

	if err := sonic.Unmarshal(data, out); err != nil {
		return &domain.ServerRejection{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("malformed response: %v", err),
		}
	}

	return nil
}

func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusFound || code == http.StatusSeeOther
}
