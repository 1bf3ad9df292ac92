package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/astro-admin/internal/config"
	"github.com/spec-kit/astro-admin/internal/observability"
)

const (
	// AdminKeyHeader carries the static key the admin API expects from the dashboard.
	AdminKeyHeader = "x-admin-key"

	defaultLoginPath = "/login"
	maxErrorBody     = 64 << 10
)

// Session is the per-request credential holder the client consults. It is injected with
// WithSession; a client without one sends anonymous requests.
type Session interface {
	Token() (string, bool)
	Clear()
	CurrentPath() string
	Navigate(path string)
}

// Client is the single configured path to the admin REST API.
type Client struct {
	baseURL   string
	adminKey  string
	loginPath string
	http      *http.Client
	logger    *zap.Logger
	metrics   *observability.Metrics
	session   Session
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for outbound call logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records every upstream call.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLoginPath sets the view the client navigates to after a 401.
func WithLoginPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.loginPath = path
		}
	}
}

// New builds a client for the configured admin API.
func New(cfg config.BackendConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:   config.NormalizeBaseURL(cfg.BaseURL),
		adminKey:  cfg.AdminKey,
		loginPath: defaultLoginPath,
		http:      &http.Client{Timeout: cfg.Timeout()},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the admin API root every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithSession returns a copy of the client bound to s.
func (c *Client) WithSession(s Session) *Client {
	cp := *c
	cp.session = s
	return &cp
}

// Login exchanges credentials for an access token. It bypasses the session interceptors:
// no bearer header is sent and a 401 does not clear anything. An empty token with a nil
// error means the server answered 2xx without issuing one.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordUpstream("/login", http.MethodPost, 0, time.Since(start))
		c.logger.Warn("login request failed", zap.Error(err))
		return "", &APIError{Method: http.MethodPost, Path: "/login", Err: err, fallback: loginMessage}
	}
	defer resp.Body.Close()
	c.metrics.RecordUpstream("/login", http.MethodPost, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return "", &APIError{Status: resp.StatusCode, Method: http.MethodPost, Path: "/login", Err: err, fallback: loginMessage}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{
			Status:   resp.StatusCode,
			Detail:   parseDetail(body),
			Method:   http.MethodPost,
			Path:     "/login",
			fallback: loginMessage,
		}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	return payload.AccessToken, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.interceptRequest(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.RecordUpstream(path, method, 0, elapsed)
		c.logger.Warn("admin api unreachable", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &APIError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.metrics.RecordUpstream(path, method, resp.StatusCode, elapsed)
	c.logger.Debug("admin api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", elapsed))

	c.interceptResponse(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Status: resp.StatusCode, Detail: parseDetail(raw), Method: method, Path: path}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Method: method, Path: path, Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// interceptRequest attaches the static admin key and, when the bound session holds a
// token, exactly one bearer Authorization header.
func (c *Client) interceptRequest(req *http.Request) {
	if c.adminKey != "" {
		req.Header.Set(AdminKeyHeader, c.adminKey)
	}
	if c.session == nil {
		return
	}
	if token, ok := c.session.Token(); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// interceptResponse evicts the session on 401 and sends the admin to the login view
// unless they are already on it.
func (c *Client) interceptResponse(resp *http.Response) {
	if resp.StatusCode != http.StatusUnauthorized || c.session == nil {
		return
	}
	c.session.Clear()
	c.logger.Info("session cleared after unauthorized response", zap.String("path", resp.Request.URL.Path))
	if c.session.CurrentPath() != c.loginPath {
		c.session.Navigate(c.loginPath)
	}
}
