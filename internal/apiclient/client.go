package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"sportify-admin/internal/model"
	"sportify-admin/pkg/apierror"
)

const (
	DefaultTimeout = 30 * time.Second

	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 16 << 20
)

// SessionManager is the slice of the session store the client needs.
// *session.Store satisfies it.
type SessionManager interface {
	AccessToken() string
	RefreshToken() string
	Refresh(ctx context.Context, accessToken string, refreshToken string) error
	Logout(ctx context.Context) error
}

// Redirector sends the user back to the login entry point after a forced
// logout.
type Redirector interface {
	RedirectToLogin()
}

type RedirectFunc func()

func (f RedirectFunc) RedirectToLogin() { f() }

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Session    SessionManager
	Redirector Redirector
	Metrics    *Metrics
	Logger     *slog.Logger

	// Transport is shared by the API client and the bare refresh client.
	Transport http.RoundTripper
}

// Client is the single point of egress for backend calls.
type Client struct {
	baseURL    string
	http       *http.Client
	refresher  *http.Client
	session    SessionManager
	redirector Redirector
	refreshes  singleflight.Group
	metrics    *Metrics
	logger     *slog.Logger
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("api base URL is required")
	}
	if cfg.Session == nil {
		return nil, fmt.Errorf("session manager is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	redirector := cfg.Redirector
	if redirector == nil {
		redirector = RedirectFunc(func() {})
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    base,
		http:       &http.Client{Timeout: timeout, Transport: transport},
		refresher:  &http.Client{Timeout: timeout, Transport: transport},
		session:    cfg.Session,
		redirector: redirector,
		metrics:    cfg.Metrics,
		logger:     logger.With("component", "apiclient"),
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends req and returns the raw, validated envelope body.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	if req.requestID == "" {
		req.requestID = uuid.NewString()
	}

	// The token is read once, here. A rotation after this point does not
	// touch the request already built from it.
	token := c.session.AccessToken()

	status, body, err := c.send(ctx, req, token)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized && req.canRefresh() {
		return c.recoverUnauthorized(ctx, req, token)
	}

	if status >= http.StatusBadRequest {
		return nil, normalizeError(status, body)
	}

	if status == http.StatusNoContent {
		return []byte(`{"success":true}`), nil
	}

	if err := checkEnvelope(status, body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) send(ctx context.Context, req Request, token string) (int, []byte, error) {
	httpReq, err := c.build(ctx, req, token)
	if err != nil {
		return 0, nil, err
	}

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.metrics.observeRequest(req.Method, 0)
		c.logger.Warn("api request failed", "request_id", req.requestID, "method", req.Method, "path", req.Path, "error", err)
		return 0, nil, apierror.Unknown(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.metrics.observeRequest(req.Method, 0)
		return 0, nil, apierror.Unknown(err)
	}

	c.metrics.observeRequest(req.Method, resp.StatusCode)
	c.logger.Debug("api request",
		"request_id", req.requestID,
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"attempt", req.attempt,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return resp.StatusCode, body, nil
}

func (c *Client) build(ctx context.Context, req Request, token string) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, apierror.New(apierror.CodeBadRequest, "request body cannot be encoded", err.Error(), http.StatusBadRequest)
		}
		body = bytes.NewReader(payload)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, apierror.Unknown(err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestIDHeader, req.requestID)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return httpReq, nil
}

// Send runs req and decodes the envelope into T.
func Send[T any](ctx context.Context, c *Client, req Request) (*model.Envelope[T], error) {
	body, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var envelope model.Envelope[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apierror.New(apierror.CodeInvalidResponse, "response data has an unexpected shape", err.Error(), http.StatusOK)
	}
	return &envelope, nil
}

func Get[T any](ctx context.Context, c *Client, path string, query url.Values) (*model.Envelope[T], error) {
	return Send[T](ctx, c, NewRequest(http.MethodGet, path).WithQuery(query))
}

func Post[T any](ctx context.Context, c *Client, path string, body any) (*model.Envelope[T], error) {
	return Send[T](ctx, c, NewRequest(http.MethodPost, path).WithBody(body))
}

func Put[T any](ctx context.Context, c *Client, path string, body any) (*model.Envelope[T], error) {
	return Send[T](ctx, c, NewRequest(http.MethodPut, path).WithBody(body))
}

func Patch[T any](ctx context.Context, c *Client, path string, body any) (*model.Envelope[T], error) {
	return Send[T](ctx, c, NewRequest(http.MethodPatch, path).WithBody(body))
}

func Delete[T any](ctx context.Context, c *Client, path string) (*model.Envelope[T], error) {
	return Send[T](ctx, c, NewRequest(http.MethodDelete, path))
}
