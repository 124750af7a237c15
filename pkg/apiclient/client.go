// Package apiclient is the transport half of the request translator: it turns a
// Request descriptor into one authenticated HTTP call and hands back the raw
// status and body. Envelope unwrapping and error classification are left to
// the platform clients built on top of it, since each upstream shapes its
// failures differently.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/RobinCoderZhao/apibridge/pkg/apierr"
)

const (
	// DefaultTimeout bounds every outbound call.
	DefaultTimeout = 30 * time.Second

	maxBodyBytes = 32 << 20
)

// Config holds transport settings shared by the platform clients.
type Config struct {
	BaseURL    string        `yaml:"base_url" json:"base_url"`
	PathPrefix string        `yaml:"path_prefix" json:"path_prefix"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent"`

	// RatePerSecond spaces outbound requests when positive. Callers wait for
	// a token; nothing is dropped or retried.
	RatePerSecond float64 `yaml:"rate_per_second" json:"rate_per_second"`
	Burst         int     `yaml:"burst" json:"burst"`
}

// Request describes one outbound call.
type Request struct {
	Method string
	Path   string
	Query  Query
	Body   any
}

// Response is the raw upstream reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusText returns the canonical text for the status code.
func (r *Response) StatusText() string {
	return http.StatusText(r.StatusCode)
}

// Client performs authenticated JSON requests against one base URL.
type Client struct {
	base      string
	auth      Authenticator
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. Its Timeout is kept if
// set, otherwise the configured timeout is applied.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client. auth may be nil for unauthenticated upstreams.
func New(cfg Config, auth Authenticator, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	c := &Client{
		base:      strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.Trim(cfg.PathPrefix, "/"),
		auth:      auth,
		userAgent: cfg.UserAgent,
		logger:    slog.Default(),
	}
	c.base = strings.TrimRight(c.base, "/")
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	} else if c.http.Timeout <= 0 {
		c.http.Timeout = cfg.Timeout
	}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return c
}

// URL returns the absolute URL for path without the query string.
func (c *Client) URL(path string) string {
	return c.base + "/" + strings.TrimLeft(path, "/")
}

// Do sends req and returns the upstream response. A non-2xx status is not an
// error at this layer; transport failures are returned classified.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apierr.Classify(err)
		}
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &apierr.Error{Kind: apierr.KindUnknown, Message: fmt.Sprintf("marshal request: %v", err), Err: err}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.URL(req.Path), body)
	if err != nil {
		return nil, &apierr.Error{Kind: apierr.KindUnknown, Message: fmt.Sprintf("create request: %v", err), Err: err}
	}
	if len(req.Query) > 0 {
		httpReq.URL.RawQuery = req.Query.Encode()
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if c.auth != nil {
		c.auth.Authenticate(httpReq)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		classified := apierr.Classify(err)
		c.logger.Debug("upstream request failed",
			"method", req.Method, "path", req.Path, "kind", classified.Kind, "elapsed", time.Since(start))
		return nil, classified
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return nil, apierr.Classify(err)
	}

	c.logger.Debug("upstream request",
		"method", req.Method, "path", req.Path, "status", httpResp.StatusCode, "elapsed", time.Since(start))

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}, nil
}
