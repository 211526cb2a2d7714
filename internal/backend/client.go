// Package backend is the HTTP client for the internship matching service.
// Every collaborator operation the wizard depends on is implemented here.
package backend

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
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "InternshipWizard/1.0"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 10 << 20

// Options configures the client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// UserID scopes profile operations; empty means the service default user.
	UserID string
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client talks to one matching-service deployment.
type Client struct {
	base *url.URL
	http *http.Client
	opts Options
	log  *slog.Logger
}

// New returns a client for the service rooted at baseURL.
func New(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{Op: "configure", URL: baseURL, Message: "invalid base URL", Cause: err}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	return &Client{base: parsed, http: httpClient, opts: *opts, log: logger}, nil
}

// request describes one round trip.
type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do executes r and returns the raw body of a 2xx response. Non-2xx statuses
// become *Error (with the service's error text when present) and an "error"
// field in a 2xx JSON object becomes *ServiceError.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	target := c.endpoint(r.path, r.query)

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return nil, &Error{Op: r.op, URL: target, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	for key, value := range c.opts.Headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed", slog.String("op", r.op), slog.Any("error", err))
		return nil, &Error{Op: r.op, URL: target, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{Op: r.op, URL: target, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}

	c.log.Debug("backend request",
		slog.String("op", r.op),
		slog.String("method", r.method),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	serviceMsg := errorField(body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serviceMsg
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{Op: r.op, URL: target, StatusCode: resp.StatusCode, Message: msg}
	}
	if serviceMsg != "" {
		return nil, &ServiceError{Op: r.op, Message: serviceMsg}
	}
	return body, nil
}

// errorField extracts a non-empty top-level "error" string from a JSON object.
func errorField(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ""
	}
	var envelope struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return ""
	}
	switch v := envelope.Error.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "request failed"
		}
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: path, query: query})
	if err != nil {
		return err
	}
	return c.decode(op, path, body, out)
}

func (c *Client) postJSON(ctx context.Context, op, path string, query url.Values, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return &Error{Op: op, URL: c.endpoint(path, nil), Message: "failed to encode request", Cause: err}
	}
	body, err := c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        path,
		query:       query,
		body:        bytes.NewReader(payload),
		contentType: "application/json",
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return c.decode(op, path, body, out)
}

func (c *Client) decode(op, path string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Op: op, URL: c.endpoint(path, nil), Message: "malformed response payload", Cause: err}
	}
	return nil
}

func (c *Client) userQuery() url.Values {
	if c.opts.UserID == "" {
		return nil
	}
	return url.Values{"user_id": {c.opts.UserID}}
}
