// Package lcrm implements the HTTP client for the LCRM REST API.
//
// Every call goes through Client.Do, which builds the URL from the configured
// base URL, attaches the bearer token, enforces a per-request timeout and turns
// the response into a Result. HTTP error statuses are not Go errors; only
// configuration, input, transport and timeout failures are.
package lcrm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ai8future/lcrm/internal/apperror"
	"github.com/ai8future/lcrm/internal/validation"
)

const (
	// DefaultBaseURL is the production LCRM endpoint
	DefaultBaseURL = "https://crm.langcore.net"

	// DefaultTimeout applies to requests that do not set their own
	DefaultTimeout = 20 * time.Second

	// RequestIDHeader carries a per-request correlation ID
	RequestIDHeader = "X-Request-Id"
)

// Request describes one API call.
type Request struct {
	Method  string
	Path    string // must start with "/"
	Query   Query
	Headers map[string]string
	Body    any           // nil means no body; strings and []byte are sent verbatim
	Timeout time.Duration // zero means the client's default
}

// Client sends authenticated requests to one LCRM instance.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout sets the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient validates the API key and base URL and returns a ready client.
// An empty baseURL selects DefaultBaseURL; trailing slashes are stripped.
func NewClient(apiKey, baseURL string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing environment variable LCRM_API_KEY", apperror.ErrConfig)
	}

	baseURL = NormalizeBaseURL(baseURL)
	if err := validation.ValidateBaseURL(baseURL); err != nil {
		return nil, fmt.Errorf("%w: LCRM_BASE_URL: %w", apperror.ErrConfig, err)
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NormalizeBaseURL trims whitespace and trailing slashes, defaulting to DefaultBaseURL.
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return DefaultBaseURL
	}
	return baseURL
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins the base URL, path and query. Query pairs keep their order and
// follow any query already present in path.
func (c *Client) URL(path string, query Query) (string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("%w: path must start with /, e.g. /api/customers (got %q)", apperror.ErrFormat, path)
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("%w: invalid path %q: %v", apperror.ErrFormat, path, err)
	}
	if len(query) > 0 {
		if u.RawQuery != "" {
			u.RawQuery += "&" + query.Encode()
		} else {
			u.RawQuery = query.Encode()
		}
	}
	return u.String(), nil
}

// Do sends req and normalizes the response. It never retries.
func (c *Client) Do(ctx context.Context, req Request) (*Result, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	target, err := c.URL(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", apperror.ErrFormat, err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	requestID, err := validation.ValidateOrGenerateRequestID(httpReq.Header.Get(RequestIDHeader))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", apperror.ErrFormat, RequestIDHeader, err)
	}
	httpReq.Header.Set(RequestIDHeader, requestID)

	logger := c.logger.With("request_id", requestID)
	logger.Debug("sending LCRM request", "method", method, "url", target, "timeout", timeout)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		err = transportError(ctx, method, target, timeout, err)
		logger.Debug("LCRM request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := readPayload(resp)
	if err != nil {
		if !errors.Is(err, apperror.ErrFormat) {
			err = transportError(ctx, method, target, timeout, err)
		}
		return nil, err
	}

	logger.Debug("LCRM response received",
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	return &Result{
		OK:         isOK(resp.StatusCode),
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		Method:     method,
		URL:        target,
		Data:       data,
	}, nil
}

// transportError classifies a failed round trip as a timeout when the
// request's own deadline fired and as a network error otherwise.
func transportError(ctx context.Context, method, target string, timeout time.Duration, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s %s aborted after %s", apperror.ErrTimeout, method, target, timeout)
	}
	return fmt.Errorf("%w: %s %s: %v", apperror.ErrNetwork, method, target, err)
}

// encodeBody returns the wire form of body, or nil when there is none.
func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(b), nil
	case []byte:
		return b, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, fmt.Errorf("%w: encode request body: %v", apperror.ErrFormat, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// readPayload decodes JSON bodies (keeping numbers exact) and returns anything
// else as text. An empty JSON body decodes to nil.
func readPayload(resp *http.Response) (any, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return string(raw), nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON response (HTTP %d): %v", apperror.ErrFormat, resp.StatusCode, err)
	}
	return data, nil
}
