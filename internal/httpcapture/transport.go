// Package httpcapture provides an HTTP transport wrapper that captures raw
// request and response bodies and logs them for --verbose runs.
package httpcapture

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
)

// maxLoggedBody caps how much of a body is written to the log.
const maxLoggedBody = 4096

// Transport wraps an http.RoundTripper to capture request and response bodies.
// One Transport serves one command run; it keeps the last exchange.
type Transport struct {
	// Base is the underlying transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Logger receives one debug record per request and response. If nil, slog.Default is used.
	Logger *slog.Logger

	// RequestBody contains the captured request body after RoundTrip completes.
	RequestBody []byte

	// ResponseBody contains the captured response body after RoundTrip completes.
	ResponseBody []byte
}

// New creates a capturing transport over http.DefaultTransport.
func New(logger *slog.Logger) *Transport {
	return &Transport{
		Base:   http.DefaultTransport,
		Logger: logger,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	logger := t.logger()

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			logger.Warn("httpcapture: failed to read request body", "error", err)
			return nil, err
		}
		t.RequestBody = body
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	logger.Debug("httpcapture: request",
		"method", req.Method,
		"url", req.URL.String(),
		"headers", redact(req.Header),
		"body", truncate(t.RequestBody),
	)

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		logger.Debug("httpcapture: request failed", "error", err)
		return nil, err
	}

	if resp.Body != nil {
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			logger.Warn("httpcapture: failed to read response body", "error", err)
			return nil, err
		}
		t.ResponseBody = body
		resp.Body = io.NopCloser(bytes.NewReader(body))
	}

	logger.Debug("httpcapture: response",
		"status", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"),
		"body", truncate(t.ResponseBody),
	)

	return resp, nil
}

// Client returns an *http.Client configured to use this capturing transport.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

func (t *Transport) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

// redact copies h with the bearer token masked.
func redact(h http.Header) http.Header {
	out := h.Clone()
	if out.Get("Authorization") != "" {
		out.Set("Authorization", "Bearer [REDACTED]")
	}
	return out
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "...(truncated)"
	}
	return string(body)
}
