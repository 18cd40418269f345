package functions

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Client invokes remote serverless functions over HTTP. It is created once
// and reused across calls; all fields except the auth token are read-only
// after construction.
type Client struct {
	baseURL    string
	headers    map[string]string
	region     Region
	httpClient Doer
	logger     zerolog.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates a Client for the given base URL. Function names are
// appended to the base URL as path segments: {baseURL}/{functionName}.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, New(ErrorTypeInvalidArgument, "base URL must not be empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, Wrap(err, ErrorTypeInvalidArgument, "invalid base URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, Newf(ErrorTypeInvalidArgument, "base URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    trimmed,
		headers:    make(map[string]string),
		region:     RegionAny,
		httpClient: http.DefaultClient,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if !c.region.Valid() {
		return nil, Newf(ErrorTypeInvalidArgument, "unsupported region %q", c.region)
	}
	return c, nil
}

// SetAuth replaces the bearer token used by subsequent invocations. Calls
// already in flight keep the header snapshot taken when they were built;
// callers rotating the token while invoking concurrently must serialize the
// rotation externally if they need a strict ordering.
func (c *Client) SetAuth(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) authToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Invoke calls the named function and classifies the outcome. Exactly one
// HTTP request is issued per call; no retries happen inside the client.
func (c *Client) Invoke(ctx context.Context, functionName string, opts *InvokeOptions) (*Response, error) {
	if strings.TrimSpace(functionName) == "" {
		return nil, New(ErrorTypeInvalidArgument, "function name must not be empty")
	}
	if opts == nil {
		opts = &InvokeOptions{}
	}

	req, err := c.buildRequest(ctx, functionName, opts)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With().
		Str("method", req.Method).
		Str("function", functionName).
		Logger()
	logger.Debug().Msg("invoking function")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("invocation transport failed")
		return nil, Wrap(err, ErrorTypeFetch, "request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read response body")
		return nil, Wrap(err, ErrorTypeFetch, "failed to read response body")
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Int("body_length", len(raw)).
		Msg("invocation completed")

	return classify(resp, raw)
}

// buildRequest resolves options against client defaults into a single
// outbound request: merged headers, encoded body, method, and target URL.
func (c *Client) buildRequest(ctx context.Context, functionName string, opts *InvokeOptions) (*http.Request, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodPost
	}
	method = strings.ToUpper(method)
	if !allowedMethods[method] {
		return nil, Newf(ErrorTypeInvalidArgument, "unsupported HTTP method %q", opts.Method)
	}

	region := c.region
	if opts.Region != "" {
		region = opts.Region
	}
	if !region.Valid() {
		return nil, Newf(ErrorTypeInvalidArgument, "unsupported region %q", opts.Region)
	}

	payload, contentType, err := opts.Body.encode()
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	targetURL := c.baseURL + "/" + functionName
	req, err := http.NewRequestWithContext(ctx, method, targetURL, body)
	if err != nil {
		return nil, Wrap(err, ErrorTypeInvalidArgument, "failed to create HTTP request")
	}

	merged := mergeHeaders(c.headers, opts.Headers)
	for key, value := range merged {
		req.Header.Set(key, value)
	}
	if token := c.authToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	if region != RegionAny {
		req.Header.Set("x-region", region.String())
	}

	return req, nil
}

// mergeHeaders overlays per-call headers onto client defaults without
// mutating either input; the overlay wins on key collision.
func mergeHeaders(base, overlay map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range overlay {
		merged[key] = value
	}
	return merged
}
