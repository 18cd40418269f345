package functions

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Doer is the minimal HTTP execution surface the client depends on.
// It is satisfied by *http.Client and enables swapping in alternative
// transports (such as the Lambda transport) or test doubles.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client at construction time
type Option func(*Client)

// WithDefaultHeaders sets headers applied to every invocation. Per-call
// headers take precedence on key collision.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for key, value := range headers {
			c.headers[key] = value
		}
	}
}

// WithRegion sets the default execution region for invocations that do not
// specify one.
func WithRegion(region Region) Option {
	return func(c *Client) {
		c.region = region
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		if doer != nil {
			c.httpClient = doer
		}
	}
}

// WithLogger attaches a zerolog logger; the default is a no-op logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithAuthToken sets the initial bearer token, equivalent to calling SetAuth
// right after construction.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// InvokeOptions is the per-call override bundle layered over client defaults
type InvokeOptions struct {
	// Method is the HTTP method; empty defaults to POST
	Method string

	// Headers are merged over the client default headers and win on collision
	Headers map[string]string

	// Body is the request payload variant; nil sends no body
	Body *Body

	// Region overrides the client default region for this call only
	Region Region
}

// allowedMethods mirrors the closed method set accepted for invocations
var allowedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodGet:    true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}
