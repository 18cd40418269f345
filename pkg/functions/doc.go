// Package functions is a client for invoking remote serverless functions
// over HTTP. A Client is constructed once with a base URL, default headers,
// and an optional default region, then reused across Invoke calls. Each call
// issues exactly one request and classifies the outcome into a Response or a
// typed *Error (fetch, relay, http, serialization, invalid_argument).
package functions
