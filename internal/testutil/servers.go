package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
)

// NewEchoServer creates a test server that echoes the request body back with
// the request's own Content-Type, which lets tests round-trip any payload
// encoding through the classifier.
func NewEchoServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if ct := r.Header.Get("Content-Type"); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}))
}

// NewRelayErrorServer creates a test server that reports a relay error with
// a 200 status, mimicking the relay wrapping an inner function failure.
func NewRelayErrorServer(message string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-relay-error", message)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
}

// NewStatusServer creates a test server that always responds with the given
// status, content type, and body.
func NewStatusServer(status int, contentType, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

// NewRecordingServer creates a test server that captures each request's
// method, headers, and body for later assertions, responding with a fixed
// JSON payload.
func NewRecordingServer(record *RequestRecord) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		record.Method = r.Method
		record.Path = r.URL.Path
		record.Header = r.Header.Clone()
		record.Body = body
		record.Count++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
}

// RequestRecord holds the last request seen by a recording server
type RequestRecord struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
	Count  int
}
