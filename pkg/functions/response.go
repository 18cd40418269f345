package functions

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"
)

// RelayErrorHeader is the response header the relay layer uses to signal that
// the invoked function itself failed, independent of the HTTP status code.
const RelayErrorHeader = "x-relay-error"

// DataKind identifies the shape of a classified response payload
type DataKind int

const (
	// DataBytes is the raw payload, used for binary or undeclared content types
	DataBytes DataKind = iota
	// DataText is a text/* payload decoded as a string
	DataText
	// DataJSON is an application/json payload decoded into a Go value
	DataJSON
)

// ResponseData is the tagged payload variant of a successful invocation.
// The raw bytes are always retained, so a declared-JSON payload that fails to
// parse degrades to DataBytes without losing data.
type ResponseData struct {
	kind  DataKind
	json  interface{}
	text  string
	bytes []byte
}

// Kind returns the payload variant
func (d ResponseData) Kind() DataKind {
	return d.kind
}

// JSON returns the decoded JSON value when Kind is DataJSON
func (d ResponseData) JSON() (interface{}, bool) {
	return d.json, d.kind == DataJSON
}

// Text returns the payload string when Kind is DataText
func (d ResponseData) Text() (string, bool) {
	return d.text, d.kind == DataText
}

// Bytes returns the raw payload regardless of variant
func (d ResponseData) Bytes() []byte {
	return d.bytes
}

// Response is the classified outcome of a successful invocation
type Response struct {
	StatusCode int
	Header     http.Header
	Data       ResponseData
}

// classify maps a completed HTTP exchange to a Response or a typed error.
// Checks are ordered: relay error header first (it may accompany a 2xx status
// when the relay wraps an inner function failure), then status code, then
// content-type driven payload decoding.
func classify(resp *http.Response, raw []byte) (*Response, error) {
	if msg := resp.Header.Get(RelayErrorHeader); msg != "" {
		return nil, New(ErrorTypeRelay, msg)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(resp.StatusCode, errorMessageFromBody(raw))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Data:       decodeData(resp.Header.Get("Content-Type"), raw),
	}, nil
}

// errorMessageFromBody extracts a best-effort message from a non-2xx body:
// a JSON "error" or "message" field if present, else the raw body text,
// else empty (the caller falls back to the status text).
func errorMessageFromBody(raw []byte) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err == nil {
		if msg, ok := fields["error"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := fields["message"].(string); ok && msg != "" {
			return msg
		}
	}
	return trimmed
}

// decodeData shapes the success payload from the declared content type
func decodeData(contentType string, raw []byte) ResponseData {
	mediaType := contentType
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = mt
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	switch {
	case mediaType == "application/json":
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			// Unparsable declared-JSON degrades to raw bytes rather than
			// failing the call; the payload stays accessible via Bytes().
			return ResponseData{kind: DataBytes, bytes: raw}
		}
		return ResponseData{kind: DataJSON, json: v, bytes: raw}

	case strings.HasPrefix(mediaType, "text/"):
		return ResponseData{kind: DataText, text: string(raw), bytes: raw}

	default:
		return ResponseData{kind: DataBytes, bytes: raw}
	}
}
