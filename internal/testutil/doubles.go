package testutil

import (
	"net/http"
)

// RecordingDoer is a transport stub that records whether it was invoked.
// Tests use it to verify fail-fast paths never reach the network.
type RecordingDoer struct {
	Called   bool
	Requests []*http.Request
	Resp     *http.Response
	Err      error
}

// Do implements the client's transport interface
func (d *RecordingDoer) Do(req *http.Request) (*http.Response, error) {
	d.Called = true
	d.Requests = append(d.Requests, req)
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Resp, nil
}
