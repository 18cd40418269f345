package transport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brendan.keane/edgefn/pkg/functions"
)

type fakeInvoker struct {
	input  *lambda.InvokeInput
	output *lambda.InvokeOutput
	err    error
}

func (f *fakeInvoker) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func proxyResponse(t *testing.T, resp events.APIGatewayV2HTTPResponse) *lambda.InvokeOutput {
	t.Helper()
	payload, err := json.Marshal(resp)
	require.NoError(t, err)
	return &lambda.InvokeOutput{Payload: payload}
}

func TestRoundTrip_NonLambdaSchemeUsesFallback(t *testing.T) {
	var passedThrough bool
	lt, err := NewLambda(context.Background(),
		WithInvoker(&fakeInvoker{}),
		WithFallback(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			passedThrough = true
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     make(http.Header),
				Body:       io.NopCloser(strings.NewReader("")),
			}, nil
		})))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "https://example.com/ping", nil)
	require.NoError(t, err)

	_, err = lt.RoundTrip(req)
	require.NoError(t, err)
	assert.True(t, passedThrough)
}

func TestRoundTrip_TranslatesRequestToEvent(t *testing.T) {
	invoker := &fakeInvoker{
		output: proxyResponse(t, events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusOK,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"ok":true}`,
		}),
	}
	lt, err := NewLambda(context.Background(), WithInvoker(invoker))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "lambda://dispatcher/hello-world?x=1", strings.NewReader(`{"key":"value"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := lt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, invoker.input)
	assert.Equal(t, "dispatcher", aws.ToString(invoker.input.FunctionName))

	var event events.APIGatewayV2HTTPRequest
	require.NoError(t, json.Unmarshal(invoker.input.Payload, &event))
	assert.Equal(t, "/hello-world", event.RawPath)
	assert.Equal(t, "x=1", event.RawQueryString)
	assert.Equal(t, `{"key":"value"}`, event.Body)
	assert.False(t, event.IsBase64Encoded)
	assert.Equal(t, "application/json", event.Headers["Content-Type"])
	assert.Equal(t, http.MethodPost, event.RequestContext.HTTP.Method)
}

func TestRoundTrip_Base64EncodesBinaryBody(t *testing.T) {
	invoker := &fakeInvoker{
		output: proxyResponse(t, events.APIGatewayV2HTTPResponse{StatusCode: http.StatusOK}),
	}
	lt, err := NewLambda(context.Background(), WithInvoker(invoker))
	require.NoError(t, err)

	binary := []byte{0xFF, 0xFE, 0x00, 0x01}
	req, err := http.NewRequest(http.MethodPost, "lambda://dispatcher/upload", strings.NewReader(string(binary)))
	require.NoError(t, err)

	_, err = lt.RoundTrip(req)
	require.NoError(t, err)

	var event events.APIGatewayV2HTTPRequest
	require.NoError(t, json.Unmarshal(invoker.input.Payload, &event))
	assert.True(t, event.IsBase64Encoded)
	assert.Equal(t, base64.StdEncoding.EncodeToString(binary), event.Body)
}

func TestRoundTrip_DecodesBase64ResponseBody(t *testing.T) {
	binary := []byte{0x01, 0x02, 0x03}
	invoker := &fakeInvoker{
		output: proxyResponse(t, events.APIGatewayV2HTTPResponse{
			StatusCode:      http.StatusOK,
			Headers:         map[string]string{"Content-Type": "application/octet-stream"},
			Body:            base64.StdEncoding.EncodeToString(binary),
			IsBase64Encoded: true,
		}),
	}
	lt, err := NewLambda(context.Background(), WithInvoker(invoker))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "lambda://dispatcher/blob", nil)
	require.NoError(t, err)

	resp, err := lt.RoundTrip(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, binary, body)
}

func TestRoundTrip_FunctionErrorBecomesRelayError(t *testing.T) {
	invoker := &fakeInvoker{
		output: &lambda.InvokeOutput{
			FunctionError: aws.String("Unhandled"),
			Payload:       []byte(`{"errorMessage":"index out of range"}`),
		},
	}
	lt, err := NewLambda(context.Background(), WithInvoker(invoker))
	require.NoError(t, err)

	client, err := functions.NewClient("lambda://dispatcher", functions.WithHTTPClient(lt.Client()))
	require.NoError(t, err)

	_, err = client.Invoke(context.Background(), "hello-world", nil)
	require.Error(t, err)
	assert.True(t, functions.IsType(err, functions.ErrorTypeRelay))
	assert.Contains(t, err.Error(), "Unhandled")
}

func TestRoundTrip_MissingFunctionName(t *testing.T) {
	lt, err := NewLambda(context.Background(), WithInvoker(&fakeInvoker{}))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "lambda:///no-host", nil)
	require.NoError(t, err)

	_, err = lt.RoundTrip(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing function name")
}
