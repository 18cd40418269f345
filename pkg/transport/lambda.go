package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/rs/zerolog"

	"github.com/brendan.keane/edgefn/pkg/functions"
)

// Invoker is the slice of the Lambda API the transport uses
type Invoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Lambda is an http.RoundTripper that routes lambda://<function-name>
// requests through the AWS Lambda Invoke API and passes every other scheme
// to the next RoundTripper. The HTTP request is translated into an API
// Gateway v2 proxy event and the invoke payload back into an *http.Response,
// so the functions client can target Lambda without special-casing it.
type Lambda struct {
	invoker Invoker
	next    http.RoundTripper
	logger  zerolog.Logger
}

// Option configures a Lambda transport
type Option func(*Lambda)

// WithInvoker replaces the Lambda API client, mainly for tests
func WithInvoker(inv Invoker) Option {
	return func(t *Lambda) {
		if inv != nil {
			t.invoker = inv
		}
	}
}

// WithFallback sets the RoundTripper used for non-lambda schemes
func WithFallback(rt http.RoundTripper) Option {
	return func(t *Lambda) {
		if rt != nil {
			t.next = rt
		}
	}
}

// WithLogger attaches a zerolog logger
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Lambda) {
		t.logger = logger
	}
}

// NewLambda creates a Lambda transport using the default AWS configuration
// chain (environment, shared config, instance metadata).
func NewLambda(ctx context.Context, opts ...Option) (*Lambda, error) {
	t := &Lambda{
		next:   http.DefaultTransport,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	if t.invoker == nil {
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		t.invoker = lambda.NewFromConfig(cfg)
	}
	return t, nil
}

// Client wraps the transport in an *http.Client, ready to hand to
// functions.WithHTTPClient.
func (t *Lambda) Client() *http.Client {
	return &http.Client{Transport: t}
}

// RoundTrip implements http.RoundTripper
func (t *Lambda) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "lambda" {
		return t.next.RoundTrip(req)
	}

	functionName := req.URL.Host
	if functionName == "" {
		return nil, fmt.Errorf("lambda URL missing function name")
	}

	event, err := requestToEvent(req)
	if err != nil {
		return nil, fmt.Errorf("converting request to Lambda event: %w", err)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshaling Lambda event: %w", err)
	}

	logger := t.logger.With().Str("function", functionName).Logger()
	logger.Debug().Int("payload_length", len(payload)).Msg("invoking Lambda function")

	out, err := t.invoker.Invoke(req.Context(), &lambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return nil, fmt.Errorf("invoking Lambda function: %w", err)
	}

	// A function-level failure still produces a payload; surface it through
	// the relay error header so the caller's classifier reports it the same
	// way as a relay-routed failure.
	if out.FunctionError != nil {
		logger.Debug().Str("function_error", *out.FunctionError).Msg("Lambda reported function error")
		resp := &http.Response{
			StatusCode: http.StatusOK,
			Status:     fmt.Sprintf("%d %s", http.StatusOK, http.StatusText(http.StatusOK)),
			Header:     make(http.Header),
			Proto:      "HTTP/1.1",
			ProtoMajor: 1,
			ProtoMinor: 1,
			Body:       io.NopCloser(bytes.NewReader(out.Payload)),
		}
		resp.Header.Set(functions.RelayErrorHeader, *out.FunctionError)
		return resp, nil
	}

	return responseFromPayload(out.Payload)
}

// requestToEvent converts an http.Request into an API Gateway v2 HTTP proxy
// event. Bodies that are not valid UTF-8 are base64 encoded.
func requestToEvent(req *http.Request) (*events.APIGatewayV2HTTPRequest, error) {
	var bodyString string
	var isBase64 bool
	if req.Body != nil {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		req.Body = io.NopCloser(bytes.NewReader(raw))
		if utf8.Valid(raw) {
			bodyString = string(raw)
		} else {
			bodyString = base64.StdEncoding.EncodeToString(raw)
			isBase64 = true
		}
	}

	headers := make(map[string]string, len(req.Header))
	for key, values := range req.Header {
		headers[key] = strings.Join(values, ",")
	}
	queryParams := make(map[string]string)
	for key, values := range req.URL.Query() {
		queryParams[key] = strings.Join(values, ",")
	}

	path := req.URL.Path
	if path == "" {
		path = "/"
	}

	now := time.Now()
	return &events.APIGatewayV2HTTPRequest{
		Version:               "2.0",
		RouteKey:              fmt.Sprintf("%s %s", req.Method, path),
		RawPath:               path,
		RawQueryString:        req.URL.RawQuery,
		Headers:               headers,
		QueryStringParameters: queryParams,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			APIID:      "edgefn-lambda",
			DomainName: "lambda.local",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:    req.Method,
				Path:      path,
				Protocol:  "HTTP/1.1",
				SourceIP:  "127.0.0.1",
				UserAgent: req.Header.Get("User-Agent"),
			},
			RequestID: fmt.Sprintf("edgefn-%d", now.UnixNano()),
			RouteKey:  fmt.Sprintf("%s %s", req.Method, path),
			Stage:     "$default",
			Time:      now.Format("02/Jan/2006:15:04:05 -0700"),
			TimeEpoch: now.UnixMilli(),
		},
		Body:            bodyString,
		IsBase64Encoded: isBase64,
	}, nil
}

// responseFromPayload converts a Lambda proxy response payload into an
// *http.Response
func responseFromPayload(payload []byte) (*http.Response, error) {
	var fnResp events.APIGatewayV2HTTPResponse
	if err := json.Unmarshal(payload, &fnResp); err != nil {
		return nil, fmt.Errorf("parsing Lambda response: %w", err)
	}

	var body []byte
	if fnResp.Body != "" {
		if fnResp.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(fnResp.Body)
			if err != nil {
				return nil, fmt.Errorf("decoding Lambda response body: %w", err)
			}
			body = decoded
		} else {
			body = []byte(fnResp.Body)
		}
	}

	resp := &http.Response{
		StatusCode:    fnResp.StatusCode,
		Status:        fmt.Sprintf("%d %s", fnResp.StatusCode, http.StatusText(fnResp.StatusCode)),
		Header:        make(http.Header),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}
	for key, value := range fnResp.Headers {
		resp.Header.Set(key, value)
	}
	return resp, nil
}
