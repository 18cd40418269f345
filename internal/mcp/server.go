package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/brendan.keane/edgefn/pkg/functions"
)

// Server exposes function invocation as an MCP tool over a JSON-RPC stdio
// loop
type Server struct {
	logger zerolog.Logger
	client *functions.Client
	in     io.Reader
	out    io.Writer
}

// Request represents an incoming JSON-RPC message
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// Response represents an outgoing JSON-RPC message
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents a JSON-RPC error object
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewServer creates an MCP server wrapping the given functions client
func NewServer(logger zerolog.Logger, client *functions.Client) *Server {
	return &Server{
		logger: logger.With().Str("component", "mcp_server").Logger(),
		client: client,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// Start begins the message loop and blocks until stdin closes
func (s *Server) Start() error {
	s.logger.Debug().Msg("MCP server started, reading from stdin")

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := s.handleMessage(line); err != nil {
			s.logger.Error().Err(err).Msg("error handling MCP message")
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read MCP messages from stdin: %w", err)
	}

	s.logger.Debug().Msg("MCP server stopped")
	return nil
}

func (s *Server) handleMessage(line string) error {
	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		s.logger.Warn().Err(err).Msg("failed to parse MCP message")
		return s.sendError(nil, -32700, "Parse error")
	}

	s.logger.Debug().
		Interface("id", req.ID).
		Str("method", req.Method).
		Msg("processing MCP request")

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req.ID)
	case "tools/list":
		return s.handleToolsList(req.ID)
	case "tools/call":
		return s.handleToolsCall(req.ID, req.Params)
	case "notifications/cancelled":
		return nil
	default:
		return s.sendError(req.ID, -32601, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func (s *Server) handleInitialize(id interface{}) error {
	return s.sendResponse(Response{
		JSONRPC: "2.0",
		ID:      id,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"serverInfo": map[string]interface{}{
				"name":    "edgefn",
				"version": "1.0.0",
			},
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
		},
	})
}

func (s *Server) handleToolsList(id interface{}) error {
	tools := []map[string]interface{}{
		{
			"name":        "invoke_function",
			"description": "Invoke a remote serverless function by name. Returns the classified response body.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Function name (required)",
					},
					"method": map[string]interface{}{
						"type":        "string",
						"description": "HTTP method (POST, GET, PUT, PATCH, DELETE)",
						"default":     "POST",
					},
					"body": map[string]interface{}{
						"type":        "object",
						"description": "JSON object sent as the request body",
					},
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Plain text request body (ignored when body is set)",
					},
					"region": map[string]interface{}{
						"type":        "string",
						"description": "Execution region (e.g. us-east-1); omit for any",
					},
				},
				"required": []string{"name"},
			},
		},
	}

	return s.sendResponse(Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  map[string]interface{}{"tools": tools},
	})
}

func (s *Server) handleToolsCall(id interface{}, params interface{}) error {
	paramsMap, ok := params.(map[string]interface{})
	if !ok {
		return s.sendError(id, -32602, "Invalid params")
	}
	name, ok := paramsMap["name"].(string)
	if !ok {
		return s.sendError(id, -32602, "Missing tool name")
	}
	arguments, ok := paramsMap["arguments"].(map[string]interface{})
	if !ok {
		arguments = make(map[string]interface{})
	}

	if name != "invoke_function" {
		return s.sendError(id, -32601, fmt.Sprintf("Unknown tool: %s", name))
	}
	return s.executeInvoke(id, arguments)
}

func (s *Server) executeInvoke(id interface{}, args map[string]interface{}) error {
	functionName, _ := args["name"].(string)
	if functionName == "" {
		return s.sendError(id, -32602, "Missing function name")
	}

	opts := &functions.InvokeOptions{}
	if method, ok := args["method"].(string); ok {
		opts.Method = method
	}
	if fields, ok := args["body"].(map[string]interface{}); ok {
		opts.Body = functions.JSONBody(fields)
	} else if text, ok := args["text"].(string); ok && text != "" {
		opts.Body = functions.TextBody(text)
	}
	if region, ok := args["region"].(string); ok && region != "" {
		parsed, err := functions.ParseRegion(region)
		if err != nil {
			return s.sendError(id, -32602, err.Error())
		}
		opts.Region = parsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := s.client.Invoke(ctx, functionName, opts)
	if err != nil {
		s.logger.Debug().Err(err).Str("function", functionName).Msg("tool invocation failed")
		return s.sendResponse(Response{
			JSONRPC: "2.0",
			ID:      id,
			Result: map[string]interface{}{
				"content": []map[string]interface{}{
					{"type": "text", "text": err.Error()},
				},
				"isError": true,
			},
		})
	}

	return s.sendResponse(Response{
		JSONRPC: "2.0",
		ID:      id,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": renderData(resp.Data)},
			},
		},
	})
}

// renderData flattens a classified payload into tool output text
func renderData(data functions.ResponseData) string {
	switch data.Kind() {
	case functions.DataJSON:
		value, _ := data.JSON()
		pretty, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return string(data.Bytes())
		}
		return string(pretty)
	case functions.DataText:
		text, _ := data.Text()
		return text
	default:
		return fmt.Sprintf("<%d bytes of binary data>", len(data.Bytes()))
	}
}

func (s *Server) sendResponse(resp Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal MCP response: %w", err)
	}
	_, err = fmt.Fprintln(s.out, string(payload))
	return err
}

func (s *Server) sendError(id interface{}, code int, message string) error {
	return s.sendResponse(Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	})
}
