// Package mcp serves the hotel tools over line-delimited JSON-RPC 2.0 on a
// byte stream, normally stdin and stdout.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/tools"
)

// ServerName is reported in the initialize handshake.
const ServerName = "eywa-mcp"

const (
	defaultProtocolVersion = "2024-11-05"
	maxMessageSize         = 4 << 20
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// Caller runs a tool by name.
type Caller interface {
	Call(ctx context.Context, name string, args map[string]any) tools.Result
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type callResult struct {
	Content []content `json:"content"`
	IsError bool      `json:"isError"`
}

// Server answers MCP requests one line at a time.
type Server struct {
	caller  Caller
	version string
	logger  *zap.Logger
}

// NewServer creates a Server.
func NewServer(caller Caller, version string, logger *zap.Logger) *Server {
	return &Server{
		caller:  caller,
		version: version,
		logger:  logger,
	}
}

// Serve reads requests from r and writes responses to w until r is
// exhausted or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
	enc := json.NewEncoder(w)

	s.logger.Info("mcp server ready", zap.String("server", ServerName), zap.String("version", s.version))

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		resp := s.handle(ctx, line)
		if resp == nil {
			continue
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}

// handle returns nil for notifications.
func (s *Server) handle(ctx context.Context, line []byte) *response {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		s.logger.Warn("malformed message", zap.Error(err))
		return errorResponse(nil, codeParseError, "Parse error")
	}

	notification := len(req.ID) == 0
	if req.Method == "" {
		if notification {
			return nil
		}
		return errorResponse(req.ID, codeInvalidRequest, "Invalid request: method is required")
	}

	s.logger.Debug("mcp request", zap.String("method", req.Method), zap.Bool("notification", notification))

	result, rerr := s.dispatch(ctx, req)
	if notification {
		return nil
	}
	if rerr != nil {
		return &response{JSONRPC: "2.0", ID: req.ID, Error: rerr}
	}
	return &response{JSONRPC: "2.0", ID: req.ID, Result: result}
}

func (s *Server) dispatch(ctx context.Context, req request) (any, *rpcError) {
	switch req.Method {
	case "initialize":
		return s.initialize(req.Params), nil
	case "ping":
		return struct{}{}, nil
	case "tools/list":
		return map[string]any{"tools": tools.Definitions()}, nil
	case "tools/call":
		return s.callTool(ctx, req.Params)
	default:
		return nil, &rpcError{Code: codeMethodNotFound, Message: "Method not found: " + req.Method}
	}
}

func (s *Server) initialize(params json.RawMessage) any {
	var p struct {
		ProtocolVersion string `json:"protocolVersion"`
	}
	_ = json.Unmarshal(params, &p)
	if p.ProtocolVersion == "" {
		p.ProtocolVersion = defaultProtocolVersion
	}

	return map[string]any{
		"protocolVersion": p.ProtocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    ServerName,
			"version": s.version,
		},
	}
}

func (s *Server) callTool(ctx context.Context, params json.RawMessage) (any, *rpcError) {
	var p struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(params, &p); err != nil || p.Name == "" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "Invalid params: tools/call requires a tool name"}
	}
	if p.Arguments == nil {
		p.Arguments = map[string]any{}
	}

	res := s.caller.Call(ctx, p.Name, p.Arguments)
	return callResult{
		Content: []content{{Type: "text", Text: res.Text}},
		IsError: res.IsError,
	}, nil
}

func errorResponse(id json.RawMessage, code int, message string) *response {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return &response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}}
}
