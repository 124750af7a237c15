// Package mcpserver serves a catalog of tools over the Model Context Protocol.
//
// Requests are JSON-RPC 2.0, read as lines from a stream (Serve) or posted
// to /mcp (RunHTTP). Arguments are checked against each tool's JSON Schema
// before the handler runs. A tool outcome, failure or panic included, is
// always a ToolCallResult.
//
//	s := mcpserver.New("linkbrain", version)
//	err := s.RegisterTool(mcpserver.NewTool("ping", "Answer pong.", schema, ann, handle))
//	err = s.Serve(ctx, os.Stdin, os.Stdout)
package mcpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/RobinCoderZhao/apibridge/pkg/apierr"
)

type registeredTool struct {
	handler ToolHandler
	schema  *jsonschema.Schema
}

// Server holds the tool catalog and answers MCP requests.
type Server struct {
	name            string
	version         string
	protocolVersion string
	instructions    string
	tools           map[string]*registeredTool
	order           []string
	sessions        map[string]time.Time
	sessionMu       sync.Mutex
	sessionTTL      time.Duration
	now             func() time.Time
	middleware      []Middleware
	logger          *slog.Logger
	jwtSecret       []byte
}

// DefaultSessionTTL is how long an HTTP session survives without requests.
const DefaultSessionTTL = 24 * time.Hour

// New returns an empty server speaking protocol 2024-11-05.
func New(name, version string) *Server {
	return &Server{
		name:            name,
		version:         version,
		protocolVersion: "2024-11-05",
		tools:           make(map[string]*registeredTool),
		sessions:        make(map[string]time.Time),
		sessionTTL:      DefaultSessionTTL,
		now:             time.Now,
		logger:          slog.Default(),
	}
}

// SetSessionTTL sets how long a session stays valid after its last request.
// d <= 0 restores DefaultSessionTTL.
func (s *Server) SetSessionTTL(d time.Duration) {
	if d <= 0 {
		d = DefaultSessionTTL
	}
	s.sessionMu.Lock()
	s.sessionTTL = d
	s.sessionMu.Unlock()
}

// SetLogger replaces the server logger.
func (s *Server) SetLogger(l *slog.Logger) {
	s.logger = l
}

// SetInstructions sets the text returned to hosts on initialize.
func (s *Server) SetInstructions(text string) {
	s.instructions = text
}

// RegisterTool compiles the tool's input schema and adds it to the server.
func (s *Server) RegisterTool(tool ToolHandler) error {
	name := tool.Name()
	if _, exists := s.tools[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}
	schema, err := compileSchema(name, tool.InputSchema())
	if err != nil {
		return err
	}
	s.tools[name] = &registeredTool{handler: tool, schema: schema}
	s.order = append(s.order, name)
	s.logger.Debug("registered tool", "name", name)
	return nil
}

// RegisterTools adds multiple tools to the server, stopping at the first error.
func (s *Server) RegisterTools(tools ...ToolHandler) error {
	for _, tool := range tools {
		if err := s.RegisterTool(tool); err != nil {
			return err
		}
	}
	return nil
}

// Tools returns the tool definitions in registration order.
func (s *Server) Tools() []ToolDef {
	return s.handleToolsList().Tools
}

// Use adds middleware to the server's processing chain.
func (s *Server) Use(mw Middleware) {
	s.middleware = append(s.middleware, mw)
}

// Serve reads newline-delimited JSON-RPC requests from r and writes responses
// to w until r is exhausted. Requests are handled one at a time.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.logger.Info("starting MCP server (stdio)", "name", s.name, "version", s.version, "tools", len(s.tools))

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp *JSONRPCResponse
		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			resp = &JSONRPCResponse{
				JSONRPC: "2.0",
				Error:   &RPCError{Code: codeParseError, Message: "Parse error"},
			}
		} else {
			resp = s.HandleRequest(ctx, &req)
		}
		if resp == nil {
			continue // Notification, no response needed
		}

		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}

// HandleRequest runs req through the middleware chain. Notifications
// return nil.
func (s *Server) HandleRequest(ctx context.Context, req *JSONRPCRequest) *JSONRPCResponse {
	handler := s.coreHandler
	for i := len(s.middleware) - 1; i >= 0; i-- {
		handler = s.middleware[i](handler)
	}
	return handler(ctx, req)
}

func (s *Server) coreHandler(ctx context.Context, req *JSONRPCRequest) *JSONRPCResponse {
	resp := &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
	}

	switch req.Method {
	case "initialize":
		resp.Result = s.handleInitialize()
	case "notifications/initialized", "notifications/cancelled":
		return nil
	case "ping":
		resp.Result = map[string]any{}
	case "tools/list":
		resp.Result = s.handleToolsList()
	case "tools/call":
		resp.Result = s.handleToolCall(ctx, req.Params)
	default:
		resp.Error = &RPCError{
			Code:    codeMethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		}
	}

	return resp
}

func (s *Server) handleInitialize() *InitializeResult {
	return &InitializeResult{
		ProtocolVersion: s.protocolVersion,
		Capabilities: ServerCapabilities{
			Tools: ToolsCapability{ListChanged: false},
		},
		ServerInfo: ServerInfo{
			Name:    s.name,
			Version: s.version,
		},
		Instructions: s.instructions,
		SessionID:    s.createSession(),
	}
}

func (s *Server) handleToolsList() *ToolsListResult {
	tools := make([]ToolDef, 0, len(s.order))
	for _, name := range s.order {
		h := s.tools[name].handler
		ann := h.Annotations()
		tools = append(tools, ToolDef{
			Name:        h.Name(),
			Title:       ann.Title,
			Description: h.Description(),
			InputSchema: h.InputSchema(),
			Annotations: ann,
		})
	}
	return &ToolsListResult{Tools: tools}
}

func (s *Server) handleToolCall(ctx context.Context, params any) *ToolCallResult {
	paramsBytes, err := json.Marshal(params)
	if err != nil {
		return ErrorResult(apierr.Validation("parse params: %v", err))
	}

	var callParams struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(paramsBytes, &callParams); err != nil {
		return ErrorResult(apierr.Validation("unmarshal params: %v", err))
	}

	return s.Call(ctx, callParams.Name, callParams.Arguments)
}

// Call validates args against the named tool's schema and executes it. It
// never returns nil and never panics: every failure becomes an error result.
func (s *Server) Call(ctx context.Context, name string, args map[string]any) (result *ToolCallResult) {
	callID := uuid.NewString()
	start := time.Now()
	logger := s.logger.With("tool", name, "call_id", callID)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in tool", "panic", r)
			result = ErrorResult(apierr.New(apierr.KindUnknown, "internal error in %s", name))
		}
	}()

	tool, ok := s.tools[name]
	if !ok {
		return ErrorResult(apierr.Validation("tool not found: %s", name))
	}

	if err := validateArgs(tool.schema, args); err != nil {
		logger.Warn("tool arguments rejected", "error", err)
		return ErrorResult(err)
	}

	res, err := tool.handler.Execute(ctx, args)
	elapsed := time.Since(start)
	if err != nil {
		classified := apierr.Classify(err)
		logger.Warn("tool failed", "kind", classified.Kind, "status", classified.Status, "elapsed", elapsed)
		return ErrorResult(classified)
	}
	if res == nil {
		res = TextResult("(no output)")
	}
	logger.Info("tool completed", "elapsed", elapsed, "is_error", res.IsError)
	return res
}

// createSession issues a new session id and drops sessions idle for longer
// than the TTL.
func (s *Server) createSession() string {
	id := uuid.NewString()
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	now := s.now()
	for sid, seen := range s.sessions {
		if now.Sub(seen) > s.sessionTTL {
			delete(s.sessions, sid)
		}
	}
	s.sessions[id] = now
	return id
}

// CheckSession reports whether id was issued by initialize and has not
// expired. A valid check extends the session.
func (s *Server) CheckSession(id string) bool {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	seen, ok := s.sessions[id]
	if !ok {
		return false
	}
	now := s.now()
	if now.Sub(seen) > s.sessionTTL {
		delete(s.sessions, id)
		return false
	}
	s.sessions[id] = now
	return true
}
