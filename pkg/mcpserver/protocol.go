package mcpserver

import (
	"github.com/RobinCoderZhao/apibridge/pkg/apierr"
	"github.com/RobinCoderZhao/apibridge/pkg/render"
)

// JSON-RPC 2.0 protocol types

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id,omitempty"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id,omitempty"`
	Result  any       `json:"result,omitempty"`
	Error   *RPCError `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC 2.0 error.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInternalError  = -32603
)

// MCP protocol types

// InitializeResult is the response to an initialize request.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
	Instructions    string             `json:"instructions,omitempty"`
	SessionID       string             `json:"sessionId,omitempty"`
}

// ServerCapabilities describes the server's supported features.
type ServerCapabilities struct {
	Tools ToolsCapability `json:"tools"`
}

// ToolsCapability describes the tools capability.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

// ServerInfo describes the server.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolAnnotations are behavior hints hosts use for policy decisions.
type ToolAnnotations struct {
	Title           string `json:"title,omitempty"`
	ReadOnlyHint    bool   `json:"readOnlyHint"`
	DestructiveHint bool   `json:"destructiveHint"`
	IdempotentHint  bool   `json:"idempotentHint"`
	OpenWorldHint   bool   `json:"openWorldHint"`
}

// ReadOnly annotates a tool that only reads from an external service.
func ReadOnly(title string) ToolAnnotations {
	return ToolAnnotations{Title: title, ReadOnlyHint: true, IdempotentHint: true, OpenWorldHint: true}
}

// Mutating annotates a tool that changes external state.
func Mutating(title string, idempotent, destructive bool) ToolAnnotations {
	return ToolAnnotations{Title: title, IdempotentHint: idempotent, DestructiveHint: destructive, OpenWorldHint: true}
}

// ToolDef represents a tool definition for listing.
type ToolDef struct {
	Name        string          `json:"name"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description"`
	InputSchema map[string]any  `json:"inputSchema"`
	Annotations ToolAnnotations `json:"annotations"`
}

// ToolsListResult is the result of a tools/list request.
type ToolsListResult struct {
	Tools []ToolDef `json:"tools"`
}

// ToolCallResult is the uniform envelope returned for every tool call.
type ToolCallResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Text returns the concatenated text content.
func (r *ToolCallResult) Text() string {
	var s string
	for _, c := range r.Content {
		s += c.Text
	}
	return s
}

// Content represents a piece of tool output.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ErrorPrefix leads every error result so callers can tell failures from
// payloads that merely look like errors.
const ErrorPrefix = "Error: "

// SuccessResult renders data as indented JSON, truncated to the output cap.
func SuccessResult(data any) *ToolCallResult {
	text, err := render.JSON(data)
	if err != nil {
		return ErrorResult(err)
	}
	return TextResult(text)
}

// TextResult creates a ToolCallResult with a plain text message, truncated to
// the output cap.
func TextResult(text string) *ToolCallResult {
	return &ToolCallResult{
		Content: []Content{{Type: "text", Text: render.Truncate(text)}},
	}
}

// ErrorResult classifies err and wraps its message in an error envelope.
func ErrorResult(err error) *ToolCallResult {
	return &ToolCallResult{
		Content: []Content{{Type: "text", Text: ErrorPrefix + apierr.Classify(err).Message}},
		IsError: true,
	}
}
