package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/RobinCoderZhao/apibridge/pkg/apierr"
)

// ToolHandler is the interface for MCP tools.
type ToolHandler interface {
	// Name returns the unique tool name.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// InputSchema returns the JSON Schema for the tool's input.
	InputSchema() map[string]any

	// Annotations returns behavior hints for host-side policy.
	Annotations() ToolAnnotations

	// Execute runs the tool with arguments that already passed InputSchema.
	Execute(ctx context.Context, args map[string]any) (*ToolCallResult, error)
}

// BaseTool provides a base implementation for common tool fields.
// Embed this in your tool structs and implement Execute().
type BaseTool struct {
	ToolName        string
	ToolDescription string
	ToolSchema      map[string]any
	ToolAnnotations ToolAnnotations

	// Category groups tools in listings.
	Category string
}

func (t *BaseTool) Name() string                 { return t.ToolName }
func (t *BaseTool) Description() string          { return t.ToolDescription }
func (t *BaseTool) InputSchema() map[string]any  { return t.ToolSchema }
func (t *BaseTool) Annotations() ToolAnnotations { return t.ToolAnnotations }

// Tool is a ToolHandler whose arguments are decoded into T before the handler
// runs. The server validates against the schema first, so T only has to carry
// the fields; bounds and enums live in the schema.
type Tool[T any] struct {
	BaseTool
	Handler func(ctx context.Context, args T) (*ToolCallResult, error)
}

// NewTool builds a typed tool.
func NewTool[T any](name, description string, schema map[string]any, ann ToolAnnotations, handler func(context.Context, T) (*ToolCallResult, error)) *Tool[T] {
	return &Tool[T]{
		BaseTool: BaseTool{
			ToolName:        name,
			ToolDescription: description,
			ToolSchema:      schema,
			ToolAnnotations: ann,
		},
		Handler: handler,
	}
}

// Execute decodes args into T and runs the handler.
func (t *Tool[T]) Execute(ctx context.Context, args map[string]any) (*ToolCallResult, error) {
	var typed T
	if err := Decode(args, &typed); err != nil {
		return nil, err
	}
	return t.Handler(ctx, typed)
}

// Decode converts raw JSON-shaped arguments into out.
func Decode(args map[string]any, out any) error {
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return apierr.Validation("invalid arguments: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apierr.Validation("invalid arguments: %v", err)
	}
	return nil
}

// Middleware is a function that wraps a request handler.
type Middleware func(next HandlerFunc) HandlerFunc

// HandlerFunc is a function that handles a JSON-RPC request.
type HandlerFunc func(ctx context.Context, req *JSONRPCRequest) *JSONRPCResponse
