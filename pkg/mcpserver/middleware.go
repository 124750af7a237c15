package mcpserver

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"
)

// LoggingMiddleware logs each JSON-RPC request with its duration. Tool calls
// carry the tool name; protocol errors are logged at warn level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *JSONRPCRequest) *JSONRPCResponse {
			start := time.Now()
			attrs := []any{"method", req.Method, "id", req.ID}
			if name := toolName(req); name != "" {
				attrs = append(attrs, "tool", name)
			}

			resp := next(ctx, req)

			attrs = append(attrs, "elapsed", time.Since(start))
			if resp != nil && resp.Error != nil {
				logger.Warn("mcp request failed", append(attrs, "code", resp.Error.Code, "message", resp.Error.Message)...)
				return resp
			}
			logger.Debug("mcp request", attrs...)
			return resp
		}
	}
}

// RecoveryMiddleware turns a panic anywhere below it into a JSON-RPC
// internal error. Tool handlers are already guarded by Call; this covers
// the protocol methods.
func RecoveryMiddleware(logger *slog.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *JSONRPCRequest) (resp *JSONRPCResponse) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic in mcp handler", "method", req.Method, "panic", r, "stack", string(debug.Stack()))
					resp = &JSONRPCResponse{
						JSONRPC: "2.0",
						ID:      req.ID,
						Error:   &RPCError{Code: codeInternalError, Message: "Internal error"},
					}
				}
			}()
			return next(ctx, req)
		}
	}
}

func toolName(req *JSONRPCRequest) string {
	if req.Method != "tools/call" {
		return ""
	}
	params, ok := req.Params.(map[string]any)
	if !ok {
		return ""
	}
	name, _ := params["name"].(string)
	return name
}
