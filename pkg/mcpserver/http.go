package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HTTPServer exposes a Server over HTTP. Responses are JSON, or a single SSE
// event when the client accepts text/event-stream.
type HTTPServer struct {
	server *Server
	addr   string
	logger *slog.Logger
}

// SetJWTSecret requires an HS256-signed bearer token on every HTTP request
// except the health check. An empty secret disables the check.
func (s *Server) SetJWTSecret(secret string) {
	s.jwtSecret = []byte(secret)
}

// RunHTTP blocks serving s on addr.
func (s *Server) RunHTTP(addr string) error {
	hs := &HTTPServer{
		server: s,
		addr:   addr,
		logger: s.logger,
	}
	return hs.ListenAndServe()
}

// Handler returns the HTTP handler serving the MCP and REST endpoints.
func (s *Server) Handler() http.Handler {
	hs := &HTTPServer{server: s, logger: s.logger}
	return hs.routes()
}

// ListenAndServe blocks until the listener fails.
func (hs *HTTPServer) ListenAndServe() error {
	hs.logger.Info("starting HTTP server", "addr", hs.addr, "tools", len(hs.server.tools), "auth", len(hs.server.jwtSecret) > 0)

	srv := &http.Server{
		Addr:              hs.addr,
		Handler:           hs.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (hs *HTTPServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/mcp", hs.requireAuth(http.HandlerFunc(hs.handleMCPRequest)))

	mux.Handle("/api/tools", hs.requireAuth(http.HandlerFunc(hs.handleToolsList)))
	mux.Handle("/api/tools/", hs.requireAuth(http.HandlerFunc(hs.handleToolCall)))

	mux.HandleFunc("/health", hs.handleHealth)

	return hs.corsMiddleware(mux)
}

func (hs *HTTPServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Mcp-Session-Id")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth verifies the bearer token when a JWT secret is configured.
func (hs *HTTPServer) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret := hs.server.jwtSecret
		if len(secret) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		_, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			reason := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				reason = "token expired"
			}
			hs.logger.Warn("rejected HTTP request", "path", r.URL.Path, "reason", reason)
			http.Error(w, reason, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (hs *HTTPServer) handleMCPRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		hs.writeError(w, codeParseError, "Parse error")
		return
	}

	// Requests other than initialize must carry the Mcp-Session-Id issued by
	// initialize.
	if req.Method != "initialize" {
		sessionID := r.Header.Get("Mcp-Session-Id")
		if sessionID == "" || !hs.server.CheckSession(sessionID) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
	}

	// A call that started runs to completion even if the client goes away.
	resp := hs.server.HandleRequest(context.WithoutCancel(r.Context()), &req)
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	// initialize issues the session
	if req.Method == "initialize" && resp.Error == nil {
		if result, ok := resp.Result.(*InitializeResult); ok && result.SessionID != "" {
			w.Header().Set("Mcp-Session-Id", result.SessionID)
		}
	}

	// SSE when asked for
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		hs.sendSSE(w, resp)
	} else {
		hs.sendJSON(w, resp)
	}
}

func (hs *HTTPServer) sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hs.logger.Error("write response", "error", err)
	}
}

func (hs *HTTPServer) sendSSE(w http.ResponseWriter, resp *JSONRPCResponse) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		hs.sendJSON(w, resp)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	respBytes, _ := json.Marshal(resp)
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", string(respBytes))
	flusher.Flush()
}

func (hs *HTTPServer) handleToolsList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	hs.sendJSON(w, hs.server.handleToolsList())
}

func (hs *HTTPServer) handleToolCall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	toolName := strings.TrimPrefix(r.URL.Path, "/api/tools/")
	if toolName == "" {
		http.Error(w, "Tool name required", http.StatusBadRequest)
		return
	}

	var args map[string]any
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	hs.sendJSON(w, hs.server.Call(context.WithoutCancel(r.Context()), toolName, args))
}

func (hs *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	hs.sendJSON(w, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"server":    hs.server.name,
		"version":   hs.server.version,
	})
}

func (hs *HTTPServer) writeError(w http.ResponseWriter, code int, message string) {
	hs.sendJSON(w, JSONRPCResponse{
		JSONRPC: "2.0",
		Error:   &RPCError{Code: code, Message: message},
	})
}
