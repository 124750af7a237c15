// Package bridge holds the pieces shared by the API bridge binaries: MCP
// transport settings, upstream transport settings, logger construction and
// the cobra command tree.
package bridge

import (
	"fmt"
	"strings"
	"time"

	"github.com/RobinCoderZhao/apibridge/pkg/apiclient"
)

// Transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

const defaultHTTPAddr = ":8080"

// Settings configures how the MCP server is exposed.
type Settings struct {
	Transport string `yaml:"transport" env:"MCP_TRANSPORT"`
	HTTPAddr  string `yaml:"http_addr" env:"MCP_HTTP_ADDR"`
	// JWTSecret enables bearer-token auth on the HTTP transport.
	JWTSecret string `yaml:"jwt_secret" env:"MCP_JWT_SECRET"`
	LogLevel  string `yaml:"log_level" env:"MCP_LOG_LEVEL"`

	// SessionTTL expires idle HTTP sessions. Zero uses the server default.
	SessionTTL time.Duration `yaml:"session_ttl" env:"MCP_SESSION_TTL"`
}

// DefaultSettings serves over stdio at info level.
func DefaultSettings() Settings {
	return Settings{
		Transport: TransportStdio,
		HTTPAddr:  defaultHTTPAddr,
		LogLevel:  "info",
	}
}

// Validate checks the transport name.
func (s Settings) Validate() error {
	switch strings.ToLower(s.Transport) {
	case TransportStdio, TransportHTTP:
		return nil
	default:
		return fmt.Errorf("unknown transport %q (want %s or %s)", s.Transport, TransportStdio, TransportHTTP)
	}
}

// Upstream configures calls to the bridged REST API.
type Upstream struct {
	// TimeoutSeconds bounds each request. Zero uses apiclient.DefaultTimeout.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"API_TIMEOUT"`
	// RatePerSecond paces outbound requests when positive.
	RatePerSecond float64 `yaml:"rate_per_second" env:"API_RATE_PER_SECOND"`
	Burst         int     `yaml:"burst"`
	UserAgent     string  `yaml:"user_agent"`
}

// ClientConfig converts u into an apiclient.Config. The base URL comes from
// the platform credential.
func (u Upstream) ClientConfig() apiclient.Config {
	cfg := apiclient.Config{
		RatePerSecond: u.RatePerSecond,
		Burst:         u.Burst,
		UserAgent:     u.UserAgent,
	}
	if u.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(u.TimeoutSeconds) * time.Second
	}
	return cfg
}

// Validate rejects negative bounds.
func (u Upstream) Validate() error {
	if u.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	if u.RatePerSecond < 0 {
		return fmt.Errorf("rate_per_second must not be negative")
	}
	return nil
}
