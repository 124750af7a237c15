package linkbrain

import (
	"log/slog"

	"github.com/RobinCoderZhao/apibridge/internal/bridge"
	"github.com/RobinCoderZhao/apibridge/pkg/apiclient"
	"github.com/RobinCoderZhao/apibridge/pkg/config"
	"github.com/RobinCoderZhao/apibridge/pkg/mcpserver"
)

const apiKeyHint = "Get your API key from: https://linkbrain.cloud/settings?tab=api"

// Config is the linkbrain-mcp configuration.
type Config struct {
	APIKey   string          `yaml:"api_key" env:"LINKBRAIN_API_KEY"`
	APIURL   string          `yaml:"api_url" env:"LINKBRAIN_API_URL"`
	Server   bridge.Settings `yaml:"mcp"`
	Upstream bridge.Upstream `yaml:"upstream"`
}

// DefaultConfig points at the hosted service and serves over stdio.
func DefaultConfig() Config {
	return Config{
		APIURL: DefaultBaseURL,
		Server: bridge.DefaultSettings(),
	}
}

// Validate requires the API key.
func (c *Config) Validate() error {
	if err := config.Require(c.APIKey, "LINKBRAIN_API_KEY", apiKeyHint); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Upstream.Validate()
}

// LoadConfig reads path (optional) and the environment over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MCP implements bridge.Platform.
func (c *Config) MCP() *bridge.Settings { return &c.Server }

// NewServer implements bridge.Platform.
func (c *Config) NewServer(version string, logger *slog.Logger) (*mcpserver.Server, error) {
	client := NewClient(apiclient.NewCredential(c.APIKey, c.APIURL), c.Upstream.ClientConfig(), logger)
	return NewServer(client, version, logger)
}

// App describes the linkbrain-mcp binary.
func App(version string) bridge.App {
	return bridge.App{
		Name:    "linkbrain-mcp",
		Short:   "MCP server for the Linkbrain bookmarking API",
		Version: version,
		Load: func(path string) (bridge.Platform, error) {
			cfg, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			return cfg, nil
		},
		Catalog: func(version string) (*mcpserver.Server, error) {
			cfg := DefaultConfig()
			return cfg.NewServer(version, nil)
		},
	}
}
