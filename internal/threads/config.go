package threads

import (
	"log/slog"

	"github.com/RobinCoderZhao/apibridge/internal/bridge"
	"github.com/RobinCoderZhao/apibridge/pkg/apiclient"
	"github.com/RobinCoderZhao/apibridge/pkg/config"
	"github.com/RobinCoderZhao/apibridge/pkg/mcpserver"
)

const accessTokenHint = `To get an access token:
  1. Create a Meta Developer App at https://developers.facebook.com
  2. Add the Threads API product to the app
  3. Request the scopes threads_basic, threads_content_publish, threads_manage_insights,
     threads_read_replies and threads_manage_replies
  4. Generate a long-lived access token and export it as THREADS_ACCESS_TOKEN`

// Config is the threads-mcp configuration.
type Config struct {
	AccessToken string          `yaml:"access_token" env:"THREADS_ACCESS_TOKEN"`
	APIURL      string          `yaml:"api_url" env:"THREADS_API_URL"`
	Publish     PublishConfig   `yaml:"publish"`
	Server      bridge.Settings `yaml:"mcp"`
	Upstream    bridge.Upstream `yaml:"upstream"`
}

// DefaultConfig points at the Graph API, polls before publishing and serves
// over stdio.
func DefaultConfig() Config {
	return Config{
		APIURL:  DefaultBaseURL,
		Publish: DefaultPublishConfig(),
		Server:  bridge.DefaultSettings(),
	}
}

// Validate requires the access token.
func (c *Config) Validate() error {
	if err := config.Require(c.AccessToken, "THREADS_ACCESS_TOKEN", accessTokenHint); err != nil {
		return err
	}
	if err := c.Publish.Validate(); err != nil {
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
	client := NewClient(apiclient.NewCredential(c.AccessToken, c.APIURL), c.Upstream.ClientConfig(), logger,
		WithPublishConfig(c.Publish))
	return NewServer(client, version, logger)
}

// App describes the threads-mcp binary.
func App(version string) bridge.App {
	return bridge.App{
		Name:    "threads-mcp",
		Short:   "MCP server for the Meta Threads API",
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
