package threads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobinCoderZhao/apibridge/pkg/config"
)

func TestLoadConfig_MissingToken(t *testing.T) {
	t.Setenv("THREADS_ACCESS_TOKEN", "")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.True(t, config.IsMissing(err))
	assert.True(t, strings.HasPrefix(err.Error(), "THREADS_ACCESS_TOKEN environment variable is required\n"))
	assert.Contains(t, err.Error(), "https://developers.facebook.com")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("THREADS_ACCESS_TOKEN", "tok")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.APIURL)
	assert.Equal(t, DefaultPublishConfig(), cfg.Publish)
	assert.Equal(t, "stdio", cfg.MCP().Transport)
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("THREADS_ACCESS_TOKEN", "")
	os.Unsetenv("THREADS_ACCESS_TOKEN")
	t.Setenv("TEST_THREADS_TOKEN", "from-env")
	t.Setenv("THREADS_PUBLISH_STRATEGY", "delay")

	path := filepath.Join(t.TempDir(), "threads.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
access_token: ${TEST_THREADS_TOKEN}
publish:
  post_delay: 3s
  max_attempts: 5
mcp:
  transport: http
  http_addr: ":9090"
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AccessToken)
	assert.Equal(t, StrategyDelay, cfg.Publish.Strategy)
	assert.Equal(t, 3*time.Second, cfg.Publish.PostDelay)
	assert.Equal(t, 5, cfg.Publish.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Publish.ReplyDelay)
	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
}

func TestLoadConfig_BadStrategy(t *testing.T) {
	t.Setenv("THREADS_ACCESS_TOKEN", "tok")
	t.Setenv("THREADS_PUBLISH_STRATEGY", "sometimes")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `publish strategy "sometimes"`)
}
