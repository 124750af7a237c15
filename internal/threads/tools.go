package threads

import (
	"log/slog"

	"github.com/RobinCoderZhao/apibridge/pkg/mcpserver"
	"github.com/RobinCoderZhao/apibridge/pkg/render"
)

// ServerName is reported to MCP hosts on initialize.
const ServerName = "threads"

const defaultFormat = render.FormatMarkdown

// Platform limits.
const (
	postCharLimit = 500
	defaultLimit  = 25
	maxCarousel   = 20
)

var replyControls = []string{"everyone", "accounts_you_follow", "mentioned_only"}

const instructions = "Threads is Meta's text-first social network. Publish posts and replies, read your posts " +
	"and their replies, search public posts, and check engagement insights and publishing quotas. " +
	"Posting is limited to 250 posts and 1000 replies per 24 hours."

// Tools returns the full Threads tool catalog bound to c.
func Tools(c *Client) []mcpserver.ToolHandler {
	var tools []mcpserver.ToolHandler
	tools = append(tools, publishTools(c)...)
	tools = append(tools, contentTools(c)...)
	tools = append(tools, replyTools(c)...)
	tools = append(tools, insightTools(c)...)
	return tools
}

// NewServer builds an MCP server exposing the Threads catalog.
func NewServer(c *Client, version string, logger *slog.Logger) (*mcpserver.Server, error) {
	s := mcpserver.New(ServerName, version)
	if logger != nil {
		s.SetLogger(logger)
		s.Use(mcpserver.RecoveryMiddleware(logger))
		s.Use(mcpserver.LoggingMiddleware(logger))
	}
	s.SetInstructions(instructions)
	if err := s.RegisterTools(Tools(c)...); err != nil {
		return nil, err
	}
	return s, nil
}

type formatted struct {
	ResponseFormat string `json:"response_format"`
}

func (f formatted) format() render.Format {
	return render.ParseFormat(f.ResponseFormat, defaultFormat)
}

func withFormat(props map[string]any) map[string]any {
	props["response_format"] = mcpserver.ResponseFormat(defaultFormat)
	return props
}

// result renders v as JSON or through markdown depending on f.
func result(f render.Format, v any, markdown func() string) (*mcpserver.ToolCallResult, error) {
	if f == render.FormatJSON {
		return mcpserver.SuccessResult(v), nil
	}
	return mcpserver.TextResult(markdown()), nil
}

func threadID(desc string) map[string]any {
	return mcpserver.NonEmpty(desc)
}
