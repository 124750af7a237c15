package linkbrain

import (
	"log/slog"

	"github.com/RobinCoderZhao/apibridge/pkg/mcpserver"
	"github.com/RobinCoderZhao/apibridge/pkg/render"
)

// ServerName is reported to MCP hosts on initialize.
const ServerName = "linkbrain"

// defaultFormat is JSON because most callers feed the output to another tool.
const defaultFormat = render.FormatJSON

const instructions = "Linkbrain is a second-brain bookmarking service. Save URLs as clips, " +
	"organize them into collections and categories, search them, and generate AI content from them. " +
	"Tools marked as consuming credits call paid AI features."

// Tools returns the full Linkbrain tool catalog bound to c.
func Tools(c *Client) []mcpserver.ToolHandler {
	var tools []mcpserver.ToolHandler
	tools = append(tools, clipTools(c)...)
	tools = append(tools, aiTools(c)...)
	tools = append(tools, collectionTools(c)...)
	tools = append(tools, manageTools(c)...)
	return tools
}

// NewServer builds an MCP server exposing the Linkbrain catalog.
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

// formatted is embedded in argument structs of tools that support both
// renderings.
type formatted struct {
	ResponseFormat string `json:"response_format"`
}

func (f formatted) format() render.Format {
	return render.ParseFormat(f.ResponseFormat, defaultFormat)
}

func listResult[T any](f render.Format, noun string, page *Page[T], markdown func(*Page[T]) string) (*mcpserver.ToolCallResult, error) {
	if len(page.Data) == 0 {
		return mcpserver.TextResult(render.Empty(noun)), nil
	}
	if f == render.FormatMarkdown {
		return mcpserver.TextResult(markdown(page)), nil
	}
	return mcpserver.SuccessResult(page), nil
}

func itemResult(f render.Format, v any, markdown func() string) (*mcpserver.ToolCallResult, error) {
	if f == render.FormatMarkdown {
		return mcpserver.TextResult(markdown()), nil
	}
	return mcpserver.SuccessResult(v), nil
}

func withFormat(props map[string]any) map[string]any {
	props["response_format"] = mcpserver.ResponseFormat(defaultFormat)
	return props
}
