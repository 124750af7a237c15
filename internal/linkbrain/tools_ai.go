package linkbrain

import (
	"context"

	"github.com/RobinCoderZhao/apibridge/pkg/mcpserver"
)

var languages = []string{"ko", "en"}

type generateArgs struct {
	Type     string   `json:"type"`
	ClipIDs  []string `json:"clipIds"`
	Language string   `json:"language"`
}

type analyzeArgs struct {
	URL string `json:"url"`
}

type askArgs struct {
	Message  string   `json:"message"`
	ClipIDs  []string `json:"clipIds"`
	Language string   `json:"language"`
}

type insightsArgs struct {
	Period   string `json:"period"`
	Days     int    `json:"days"`
	Language string `json:"language"`
}

func aiTools(c *Client) []mcpserver.ToolHandler {
	raw := func(res Result, err error) (*mcpserver.ToolCallResult, error) {
		if err != nil {
			return nil, err
		}
		return mcpserver.SuccessResult(res), nil
	}

	return []mcpserver.ToolHandler{
		mcpserver.NewTool("generate_content",
			"Generate content from clips using AI. Available types: report, planning, trend, big-picture, step-by-step, "+
				"chapter-lessons, simplify, key-concepts, quiz, visual-map, review-notes, teach-back, sns-post, newsletter, "+
				"presentation, email-draft, blog-post, executive-summary. Consumes credits.",
			mcpserver.Object(map[string]any{
				"type":     mcpserver.NonEmpty(`Content type (e.g., "blog-post", "report", "newsletter", "sns-post", "quiz")`),
				"clipIds":  mcpserver.Strings("Clip IDs to use as source material", 1, 0),
				"language": mcpserver.Enum("Output language (default: ko)", languages...),
			}, "type", "clipIds"),
			mcpserver.Mutating("Generate content", false, false),
			func(ctx context.Context, args generateArgs) (*mcpserver.ToolCallResult, error) {
				return raw(c.GenerateContent(ctx, args.Type, args.ClipIDs, args.Language))
			}),

		mcpserver.NewTool("analyze_url",
			"Analyze a URL using AI. Extracts title, summary, keywords, category, and other metadata. Consumes credits.",
			mcpserver.Object(map[string]any{"url": mcpserver.URI("URL to analyze")}, "url"),
			mcpserver.Mutating("Analyze URL", false, false),
			func(ctx context.Context, args analyzeArgs) (*mcpserver.ToolCallResult, error) {
				return raw(c.AnalyzeURL(ctx, args.URL))
			}),

		mcpserver.NewTool("ask_clips",
			"Ask AI a question with optional clip context. The AI answers based on the content of specified clips. Consumes credits.",
			mcpserver.Object(map[string]any{
				"message":  mcpserver.NonEmpty("Question to ask"),
				"clipIds":  mcpserver.Strings("Clip IDs for context (up to 20)", 0, 20),
				"language": mcpserver.Enum("Response language (default: ko)", languages...),
			}, "message"),
			mcpserver.Mutating("Ask clips", false, false),
			func(ctx context.Context, args askArgs) (*mcpserver.ToolCallResult, error) {
				return raw(c.Ask(ctx, args.Message, args.ClipIDs, args.Language))
			}),

		mcpserver.NewTool("get_insights",
			"Generate an insights report analyzing reading patterns, topic trends, and recommendations over a time period. Consumes credits.",
			mcpserver.Object(map[string]any{
				"period":   mcpserver.Enum("Time period (default: week)", "week", "month", "quarter", "custom"),
				"days":     mcpserver.Int("Custom number of days (for period=custom)", 1, 365),
				"language": mcpserver.Enum("Report language (default: ko)", languages...),
			}),
			mcpserver.Mutating("Get insights", false, false),
			func(ctx context.Context, args insightsArgs) (*mcpserver.ToolCallResult, error) {
				return raw(c.Insights(ctx, args.Period, args.Days, args.Language))
			}),
	}
}
