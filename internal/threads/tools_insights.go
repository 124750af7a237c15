package threads

import (
	"context"

	"github.com/RobinCoderZhao/apibridge/pkg/mcpserver"
	"github.com/RobinCoderZhao/apibridge/pkg/render"
)

type accountInsightsArgs struct {
	Since int64 `json:"since"`
	Until int64 `json:"until"`
	formatted
}

type postInsights struct {
	ThreadID string    `json:"thread_id,omitempty"`
	Insights []Insight `json:"insights"`
}

func insightTools(c *Client) []mcpserver.ToolHandler {
	return []mcpserver.ToolHandler{
		mcpserver.NewTool("threads_get_post_insights",
			`Get engagement metrics for a specific Threads post.

Args:
  - thread_id (string, required): The ID of the thread
  - response_format (string, optional): "markdown" (default) or "json"

Returns:
  Metrics including views, likes, replies, reposts, and quotes.`,
			mcpserver.Object(withFormat(map[string]any{
				"thread_id": threadID("The ID of the thread to get insights for"),
			}), "thread_id"),
			mcpserver.ReadOnly("Get Post Insights"),
			func(ctx context.Context, args threadArgs) (*mcpserver.ToolCallResult, error) {
				insights, err := c.MediaInsights(ctx, args.ThreadID, "")
				if err != nil {
					return nil, err
				}
				if len(insights) == 0 {
					return mcpserver.TextResult(render.Empty("insights")), nil
				}
				out := postInsights{ThreadID: args.ThreadID, Insights: nonNil(insights)}
				return result(args.format(), out, func() string {
					return formatInsights("Post Insights: "+args.ThreadID, insights)
				})
			}),

		mcpserver.NewTool("threads_get_account_insights",
			`Get account-level analytics for your Threads profile.

Args:
  - since (number, optional): Unix timestamp - start of range
  - until (number, optional): Unix timestamp - end of range
  - response_format (string, optional): "markdown" (default) or "json"

Returns:
  Account metrics including total views, likes, followers, etc.`,
			mcpserver.Object(withFormat(map[string]any{
				"since": mcpserver.Int("Unix timestamp - start of the time range", 0, 0),
				"until": mcpserver.Int("Unix timestamp - end of the time range", 0, 0),
			})),
			mcpserver.ReadOnly("Get Account Insights"),
			func(ctx context.Context, args accountInsightsArgs) (*mcpserver.ToolCallResult, error) {
				insights, err := c.UserInsights(ctx, "", args.Since, args.Until)
				if err != nil {
					return nil, err
				}
				if len(insights) == 0 {
					return mcpserver.TextResult(render.Empty("insights")), nil
				}
				return result(args.format(), postInsights{Insights: nonNil(insights)}, func() string {
					return formatInsights("Account Insights", insights)
				})
			}),

		mcpserver.NewTool("threads_get_publishing_limit",
			`Check your current Threads publishing quota usage.

Returns:
  Current post/reply usage vs. limits (250 posts, 1000 replies per 24h).`,
			mcpserver.Object(withFormat(map[string]any{})),
			mcpserver.ReadOnly("Get Publishing Limit"),
			func(ctx context.Context, args formatted) (*mcpserver.ToolCallResult, error) {
				limit, err := c.PublishingLimit(ctx)
				if err != nil {
					return nil, err
				}
				return result(args.format(), limit, func() string { return formatPublishingLimit(limit) })
			}),

		mcpserver.NewTool("threads_get_profile",
			`Get your Threads profile information.

Returns:
  Username, name, bio, profile picture, verification status.`,
			mcpserver.Object(withFormat(map[string]any{})),
			mcpserver.ReadOnly("Get My Threads Profile"),
			func(ctx context.Context, args formatted) (*mcpserver.ToolCallResult, error) {
				u, err := c.Me(ctx, "")
				if err != nil {
					return nil, err
				}
				return result(args.format(), u, func() string { return formatProfile(u) })
			}),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
