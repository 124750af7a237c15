package threads

import (
	"context"
	"fmt"

	"github.com/RobinCoderZhao/apibridge/pkg/mcpserver"
	"github.com/RobinCoderZhao/apibridge/pkg/render"
)

type myPostsArgs struct {
	Limit int    `json:"limit"`
	Since string `json:"since"`
	Until string `json:"until"`
	formatted
}

type threadArgs struct {
	ThreadID string `json:"thread_id"`
	formatted
}

type searchArgs struct {
	Query     string `json:"query"`
	MediaType string `json:"media_type"`
	Since     string `json:"since"`
	Until     string `json:"until"`
	formatted
}

type postList struct {
	Query  string  `json:"query,omitempty"`
	Count  int     `json:"count"`
	Posts  []Media `json:"posts"`
	Paging *Paging `json:"paging,omitempty"`
}

func contentTools(c *Client) []mcpserver.ToolHandler {
	return []mcpserver.ToolHandler{
		mcpserver.NewTool("threads_get_my_posts",
			`Retrieve your recent Threads posts.

Args:
  - limit (number, optional): Number of posts to return (1-100, default 25)
  - since (string, optional): ISO 8601 date - only posts after this date
  - until (string, optional): ISO 8601 date - only posts before this date
  - response_format (string, optional): "markdown" (default) or "json"

Returns:
  List of your recent posts with text, media type, timestamp, and permalink.`,
			mcpserver.Object(withFormat(map[string]any{
				"limit": mcpserver.WithDefault(mcpserver.Int("Number of threads to return (1-100, default 25)", 1, 100), defaultLimit),
				"since": mcpserver.String("ISO 8601 date - only return threads after this date"),
				"until": mcpserver.String("ISO 8601 date - only return threads before this date"),
			})),
			mcpserver.ReadOnly("Get My Threads Posts"),
			func(ctx context.Context, args myPostsArgs) (*mcpserver.ToolCallResult, error) {
				if args.Limit == 0 {
					args.Limit = defaultLimit
				}
				page, err := c.UserThreads(ctx, ThreadFilter{Limit: args.Limit, Since: args.Since, Until: args.Until})
				if err != nil {
					return nil, err
				}
				if len(page.Data) == 0 {
					return mcpserver.TextResult(render.Empty("posts")), nil
				}
				list := postList{Count: len(page.Data), Posts: page.Data, Paging: page.Paging}
				return result(args.format(), list, func() string {
					return formatThreads("My Threads Posts", page.Data)
				})
			}),

		mcpserver.NewTool("threads_get_post",
			`Get details of a specific Threads post by ID.

Args:
  - thread_id (string, required): The post ID
  - response_format (string, optional): "markdown" (default) or "json"

Returns:
  Post details including text, media type, timestamp, and permalink.`,
			mcpserver.Object(withFormat(map[string]any{
				"thread_id": threadID("The ID of the thread to retrieve"),
			}), "thread_id"),
			mcpserver.ReadOnly("Get Thread Post"),
			func(ctx context.Context, args threadArgs) (*mcpserver.ToolCallResult, error) {
				m, err := c.Thread(ctx, args.ThreadID, "")
				if err != nil {
					return nil, err
				}
				return result(args.format(), m, func() string { return formatThread(m) })
			}),

		mcpserver.NewTool("threads_delete_post",
			`Delete one of your Threads posts.

Args:
  - thread_id (string, required): The ID of the post to delete

Returns:
  Success or error message. This action is irreversible.`,
			mcpserver.Object(map[string]any{
				"thread_id": threadID("The ID of the thread to delete"),
			}, "thread_id"),
			mcpserver.Mutating("Delete Thread Post", true, true),
			func(ctx context.Context, args threadArgs) (*mcpserver.ToolCallResult, error) {
				if err := c.DeleteThread(ctx, args.ThreadID); err != nil {
					return nil, err
				}
				return mcpserver.TextResult(fmt.Sprintf("✅ Post %s deleted successfully.", args.ThreadID)), nil
			}),

		mcpserver.NewTool("threads_search",
			`Search public Threads posts by keyword.

Args:
  - query (string, required): Search keyword (max 200 chars)
  - media_type (string, optional): Filter - "TEXT_POST", "IMAGE", or "VIDEO"
  - since (string, optional): ISO 8601 date filter
  - until (string, optional): ISO 8601 date filter
  - response_format (string, optional): "markdown" (default) or "json"

Returns:
  List of matching public posts.`,
			mcpserver.Object(withFormat(map[string]any{
				"query":      searchQuery(),
				"media_type": mcpserver.Enum("Filter by media type", "TEXT_POST", "IMAGE", "VIDEO"),
				"since":      mcpserver.String("ISO 8601 date - only return posts after this date"),
				"until":      mcpserver.String("ISO 8601 date - only return posts before this date"),
			}), "query"),
			mcpserver.ReadOnly("Search Threads Posts"),
			func(ctx context.Context, args searchArgs) (*mcpserver.ToolCallResult, error) {
				page, err := c.Search(ctx, args.Query, SearchFilter{MediaType: args.MediaType, Since: args.Since, Until: args.Until})
				if err != nil {
					return nil, err
				}
				if len(page.Data) == 0 {
					return mcpserver.TextResult(render.Empty("posts")), nil
				}
				list := postList{Query: args.Query, Count: len(page.Data), Posts: page.Data, Paging: page.Paging}
				return result(args.format(), list, func() string {
					return formatThreads(fmt.Sprintf("Search Results: %q", args.Query), page.Data)
				})
			}),
	}
}

// searchQuery rejects blank keywords as well as empty ones.
func searchQuery() map[string]any {
	q := mcpserver.StringLen("Keyword to search for in public Threads posts", 1, 200)
	q["pattern"] = `\S`
	return q
}
