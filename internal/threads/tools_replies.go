package threads

import (
	"context"
	"fmt"

	"github.com/RobinCoderZhao/apibridge/pkg/apierr"
	"github.com/RobinCoderZhao/apibridge/pkg/mcpserver"
	"github.com/RobinCoderZhao/apibridge/pkg/render"
)

type repliesArgs struct {
	ThreadID string `json:"thread_id"`
	Reverse  bool   `json:"reverse"`
	formatted
}

type hideReplyArgs struct {
	ReplyID string `json:"reply_id"`
	Hide    bool   `json:"hide"`
}

type replyList struct {
	ThreadID string  `json:"thread_id"`
	Count    int     `json:"count"`
	Replies  []Reply `json:"replies"`
	Paging   *Paging `json:"paging,omitempty"`
}

func repliesSchema(desc string) map[string]any {
	return mcpserver.Object(withFormat(map[string]any{
		"thread_id": threadID(desc),
		"reverse":   mcpserver.WithDefault(mcpserver.Bool("Return replies in reverse chronological order"), false),
	}), "thread_id")
}

func replyTools(c *Client) []mcpserver.ToolHandler {
	listed := func(f render.Format, id, heading string, page *Page[Reply]) (*mcpserver.ToolCallResult, error) {
		if len(page.Data) == 0 {
			return mcpserver.TextResult(render.Empty("replies")), nil
		}
		list := replyList{ThreadID: id, Count: len(page.Data), Replies: page.Data, Paging: page.Paging}
		return result(f, list, func() string { return formatReplies(heading, page.Data) })
	}

	return []mcpserver.ToolHandler{
		mcpserver.NewTool("threads_get_replies",
			`Get direct replies to a specific Threads post.

Args:
  - thread_id (string, required): The post ID
  - reverse (boolean, optional): Reverse chronological order (default false)
  - response_format (string, optional): "markdown" (default) or "json"

Returns:
  List of replies with text, username, timestamp, and hide status.`,
			repliesSchema("The ID of the thread to get replies for"),
			mcpserver.ReadOnly("Get Thread Replies"),
			func(ctx context.Context, args repliesArgs) (*mcpserver.ToolCallResult, error) {
				page, err := c.Replies(ctx, args.ThreadID, args.Reverse)
				if err != nil {
					return nil, err
				}
				return listed(args.format(), args.ThreadID, "Replies to "+args.ThreadID, page)
			}),

		mcpserver.NewTool("threads_get_conversation",
			`Get the full conversation under a Threads post, including nested replies.

Args:
  - thread_id (string, required): The root post ID
  - reverse (boolean, optional): Reverse chronological order (default false)
  - response_format (string, optional): "markdown" (default) or "json"

Returns:
  Every reply in the conversation, flattened.`,
			repliesSchema("The ID of the root thread"),
			mcpserver.ReadOnly("Get Thread Conversation"),
			func(ctx context.Context, args repliesArgs) (*mcpserver.ToolCallResult, error) {
				page, err := c.Conversation(ctx, args.ThreadID, args.Reverse)
				if err != nil {
					return nil, err
				}
				return listed(args.format(), args.ThreadID, "Conversation for "+args.ThreadID, page)
			}),

		mcpserver.NewTool("threads_hide_reply",
			`Hide or unhide a reply on your Threads post.

Args:
  - reply_id (string, required): The ID of the reply
  - hide (boolean, required): true to hide, false to unhide

Returns:
  Confirmation message.`,
			mcpserver.Object(map[string]any{
				"reply_id": mcpserver.NonEmpty("The ID of the reply to hide/unhide"),
				"hide":     mcpserver.Bool("true to hide, false to unhide"),
			}, "reply_id", "hide"),
			mcpserver.Mutating("Hide/Unhide Reply", true, false),
			func(ctx context.Context, args hideReplyArgs) (*mcpserver.ToolCallResult, error) {
				ok, err := c.HideReply(ctx, args.ReplyID, args.Hide)
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, apierr.New(apierr.KindUpstream, "Threads API error: reply %s was not updated", args.ReplyID)
				}
				action := "unhidden"
				if args.Hide {
					action = "hidden"
				}
				return mcpserver.TextResult(fmt.Sprintf("✅ Reply %s %s successfully.", args.ReplyID, action)), nil
			}),
	}
}
