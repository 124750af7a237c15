package threads

import (
	"context"
	"fmt"

	"github.com/RobinCoderZhao/apibridge/pkg/mcpserver"
)

type createPostArgs struct {
	Text         string         `json:"text"`
	ImageURL     string         `json:"image_url"`
	VideoURL     string         `json:"video_url"`
	ReplyControl string         `json:"reply_control"`
	Carousel     []CarouselItem `json:"carousel"`
}

type replyArgs struct {
	ThreadID string `json:"thread_id"`
	Text     string `json:"text"`
}

func postText(desc string) map[string]any {
	return mcpserver.StringLen(desc, 1, postCharLimit)
}

func createPostSchema() map[string]any {
	item := mcpserver.Object(map[string]any{
		"image_url": mcpserver.URI("URL of an image (JPEG or PNG)"),
		"video_url": mcpserver.URI("URL of a video (max 5 min)"),
	})
	item["minProperties"] = 1
	item["maxProperties"] = 1

	s := mcpserver.Object(map[string]any{
		"text":          postText(fmt.Sprintf("The text content of the post (max %d chars)", postCharLimit)),
		"image_url":     mcpserver.URI("URL of an image to attach (JPEG or PNG)"),
		"video_url":     mcpserver.URI("URL of a video to attach (max 5 min)"),
		"reply_control": mcpserver.Enum("Who can reply to this post", replyControls...),
		"carousel": map[string]any{
			"type":        "array",
			"description": fmt.Sprintf("2-%d images or videos published together as a carousel. Each item has exactly one of image_url or video_url.", maxCarousel),
			"items":       item,
			"minItems":    2,
			"maxItems":    maxCarousel,
		},
	}, "text")
	s["allOf"] = []any{
		map[string]any{"not": map[string]any{"required": []string{"image_url", "video_url"}}},
		map[string]any{"not": map[string]any{"anyOf": []any{
			map[string]any{"required": []string{"carousel", "image_url"}},
			map[string]any{"required": []string{"carousel", "video_url"}},
		}}},
	}
	return s
}

func publishTools(c *Client) []mcpserver.ToolHandler {
	return []mcpserver.ToolHandler{
		mcpserver.NewTool("threads_create_post",
			fmt.Sprintf(`Create and publish a new post on Threads.

Supports text-only, image, video, or carousel posts. Text is limited to %d characters.
Posts go through a two-step process: container creation, then publish once the container is ready.

Args:
  - text (string, required): Post content (max %d chars)
  - image_url (string, optional): URL of image to attach (JPEG/PNG)
  - video_url (string, optional): URL of video to attach (max 5 min). Not combinable with image_url.
  - carousel (array, optional): 2-%d items, each {image_url} or {video_url}. Not combinable with image_url/video_url.
  - reply_control (string, optional): Who can reply - "everyone", "accounts_you_follow", "mentioned_only"

Returns:
  Published post ID.

Rate Limit: Max 250 posts per 24 hours.`, postCharLimit, postCharLimit, maxCarousel),
			createPostSchema(),
			mcpserver.Mutating("Create Threads Post", false, false),
			func(ctx context.Context, args createPostArgs) (*mcpserver.ToolCallResult, error) {
				id, err := c.CreatePost(ctx, NewPost{
					Text:         args.Text,
					ImageURL:     args.ImageURL,
					VideoURL:     args.VideoURL,
					ReplyControl: args.ReplyControl,
					Carousel:     args.Carousel,
				})
				if err != nil {
					return nil, err
				}
				return mcpserver.TextResult(fmt.Sprintf("✅ Post published successfully!\n\nPost ID: %s\nText: %s",
					id, postExcerpt(args.Text))), nil
			}),

		mcpserver.NewTool("threads_reply",
			fmt.Sprintf(`Reply to an existing Threads post.

Args:
  - thread_id (string, required): The ID of the thread to reply to
  - text (string, required): Reply text (max %d chars)

Returns:
  Published reply ID.

Rate Limit: Max 1000 replies per 24 hours.`, postCharLimit),
			mcpserver.Object(map[string]any{
				"thread_id": threadID("The ID of the thread to reply to"),
				"text":      postText(fmt.Sprintf("The reply text (max %d chars)", postCharLimit)),
			}, "thread_id", "text"),
			mcpserver.Mutating("Reply to Thread", false, false),
			func(ctx context.Context, args replyArgs) (*mcpserver.ToolCallResult, error) {
				id, err := c.Reply(ctx, args.ThreadID, args.Text)
				if err != nil {
					return nil, err
				}
				return mcpserver.TextResult(fmt.Sprintf("✅ Reply posted successfully!\n\nReply ID: %s\nIn reply to: %s\nText: %s",
					id, args.ThreadID, postExcerpt(args.Text))), nil
			}),
	}
}
