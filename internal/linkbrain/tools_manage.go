package linkbrain

import (
	"context"

	"github.com/RobinCoderZhao/apibridge/pkg/mcpserver"
	"github.com/RobinCoderZhao/apibridge/pkg/render"
)

type listArgs struct {
	formatted
}

type collectionArgs struct {
	ID string `json:"id"`
	CollectionPatch
}

type categoryArgs struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type listTagsArgs struct {
	Limit int `json:"limit"`
	formatted
}

type searchByTagsArgs struct {
	TagQuery
	formatted
}

type webhookArgs struct {
	URL    string   `json:"url"`
	Events []string `json:"events"`
	Label  string   `json:"label"`
}

func collectionTools(c *Client) []mcpserver.ToolHandler {
	return []mcpserver.ToolHandler{
		mcpserver.NewTool("list_collections",
			"List all collections (folders for organizing clips).",
			mcpserver.Object(withFormat(map[string]any{})),
			mcpserver.ReadOnly("List collections"),
			func(ctx context.Context, args listArgs) (*mcpserver.ToolCallResult, error) {
				page, err := c.ListCollections(ctx)
				if err != nil {
					return nil, err
				}
				return listResult(args.format(), "collections", page, formatCollections)
			}),

		mcpserver.NewTool("create_collection",
			"Create a new collection (folder) for organizing clips.",
			mcpserver.Object(map[string]any{
				"name":     mcpserver.NonEmpty("Collection name"),
				"color":    mcpserver.String(`Color hex code (e.g., "#FF5733")`),
				"isPublic": mcpserver.Bool("Whether the collection is publicly shareable"),
			}, "name"),
			mcpserver.Mutating("Create collection", false, false),
			func(ctx context.Context, args collectionArgs) (*mcpserver.ToolCallResult, error) {
				col, err := c.CreateCollection(ctx, args.CollectionPatch)
				if err != nil {
					return nil, err
				}
				return mcpserver.SuccessResult(col), nil
			}),

		mcpserver.NewTool("update_collection",
			"Update a collection's name, color, or visibility.",
			mcpserver.Object(map[string]any{
				"id":       mcpserver.NonEmpty("Collection ID"),
				"name":     mcpserver.String("New name"),
				"color":    mcpserver.String("New color hex code"),
				"isPublic": mcpserver.Bool("New visibility setting"),
			}, "id"),
			mcpserver.Mutating("Update collection", true, false),
			func(ctx context.Context, args collectionArgs) (*mcpserver.ToolCallResult, error) {
				col, err := c.UpdateCollection(ctx, args.ID, args.CollectionPatch)
				if err != nil {
					return nil, err
				}
				return mcpserver.SuccessResult(col), nil
			}),

		mcpserver.NewTool("delete_collection",
			"Delete a collection. Clips in the collection are not deleted, only the collection reference is removed.",
			mcpserver.Object(map[string]any{"id": mcpserver.NonEmpty("Collection ID to delete")}, "id"),
			mcpserver.Mutating("Delete collection", true, true),
			func(ctx context.Context, args idArgs) (*mcpserver.ToolCallResult, error) {
				res, err := c.DeleteCollection(ctx, args.ID)
				if err != nil {
					return nil, err
				}
				return mcpserver.SuccessResult(res), nil
			}),
	}
}

func manageTools(c *Client) []mcpserver.ToolHandler {
	return []mcpserver.ToolHandler{
		mcpserver.NewTool("list_categories",
			"List all categories with clip counts, sorted by frequency.",
			mcpserver.Object(withFormat(map[string]any{})),
			mcpserver.ReadOnly("List categories"),
			func(ctx context.Context, args listArgs) (*mcpserver.ToolCallResult, error) {
				page, err := c.ListCategories(ctx)
				if err != nil {
					return nil, err
				}
				return listResult(args.format(), "categories", page, formatCategories)
			}),

		mcpserver.NewTool("create_category",
			"Create a new custom category for organizing clips.",
			mcpserver.Object(map[string]any{
				"name":  mcpserver.NonEmpty("Category name"),
				"color": mcpserver.String(`Color hex code (e.g., "#FF5733")`),
			}, "name"),
			mcpserver.Mutating("Create category", false, false),
			func(ctx context.Context, args categoryArgs) (*mcpserver.ToolCallResult, error) {
				cat, err := c.CreateCategory(ctx, args.Name, args.Color)
				if err != nil {
					return nil, err
				}
				return mcpserver.SuccessResult(cat), nil
			}),

		mcpserver.NewTool("list_tags",
			"List tags (keywords) sorted by frequency. This is an approximation: counts are aggregated from the keywords "+
				"of the 100 most recent clips only, not from a global tag index, so tags used only on older clips are missing.",
			mcpserver.Object(withFormat(map[string]any{
				"limit": mcpserver.Int("Max tags to return", 1, 100),
			})),
			mcpserver.ReadOnly("List tags"),
			func(ctx context.Context, args listTagsArgs) (*mcpserver.ToolCallResult, error) {
				tags, err := c.ListTags(ctx, args.Limit)
				if err != nil {
					return nil, err
				}
				if len(tags) == 0 {
					return mcpserver.TextResult(render.Empty("tags")), nil
				}
				return itemResult(args.format(), tags, func() string { return formatTags(tags) })
			}),

		mcpserver.NewTool("search_by_tags",
			"Find clips that have specific tags/keywords. Supports AND/OR matching.",
			mcpserver.Object(withFormat(map[string]any{
				"tags":   mcpserver.Strings("Tags to search for", 1, 0),
				"match":  mcpserver.Enum(`Match mode: "all" (AND) or "any" (OR, default)`, "all", "any"),
				"limit":  mcpserver.Int("Number of results", 1, 50),
				"offset": mcpserver.Int("Pagination offset", 0, 0),
			}), "tags"),
			mcpserver.ReadOnly("Search by tags"),
			func(ctx context.Context, args searchByTagsArgs) (*mcpserver.ToolCallResult, error) {
				page, err := c.SearchByTags(ctx, args.TagQuery)
				if err != nil {
					return nil, err
				}
				return listResult(args.format(), "clips", page, func(p *Page[Clip]) string {
					return formatClips("Clips tagged "+hashtags(args.Tags), p)
				})
			}),

		mcpserver.NewTool("bulk_update",
			"Perform bulk operations on multiple clips at once. Actions: delete, move (change category), tag (add keywords), "+
				"favorite, archive.",
			mcpserver.Object(map[string]any{
				"action":   mcpserver.Enum("Bulk action to perform", "delete", "move", "tag", "favorite", "archive"),
				"ids":      mcpserver.Strings("Clip IDs to update", 1, 100),
				"category": mcpserver.String(`Target category (required for "move" action)`),
				"tags":     mcpserver.Strings(`Tags to add (required for "tag" action)`, 0, 0),
				"value":    mcpserver.Bool(`Boolean value for "favorite" and "archive" actions (default: true)`),
			}, "action", "ids"),
			mcpserver.Mutating("Bulk update clips", false, true),
			func(ctx context.Context, args BulkRequest) (*mcpserver.ToolCallResult, error) {
				res, err := c.BulkUpdate(ctx, args)
				if err != nil {
					return nil, err
				}
				return mcpserver.SuccessResult(res), nil
			}),

		mcpserver.NewTool("list_webhooks",
			"List all webhook subscriptions with delivery statistics.",
			mcpserver.Object(withFormat(map[string]any{})),
			mcpserver.ReadOnly("List webhooks"),
			func(ctx context.Context, args listArgs) (*mcpserver.ToolCallResult, error) {
				page, err := c.ListWebhooks(ctx)
				if err != nil {
					return nil, err
				}
				return listResult(args.format(), "webhooks", page, formatWebhooks)
			}),

		mcpserver.NewTool("create_webhook",
			"Create a webhook subscription. The URL must be HTTPS and reachable. Returns a secret for verifying webhook "+
				"signatures (HMAC-SHA256).",
			mcpserver.Object(map[string]any{
				"url": mcpserver.URI("Webhook URL (must be HTTPS)"),
				"events": mcpserver.Strings("Events to subscribe to: clip.created, clip.updated, clip.deleted, clip.analyzed, "+
					"content.generated, collection.created, collection.updated", 1, 0),
				"label": mcpserver.StringLen("Human-readable label for this webhook", 0, 50),
			}, "url", "events"),
			mcpserver.Mutating("Create webhook", false, false),
			func(ctx context.Context, args webhookArgs) (*mcpserver.ToolCallResult, error) {
				hook, err := c.CreateWebhook(ctx, args.URL, args.Events, args.Label)
				if err != nil {
					return nil, err
				}
				return mcpserver.SuccessResult(hook), nil
			}),

		mcpserver.NewTool("delete_webhook",
			"Delete a webhook subscription.",
			mcpserver.Object(map[string]any{"id": mcpserver.NonEmpty("Webhook subscription ID to delete")}, "id"),
			mcpserver.Mutating("Delete webhook", true, true),
			func(ctx context.Context, args idArgs) (*mcpserver.ToolCallResult, error) {
				res, err := c.DeleteWebhook(ctx, args.ID)
				if err != nil {
					return nil, err
				}
				return mcpserver.SuccessResult(res), nil
			}),
	}
}
