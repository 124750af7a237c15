package linkbrain

import (
	"context"

	"github.com/RobinCoderZhao/apibridge/pkg/mcpserver"
)

type listClipsArgs struct {
	ClipFilter
	formatted
}

type idArgs struct {
	ID string `json:"id"`
	formatted
}

type searchClipsArgs struct {
	Q string `json:"q"`
	ClipFilter
	formatted
}

type createClipArgs struct {
	NewClip
}

type updateClipArgs struct {
	ID string `json:"id"`
	ClipPatch
}

func filterProps() map[string]any {
	return map[string]any{
		"category":       mcpserver.String(`Filter by category (e.g., "AI", "Design")`),
		"platform":       mcpserver.String(`Filter by platform (e.g., "youtube", "twitter")`),
		"collectionId":   mcpserver.String("Filter by collection ID"),
		"isFavorite":     mcpserver.Bool("Filter favorites only"),
		"isReadLater":    mcpserver.Bool("Filter read-later only"),
		"offset":         mcpserver.Int("Pagination offset", 0, 0),
		"includeContent": mcpserver.Bool("Include full original content (rawMarkdown, contentMarkdown, htmlContent) in response. Default false."),
	}
}

func clipTools(c *Client) []mcpserver.ToolHandler {
	listProps := filterProps()
	listProps["isArchived"] = mcpserver.Bool("Filter archived only")
	listProps["from"] = mcpserver.String(`Start date (ISO-8601, e.g., "2025-01-01")`)
	listProps["to"] = mcpserver.String(`End date (ISO-8601, e.g., "2025-12-31")`)
	listProps["search"] = mcpserver.String("Text search across title, summary, keywords")
	listProps["limit"] = mcpserver.Int("Number of results (default 20, max 100)", 1, 100)
	listProps["sort"] = mcpserver.String(`Sort field (e.g., "createdAt", "title")`)
	listProps["order"] = mcpserver.Enum("Sort order", "asc", "desc")

	searchProps := filterProps()
	searchProps["q"] = mcpserver.NonEmpty("Search query")
	searchProps["limit"] = mcpserver.Int("Number of results (default 20, max 50)", 1, 50)

	idSchema := func(desc string) map[string]any {
		return mcpserver.Object(withFormat(map[string]any{"id": mcpserver.NonEmpty(desc)}), "id")
	}

	return []mcpserver.ToolHandler{
		mcpserver.NewTool("list_clips",
			"List saved clips with optional filters. Supports category, platform, collection, favorites, read-later, archived, "+
				"date range, text search, pagination, and sorting. Use includeContent=true to get the full original text "+
				"(rawMarkdown) of each clip in the response.",
			mcpserver.Object(withFormat(listProps)),
			mcpserver.ReadOnly("List clips"),
			func(ctx context.Context, args listClipsArgs) (*mcpserver.ToolCallResult, error) {
				page, err := c.ListClips(ctx, args.ClipFilter)
				if err != nil {
					return nil, err
				}
				return listResult(args.format(), "clips", page, func(p *Page[Clip]) string {
					return formatClips("Clips", p)
				})
			}),

		mcpserver.NewTool("get_clip",
			"Get detailed information about a specific clip (title, URL, summary, keywords, notes, category, etc.).",
			idSchema("Clip ID"),
			mcpserver.ReadOnly("Get clip"),
			func(ctx context.Context, args idArgs) (*mcpserver.ToolCallResult, error) {
				clip, err := c.GetClip(ctx, args.ID)
				if err != nil {
					return nil, err
				}
				return itemResult(args.format(), clip, func() string { return formatClip(clip) })
			}),

		mcpserver.NewTool("get_clip_content",
			"Get the full original content of a clip (the complete text extracted from the source URL, in markdown/HTML format).",
			idSchema("Clip ID"),
			mcpserver.ReadOnly("Get clip content"),
			func(ctx context.Context, args idArgs) (*mcpserver.ToolCallResult, error) {
				clip, err := c.GetClipContent(ctx, args.ID)
				if err != nil {
					return nil, err
				}
				return itemResult(args.format(), clip, func() string { return formatClipContent(clip) })
			}),

		mcpserver.NewTool("search_clips",
			"Search clips by keyword query. Searches across titles, summaries, keywords, notes, and content. Supports filters. "+
				"Use includeContent=true to get the full original text (rawMarkdown) of each clip.",
			mcpserver.Object(withFormat(searchProps), "q"),
			mcpserver.ReadOnly("Search clips"),
			func(ctx context.Context, args searchClipsArgs) (*mcpserver.ToolCallResult, error) {
				page, err := c.SearchClips(ctx, args.Q, args.ClipFilter)
				if err != nil {
					return nil, err
				}
				return listResult(args.format(), "clips", page, func(p *Page[Clip]) string {
					return formatClips("Search results for '"+args.Q+"'", p)
				})
			}),

		mcpserver.NewTool("create_clip",
			"Save a new clip (bookmark) from a URL. The URL is automatically analyzed to extract title, summary, keywords, "+
				"and category. You can optionally override these.",
			mcpserver.Object(map[string]any{
				"url":           mcpserver.URI("URL to save"),
				"title":         mcpserver.String("Custom title (auto-extracted if omitted)"),
				"summary":       mcpserver.String("Custom summary"),
				"category":      mcpserver.String("Category name"),
				"keywords":      mcpserver.Strings("Keywords/tags", 0, 0),
				"notes":         mcpserver.String("Personal notes"),
				"collectionIds": mcpserver.Strings("Collection IDs to add to", 0, 0),
			}, "url"),
			mcpserver.Mutating("Create clip", false, false),
			func(ctx context.Context, args createClipArgs) (*mcpserver.ToolCallResult, error) {
				clip, err := c.CreateClip(ctx, args.NewClip)
				if err != nil {
					return nil, err
				}
				return mcpserver.SuccessResult(clip), nil
			}),

		mcpserver.NewTool("update_clip",
			"Update a clip's metadata (title, summary, notes, category, keywords, collections, favorite/read-later/archived status, etc.).",
			mcpserver.Object(map[string]any{
				"id":            mcpserver.NonEmpty("Clip ID"),
				"title":         mcpserver.String("New title"),
				"summary":       mcpserver.String("New summary"),
				"notes":         mcpserver.String("New notes"),
				"keyTakeaways":  mcpserver.String("New key takeaways"),
				"category":      mcpserver.String("New category"),
				"keywords":      mcpserver.Strings("New keywords", 0, 0),
				"collectionIds": mcpserver.Strings("New collection IDs", 0, 0),
				"isFavorite":    mcpserver.Bool("Set favorite status"),
				"isReadLater":   mcpserver.Bool("Set read-later status"),
				"isArchived":    mcpserver.Bool("Set archived status"),
			}, "id"),
			mcpserver.Mutating("Update clip", true, false),
			func(ctx context.Context, args updateClipArgs) (*mcpserver.ToolCallResult, error) {
				clip, err := c.UpdateClip(ctx, args.ID, args.ClipPatch)
				if err != nil {
					return nil, err
				}
				return mcpserver.SuccessResult(clip), nil
			}),

		mcpserver.NewTool("delete_clip",
			"Permanently delete a clip. Also removes it from any collections.",
			mcpserver.Object(map[string]any{"id": mcpserver.NonEmpty("Clip ID to delete")}, "id"),
			mcpserver.Mutating("Delete clip", true, true),
			func(ctx context.Context, args idArgs) (*mcpserver.ToolCallResult, error) {
				res, err := c.DeleteClip(ctx, args.ID)
				if err != nil {
					return nil, err
				}
				return mcpserver.SuccessResult(res), nil
			}),
	}
}
