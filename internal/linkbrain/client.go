// Package linkbrain bridges the Linkbrain bookmarking API to MCP tools.
//
// Every request goes to <base>/api/v1 with the API key in the X-API-Key
// header. Responses use a {success, data, error, meta} envelope: a non-2xx
// status or success:false is a failure rendered as "[CODE] message", and on
// success the data member is unwrapped when present.
package linkbrain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/RobinCoderZhao/apibridge/pkg/apiclient"
	"github.com/RobinCoderZhao/apibridge/pkg/apierr"
)

const (
	// DefaultBaseURL is the hosted Linkbrain service.
	DefaultBaseURL = "https://linkbrain.cloud"

	pathPrefix = "/api/v1"

	// tagSamplePage is the number of recent clips list_tags aggregates over.
	tagSamplePage = 100
)

// Client calls the Linkbrain REST API.
type Client struct {
	api    *apiclient.Client
	logger *slog.Logger
}

// NewClient creates a Client for cred. cfg.BaseURL and cfg.PathPrefix are
// taken from cred and the fixed API prefix. A nil logger uses slog.Default.
func NewClient(cred apiclient.Credential, cfg apiclient.Config, logger *slog.Logger, opts ...apiclient.Option) *Client {
	cfg.BaseURL = cred.BaseURL()
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.PathPrefix = pathPrefix
	if logger == nil {
		logger = slog.Default()
	}

	opts = append([]apiclient.Option{apiclient.WithLogger(logger)}, opts...)
	return &Client{
		api:    apiclient.New(cfg, apiclient.HeaderAuth{Header: "X-API-Key", Value: cred.Secret()}, opts...),
		logger: logger,
	}
}

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
	Meta    *Meta           `json:"meta"`
}

// do sends req and returns the unwrapped payload and any pagination meta.
func (c *Client) do(ctx context.Context, req apiclient.Request) (json.RawMessage, *Meta, error) {
	resp, err := c.api.Do(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	if resp.OK() && len(bytes.TrimSpace(resp.Body)) == 0 {
		return json.RawMessage("{}"), nil, nil
	}

	var env envelope
	parseErr := json.Unmarshal(resp.Body, &env)

	if !resp.OK() || (parseErr == nil && env.Success != nil && !*env.Success) {
		var body *apiError
		if parseErr == nil {
			body = env.Error
		}
		classified := classify(resp.StatusCode, body)
		c.logger.Warn("linkbrain request failed",
			"method", req.Method, "path", req.Path, "status", resp.StatusCode, "code", classified.Code)
		return nil, nil, classified
	}

	if parseErr != nil {
		// A bare JSON array or scalar is still a usable payload.
		if json.Valid(resp.Body) {
			return resp.Body, nil, nil
		}
		return nil, nil, &apierr.Error{
			Kind:    apierr.KindUpstream,
			Message: fmt.Sprintf("[%s] invalid JSON response from API", unknownCode),
			Status:  resp.StatusCode,
			Code:    unknownCode,
			Err:     parseErr,
		}
	}

	if len(env.Data) > 0 {
		return env.Data, env.Meta, nil
	}
	return resp.Body, env.Meta, nil
}

func (c *Client) get(ctx context.Context, path string, q apiclient.Query) (json.RawMessage, *Meta, error) {
	return c.do(ctx, apiclient.Request{Method: http.MethodGet, Path: path, Query: q})
}

func (c *Client) send(ctx context.Context, method, path string, q apiclient.Query, body any) (json.RawMessage, error) {
	raw, _, err := c.do(ctx, apiclient.Request{Method: method, Path: path, Query: q, Body: body})
	return raw, err
}

// decode unmarshals an unwrapped payload into out.
func decode(raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return &apierr.Error{
			Kind:    apierr.KindUpstream,
			Message: fmt.Sprintf("[%s] unexpected response shape: %v", unknownCode, err),
			Err:     err,
		}
	}
	return nil
}

// decodeList accepts either a bare array or an object wrapping one in data.
func decodeList[T any](raw json.RawMessage, meta *Meta) (*Page[T], error) {
	trimmed := bytes.TrimSpace(raw)
	page := &Page[T]{Meta: meta}
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
	case trimmed[0] == '[':
		if err := decode(trimmed, &page.Data); err != nil {
			return nil, err
		}
	default:
		var wrapped Page[T]
		if err := decode(trimmed, &wrapped); err != nil {
			return nil, err
		}
		page.Data = wrapped.Data
		if page.Meta == nil {
			page.Meta = wrapped.Meta
		}
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return page, nil
}

func clipQuery(f ClipFilter) apiclient.Query {
	return apiclient.Query{}.
		Set("category", f.Category).
		Set("platform", f.Platform).
		Set("collectionId", f.CollectionID).
		SetBool("isFavorite", f.IsFavorite).
		SetBool("isReadLater", f.IsReadLater).
		SetBool("isArchived", f.IsArchived).
		Set("from", f.From).
		Set("to", f.To).
		Set("search", f.Search).
		SetInt("limit", f.Limit).
		SetInt("offset", f.Offset).
		Set("sort", f.Sort).
		Set("order", f.Order).
		SetFlag("content", f.IncludeContent)
}

// ── Clips ─────────────────────────────────────────

// ListClips returns one page of clips matching f.
func (c *Client) ListClips(ctx context.Context, f ClipFilter) (*Page[Clip], error) {
	raw, meta, err := c.get(ctx, "/clips", clipQuery(f))
	if err != nil {
		return nil, err
	}
	return decodeList[Clip](raw, meta)
}

// GetClip returns one clip's metadata.
func (c *Client) GetClip(ctx context.Context, id string) (*Clip, error) {
	return c.getClip(ctx, apiclient.Query{}.Set("id", id))
}

// GetClipContent returns one clip including its full extracted content.
func (c *Client) GetClipContent(ctx context.Context, id string) (*Clip, error) {
	return c.getClip(ctx, apiclient.Query{}.Set("id", id).SetFlag("content", true))
}

func (c *Client) getClip(ctx context.Context, q apiclient.Query) (*Clip, error) {
	raw, _, err := c.get(ctx, "/clips-detail", q)
	if err != nil {
		return nil, err
	}
	var clip Clip
	if err := decode(raw, &clip); err != nil {
		return nil, err
	}
	return &clip, nil
}

// CreateClip saves a URL. The service fills in whatever metadata is omitted.
func (c *Client) CreateClip(ctx context.Context, in NewClip) (*Clip, error) {
	raw, err := c.send(ctx, http.MethodPost, "/clips", nil, in)
	if err != nil {
		return nil, err
	}
	var clip Clip
	if err := decode(raw, &clip); err != nil {
		return nil, err
	}
	return &clip, nil
}

// UpdateClip changes only the fields set in patch.
func (c *Client) UpdateClip(ctx context.Context, id string, patch ClipPatch) (*Clip, error) {
	raw, err := c.send(ctx, http.MethodPatch, "/clips-detail", apiclient.Query{}.Set("id", id), patch)
	if err != nil {
		return nil, err
	}
	var clip Clip
	if err := decode(raw, &clip); err != nil {
		return nil, err
	}
	return &clip, nil
}

// DeleteClip permanently removes a clip.
func (c *Client) DeleteClip(ctx context.Context, id string) (Result, error) {
	return c.send(ctx, http.MethodDelete, "/clips-detail", apiclient.Query{}.Set("id", id), nil)
}

// SearchClips runs a full-text query. Only the category, platform,
// collection, favorite, read-later, paging and content fields of f apply.
func (c *Client) SearchClips(ctx context.Context, q string, f ClipFilter) (*Page[Clip], error) {
	query := apiclient.Query{}.
		Set("q", q).
		Set("category", f.Category).
		Set("platform", f.Platform).
		Set("collectionId", f.CollectionID).
		SetBool("isFavorite", f.IsFavorite).
		SetBool("isReadLater", f.IsReadLater).
		SetInt("limit", f.Limit).
		SetInt("offset", f.Offset).
		SetFlag("content", f.IncludeContent)
	raw, meta, err := c.get(ctx, "/search", query)
	if err != nil {
		return nil, err
	}
	return decodeList[Clip](raw, meta)
}

// ── Collections ───────────────────────────────────

// ListCollections returns every collection.
func (c *Client) ListCollections(ctx context.Context) (*Page[Collection], error) {
	raw, meta, err := c.get(ctx, "/collections", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Collection](raw, meta)
}

// CreateCollection creates a collection. patch.Name must be set.
func (c *Client) CreateCollection(ctx context.Context, patch CollectionPatch) (*Collection, error) {
	return c.writeCollection(ctx, http.MethodPost, nil, patch)
}

// UpdateCollection changes only the fields set in patch.
func (c *Client) UpdateCollection(ctx context.Context, id string, patch CollectionPatch) (*Collection, error) {
	return c.writeCollection(ctx, http.MethodPatch, apiclient.Query{}.Set("id", id), patch)
}

func (c *Client) writeCollection(ctx context.Context, method string, q apiclient.Query, patch CollectionPatch) (*Collection, error) {
	raw, err := c.send(ctx, method, "/collections", q, patch)
	if err != nil {
		return nil, err
	}
	var col Collection
	if err := decode(raw, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

// DeleteCollection removes a collection. Its clips are kept.
func (c *Client) DeleteCollection(ctx context.Context, id string) (Result, error) {
	return c.send(ctx, http.MethodDelete, "/collections", apiclient.Query{}.Set("id", id), nil)
}

// ── AI ─────────────────────────────────────────────

// GenerateContent produces a document of the given type from clips.
func (c *Client) GenerateContent(ctx context.Context, kind string, clipIDs []string, language string) (Result, error) {
	return c.ai(ctx, map[string]any{"action": "generate", "type": kind, "clipIds": clipIDs, "language": language})
}

// AnalyzeURL extracts metadata from a URL without saving it.
func (c *Client) AnalyzeURL(ctx context.Context, url string) (Result, error) {
	return c.ai(ctx, map[string]any{"action": "analyze", "url": url})
}

// Ask answers a question, optionally grounded on clips.
func (c *Client) Ask(ctx context.Context, message string, clipIDs []string, language string) (Result, error) {
	return c.ai(ctx, map[string]any{"action": "ask", "message": message, "clipIds": clipIDs, "language": language})
}

// Insights reports reading patterns over a period.
func (c *Client) Insights(ctx context.Context, period string, days int, language string) (Result, error) {
	return c.ai(ctx, map[string]any{"action": "insights", "period": period, "days": days, "language": language})
}

func (c *Client) ai(ctx context.Context, body map[string]any) (Result, error) {
	return c.send(ctx, http.MethodPost, "/ai", nil, compact(body))
}

// compact drops zero-valued optional members so they are absent from the
// request body rather than sent as "" or 0.
func compact(body map[string]any) map[string]any {
	for k, v := range body {
		switch val := v.(type) {
		case string:
			if val == "" {
				delete(body, k)
			}
		case int:
			if val == 0 {
				delete(body, k)
			}
		case []string:
			if len(val) == 0 {
				delete(body, k)
			}
		case nil:
			delete(body, k)
		}
	}
	return body
}

// ── Categories ────────────────────────────────────

// ListCategories returns categories with clip counts.
func (c *Client) ListCategories(ctx context.Context) (*Page[Category], error) {
	raw, meta, err := c.get(ctx, "/manage", apiclient.Query{}.Set("action", "categories"))
	if err != nil {
		return nil, err
	}
	return decodeList[Category](raw, meta)
}

// CreateCategory adds a custom category.
func (c *Client) CreateCategory(ctx context.Context, name, color string) (*Category, error) {
	body := compact(map[string]any{"name": name, "color": color})
	raw, err := c.send(ctx, http.MethodPost, "/manage", apiclient.Query{}.Set("action", "categories"), body)
	if err != nil {
		return nil, err
	}
	var cat Category
	if err := decode(raw, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// ── Tags ──────────────────────────────────────────

// ListTags approximates tag frequencies from the most recent page of clips.
// The API has no tag index, so tags only present on older clips are missed.
func (c *Client) ListTags(ctx context.Context, limit int) ([]Tag, error) {
	page, err := c.ListClips(ctx, ClipFilter{Limit: tagSamplePage})
	if err != nil {
		return nil, err
	}
	keywords := make([][]string, 0, len(page.Data))
	for _, clip := range page.Data {
		keywords = append(keywords, clip.Keywords)
	}
	return AggregateTags(keywords, limit), nil
}

// SearchByTags returns clips carrying the given tags.
func (c *Client) SearchByTags(ctx context.Context, tq TagQuery) (*Page[Clip], error) {
	query := apiclient.Query{}.
		Set("action", "tags").
		SetList("tags", tq.Tags).
		Set("match", tq.Match).
		SetInt("limit", tq.Limit).
		SetInt("offset", tq.Offset)
	raw, meta, err := c.get(ctx, "/manage", query)
	if err != nil {
		return nil, err
	}
	return decodeList[Clip](raw, meta)
}

// ── Bulk ──────────────────────────────────────────

// BulkUpdate applies one action to many clips.
func (c *Client) BulkUpdate(ctx context.Context, req BulkRequest) (Result, error) {
	return c.send(ctx, http.MethodPost, "/manage", apiclient.Query{}.Set("action", "bulk"), req)
}

// ── Webhooks ──────────────────────────────────────

// ListWebhooks returns webhook subscriptions with delivery statistics.
func (c *Client) ListWebhooks(ctx context.Context) (*Page[Webhook], error) {
	raw, meta, err := c.get(ctx, "/manage", apiclient.Query{}.Set("action", "webhooks"))
	if err != nil {
		return nil, err
	}
	return decodeList[Webhook](raw, meta)
}

// CreateWebhook subscribes url to events. The result carries the signing
// secret, which is only returned once.
func (c *Client) CreateWebhook(ctx context.Context, url string, events []string, label string) (*Webhook, error) {
	body := compact(map[string]any{"url": url, "events": events, "label": label})
	raw, err := c.send(ctx, http.MethodPost, "/manage", apiclient.Query{}.Set("action", "webhooks"), body)
	if err != nil {
		return nil, err
	}
	var hook Webhook
	if err := decode(raw, &hook); err != nil {
		return nil, err
	}
	return &hook, nil
}

// DeleteWebhook removes a subscription.
func (c *Client) DeleteWebhook(ctx context.Context, id string) (Result, error) {
	return c.send(ctx, http.MethodDelete, "/manage", apiclient.Query{}.Set("action", "webhooks").Set("id", id), nil)
}
