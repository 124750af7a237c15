// Package threads bridges the Meta Threads Graph API to MCP tools.
//
// The access token travels as the access_token query parameter on every
// request. Successful responses are bare JSON; failures carry a Graph
// {"error": {...}} body that classify maps to one apierr kind.
package threads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/RobinCoderZhao/apibridge/pkg/apiclient"
	"github.com/RobinCoderZhao/apibridge/pkg/apierr"
)

// DefaultBaseURL is the Graph API root for Threads.
const DefaultBaseURL = "https://graph.threads.net/v1.0"

const (
	profileFields = "id,username,name,threads_profile_picture_url,threads_biography,is_verified"
	threadFields  = "id,media_type,text,timestamp,permalink,username,is_quote_post,shortcode,topic_tag"
	searchFields  = "id,media_type,text,timestamp,permalink,username,topic_tag"
	replyFields   = "id,text,username,timestamp,media_type,permalink,hide_status"
	statusFields  = "id,status,error_message"
	limitFields   = "quota_usage,config,reply_quota_usage,reply_config"

	mediaMetrics = "views,likes,replies,reposts,quotes"
	userMetrics  = mediaMetrics + ",followers_count"
)

// Container media types.
const (
	MediaText     = "TEXT"
	MediaImage    = "IMAGE"
	MediaVideo    = "VIDEO"
	MediaCarousel = "CAROUSEL"
)

// Client calls the Threads Graph API on behalf of one access token.
type Client struct {
	api     *apiclient.Client
	logger  *slog.Logger
	publish PublishConfig
	sleep   func(ctx context.Context, d time.Duration) error

	apiOpts []apiclient.Option

	mu     sync.Mutex
	userID string
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithPublishConfig sets how CreatePost and Reply wait between the two
// publishing steps.
func WithPublishConfig(p PublishConfig) ClientOption {
	return func(c *Client) { c.publish = p.withDefaults() }
}

// WithSleep replaces the wait used between publishing steps.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) ClientOption {
	return func(c *Client) { c.sleep = fn }
}

// WithTransport passes options to the underlying HTTP client.
func WithTransport(opts ...apiclient.Option) ClientOption {
	return func(c *Client) { c.apiOpts = append(c.apiOpts, opts...) }
}

// NewClient creates a Client for cred. A nil logger uses slog.Default.
func NewClient(cred apiclient.Credential, cfg apiclient.Config, logger *slog.Logger, opts ...ClientOption) *Client {
	cfg.BaseURL = cred.BaseURL()
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.PathPrefix = ""
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		logger:  logger,
		publish: DefaultPublishConfig(),
		sleep:   sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}
	auth := apiclient.QueryAuth{Param: "access_token", Value: cred.Secret()}
	c.api = apiclient.New(cfg, auth, append([]apiclient.Option{apiclient.WithLogger(logger)}, c.apiOpts...)...)
	return c
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return apierr.Classify(ctx.Err())
	case <-t.C:
		return nil
	}
}

// request sends one call and decodes a successful body into out (when non-nil).
func (c *Client) request(ctx context.Context, method, endpoint string, q apiclient.Query, out any) error {
	resp, err := c.api.Do(ctx, apiclient.Request{Method: method, Path: endpoint, Query: q})
	if err != nil {
		return err
	}
	if !resp.OK() {
		classified := classify(resp.StatusCode, resp.Body)
		c.logger.Warn("threads request failed",
			"method", method, "endpoint", endpoint, "status", resp.StatusCode, "kind", classified.Kind)
		return classified
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return &apierr.Error{
			Kind:    apierr.KindUpstream,
			Message: fmt.Sprintf("Threads API error: unexpected response shape: %v", err),
			Status:  resp.StatusCode,
			Err:     err,
		}
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Me returns the authenticated profile and remembers its id.
func (c *Client) Me(ctx context.Context, fields string) (*User, error) {
	var u User
	if err := c.request(ctx, http.MethodGet, "me", apiclient.Query{"fields": orDefault(fields, profileFields)}, &u); err != nil {
		return nil, err
	}
	if u.ID != "" {
		c.mu.Lock()
		c.userID = u.ID
		c.mu.Unlock()
	}
	return &u, nil
}

// UserID returns the cached account id, resolving it on first use. The lock
// covers only the field; concurrent first callers may both fetch it.
func (c *Client) UserID(ctx context.Context) (string, error) {
	c.mu.Lock()
	id := c.userID
	c.mu.Unlock()
	if id != "" {
		return id, nil
	}

	u, err := c.Me(ctx, "id")
	if err != nil {
		return "", err
	}
	if u.ID == "" {
		return "", apierr.New(apierr.KindUpstream, "Threads API error: profile response has no id")
	}
	return u.ID, nil
}

// Container describes a media container to create.
type Container struct {
	Text           string
	ImageURL       string
	VideoURL       string
	ReplyToID      string
	ReplyControl   string
	Carousel       bool
	Children       []string
	IsCarouselItem bool
}

func (ct Container) mediaType() string {
	switch {
	case ct.Carousel:
		return MediaCarousel
	case ct.ImageURL != "":
		return MediaImage
	case ct.VideoURL != "":
		return MediaVideo
	default:
		return MediaText
	}
}

// CreateContainer performs step one of publishing and returns the container id.
func (c *Client) CreateContainer(ctx context.Context, ct Container) (string, error) {
	uid, err := c.UserID(ctx)
	if err != nil {
		return "", err
	}
	q := apiclient.Query{}.
		Set("text", ct.Text).
		Set("image_url", ct.ImageURL).
		Set("video_url", ct.VideoURL).
		Set("reply_to_id", ct.ReplyToID).
		Set("reply_control", ct.ReplyControl).
		Set("media_type", ct.mediaType()).
		SetFlag("is_carousel_item", ct.IsCarouselItem)
	if ct.Carousel {
		q.SetList("children", ct.Children)
	}

	var out idResponse
	if err := c.request(ctx, http.MethodPost, uid+"/threads", q, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// ContainerStatus reports whether a container is ready to publish.
func (c *Client) ContainerStatus(ctx context.Context, containerID string) (*ContainerStatus, error) {
	var st ContainerStatus
	if err := c.request(ctx, http.MethodGet, containerID, apiclient.Query{"fields": statusFields}, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// PublishContainer performs step two of publishing and returns the post id.
func (c *Client) PublishContainer(ctx context.Context, containerID string) (string, error) {
	uid, err := c.UserID(ctx)
	if err != nil {
		return "", err
	}
	var out idResponse
	if err := c.request(ctx, http.MethodPost, uid+"/threads_publish", apiclient.Query{"creation_id": containerID}, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// ThreadFilter narrows a listing of the account's posts.
type ThreadFilter struct {
	Fields string
	Limit  int
	Since  string
	Until  string
}

// UserThreads lists the account's own posts.
func (c *Client) UserThreads(ctx context.Context, f ThreadFilter) (*Page[Media], error) {
	uid, err := c.UserID(ctx)
	if err != nil {
		return nil, err
	}
	q := apiclient.Query{"fields": orDefault(f.Fields, threadFields)}.
		SetInt("limit", f.Limit).
		Set("since", f.Since).
		Set("until", f.Until)

	var page Page[Media]
	if err := c.request(ctx, http.MethodGet, uid+"/threads", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Thread fetches one post.
func (c *Client) Thread(ctx context.Context, id, fields string) (*Media, error) {
	var m Media
	if err := c.request(ctx, http.MethodGet, id, apiclient.Query{"fields": orDefault(fields, threadFields)}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Replies lists the direct replies to a post.
func (c *Client) Replies(ctx context.Context, id string, reverse bool) (*Page[Reply], error) {
	return c.replies(ctx, id+"/replies", reverse)
}

// Conversation lists every reply in a post's thread, nested replies included.
func (c *Client) Conversation(ctx context.Context, id string, reverse bool) (*Page[Reply], error) {
	return c.replies(ctx, id+"/conversation", reverse)
}

func (c *Client) replies(ctx context.Context, endpoint string, reverse bool) (*Page[Reply], error) {
	q := apiclient.Query{"fields": replyFields}.SetFlag("reverse", reverse)
	var page Page[Reply]
	if err := c.request(ctx, http.MethodGet, endpoint, q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// HideReply hides or unhides a reply on one of the account's posts.
func (c *Client) HideReply(ctx context.Context, replyID string, hide bool) (bool, error) {
	var out successResponse
	if err := c.request(ctx, http.MethodPost, replyID+"/manage_reply", apiclient.Query{}.SetBool("hide", &hide), &out); err != nil {
		return false, err
	}
	return out.Success, nil
}

// MediaInsights returns engagement metrics for one post.
func (c *Client) MediaInsights(ctx context.Context, id, metrics string) ([]Insight, error) {
	var page Page[Insight]
	if err := c.request(ctx, http.MethodGet, id+"/insights", apiclient.Query{"metric": orDefault(metrics, mediaMetrics)}, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// UserInsights returns account-level metrics. since and until are unix
// seconds; zero leaves the bound open.
func (c *Client) UserInsights(ctx context.Context, metrics string, since, until int64) ([]Insight, error) {
	uid, err := c.UserID(ctx)
	if err != nil {
		return nil, err
	}
	q := apiclient.Query{"metric": orDefault(metrics, userMetrics)}.
		SetInt64("since", since).
		SetInt64("until", until)

	var page Page[Insight]
	if err := c.request(ctx, http.MethodGet, uid+"/threads_insights", q, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// PublishingLimit returns the account's rolling posting quota.
func (c *Client) PublishingLimit(ctx context.Context) (*PublishingLimit, error) {
	uid, err := c.UserID(ctx)
	if err != nil {
		return nil, err
	}
	var page Page[PublishingLimit]
	if err := c.request(ctx, http.MethodGet, uid+"/threads_publishing_limit", apiclient.Query{"fields": limitFields}, &page); err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return &PublishingLimit{}, nil
	}
	return &page.Data[0], nil
}

// DeleteThread removes one of the account's posts.
func (c *Client) DeleteThread(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, id, nil, nil)
}

// SearchFilter narrows a keyword search.
type SearchFilter struct {
	MediaType string
	Since     string
	Until     string
}

// Search finds public posts matching query.
func (c *Client) Search(ctx context.Context, query string, f SearchFilter) (*Page[Media], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apierr.Validation("search query must not be blank")
	}
	q := apiclient.Query{"q": query, "fields": searchFields}.
		Set("media_type", f.MediaType).
		Set("since", f.Since).
		Set("until", f.Until)

	var page Page[Media]
	if err := c.request(ctx, http.MethodGet, "keyword_search", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
