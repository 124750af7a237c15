package threads

import "encoding/json"

// User is the authenticated Threads profile.
type User struct {
	ID                string `json:"id"`
	Username          string `json:"username,omitempty"`
	Name              string `json:"name,omitempty"`
	ProfilePictureURL string `json:"threads_profile_picture_url,omitempty"`
	Biography         string `json:"threads_biography,omitempty"`
	IsVerified        bool   `json:"is_verified,omitempty"`
}

// Media is a post.
type Media struct {
	ID           string       `json:"id"`
	MediaType    string       `json:"media_type,omitempty"`
	MediaURL     string       `json:"media_url,omitempty"`
	Text         string       `json:"text,omitempty"`
	Timestamp    string       `json:"timestamp,omitempty"`
	Permalink    string       `json:"permalink,omitempty"`
	Username     string       `json:"username,omitempty"`
	IsQuotePost  bool         `json:"is_quote_post,omitempty"`
	Shortcode    string       `json:"shortcode,omitempty"`
	ThumbnailURL string       `json:"thumbnail_url,omitempty"`
	Children     *Children    `json:"children,omitempty"`
	TopicTag     string       `json:"topic_tag,omitempty"`
}

// Children are the items of a carousel post.
type Children struct {
	Data []Media `json:"data"`
}

// Reply is a reply to a post.
type Reply struct {
	ID         string `json:"id"`
	Text       string `json:"text,omitempty"`
	Username   string `json:"username,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
	MediaType  string `json:"media_type,omitempty"`
	Permalink  string `json:"permalink,omitempty"`
	HideStatus string `json:"hide_status,omitempty"`
}

// Hidden reports whether the reply is hidden from other viewers.
func (r Reply) Hidden() bool {
	return r.HideStatus == "HIDDEN" || r.HideStatus == "COVERED"
}

// InsightValue is one data point of a metric.
type InsightValue struct {
	Value   json.Number `json:"value"`
	EndTime string      `json:"end_time,omitempty"`
}

// Insight is one engagement metric.
type Insight struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	Period      string         `json:"period,omitempty"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Values      []InsightValue `json:"values,omitempty"`
	TotalValue  *InsightValue  `json:"total_value,omitempty"`
}

// Label is the display name of the metric.
func (i Insight) Label() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

// Value is the first reported value, or "N/A".
func (i Insight) Value() string {
	switch {
	case len(i.Values) > 0 && i.Values[0].Value != "":
		return i.Values[0].Value.String()
	case i.TotalValue != nil && i.TotalValue.Value != "":
		return i.TotalValue.Value.String()
	default:
		return "N/A"
	}
}

// QuotaConfig describes a rolling quota window.
type QuotaConfig struct {
	QuotaTotal    int `json:"quota_total"`
	QuotaDuration int `json:"quota_duration"`
}

// PublishingLimit is the account's current posting quota.
type PublishingLimit struct {
	QuotaUsage      int          `json:"quota_usage"`
	Config          *QuotaConfig `json:"config,omitempty"`
	ReplyQuotaUsage int          `json:"reply_quota_usage"`
	ReplyConfig     *QuotaConfig `json:"reply_config,omitempty"`
}

// Cursors are paging cursors.
type Cursors struct {
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
}

// Paging links neighboring pages.
type Paging struct {
	Cursors  *Cursors `json:"cursors,omitempty"`
	Next     string   `json:"next,omitempty"`
	Previous string   `json:"previous,omitempty"`
}

// Page is a paginated collection.
type Page[T any] struct {
	Data   []T     `json:"data"`
	Paging *Paging `json:"paging,omitempty"`
}

// Container statuses reported while media is processed.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusFinished   = "FINISHED"
	StatusPublished  = "PUBLISHED"
	StatusError      = "ERROR"
	StatusExpired    = "EXPIRED"
)

// ContainerStatus is the processing state of a media container.
type ContainerStatus struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type idResponse struct {
	ID string `json:"id"`
}

type successResponse struct {
	Success bool `json:"success"`
}
