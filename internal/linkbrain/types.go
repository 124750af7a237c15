package linkbrain

import "encoding/json"

// Clip is a saved bookmark.
type Clip struct {
	ID            string   `json:"id"`
	URL           string   `json:"url,omitempty"`
	Title         string   `json:"title,omitempty"`
	Summary       string   `json:"summary,omitempty"`
	Category      string   `json:"category,omitempty"`
	Platform      string   `json:"platform,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	KeyTakeaways  string   `json:"keyTakeaways,omitempty"`
	CollectionIDs []string `json:"collectionIds,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	IsFavorite    bool     `json:"isFavorite,omitempty"`
	IsReadLater   bool     `json:"isReadLater,omitempty"`
	IsArchived    bool     `json:"isArchived,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`

	// Full content, present only when requested with content=true.
	RawMarkdown     string `json:"rawMarkdown,omitempty"`
	ContentMarkdown string `json:"contentMarkdown,omitempty"`
	HTMLContent     string `json:"htmlContent,omitempty"`
}

// Collection is a folder of clips.
type Collection struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	IsPublic  bool   `json:"isPublic,omitempty"`
	ClipCount int    `json:"clipCount,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Category is a clip category with its usage count.
type Category struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	Count    int    `json:"count,omitempty"`
	IsCustom bool   `json:"isCustom,omitempty"`
}

// Tag is a keyword with the number of clips carrying it.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Webhook is an event subscription.
type Webhook struct {
	ID            string   `json:"id"`
	URL           string   `json:"url"`
	Events        []string `json:"events"`
	Label         string   `json:"label,omitempty"`
	Secret        string   `json:"secret,omitempty"`
	IsActive      bool     `json:"isActive,omitempty"`
	DeliveryCount int      `json:"deliveryCount,omitempty"`
	FailureCount  int      `json:"failureCount,omitempty"`
	LastDelivered string   `json:"lastDeliveredAt,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

// Meta is pagination metadata for list responses.
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// Page is one page of a list response.
type Page[T any] struct {
	Data []T   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Result is an upstream payload kept verbatim. AI outputs, bulk results and
// deletion acknowledgements vary in shape by action.
type Result = json.RawMessage

// ClipFilter narrows list_clips and search_clips.
type ClipFilter struct {
	Category       string `json:"category"`
	Platform       string `json:"platform"`
	CollectionID   string `json:"collectionId"`
	IsFavorite     *bool  `json:"isFavorite"`
	IsReadLater    *bool  `json:"isReadLater"`
	IsArchived     *bool  `json:"isArchived"`
	From           string `json:"from"`
	To             string `json:"to"`
	Search         string `json:"search"`
	Limit          int    `json:"limit"`
	Offset         int    `json:"offset"`
	Sort           string `json:"sort"`
	Order          string `json:"order"`
	IncludeContent bool   `json:"includeContent"`
}

// NewClip is the body for creating a clip.
type NewClip struct {
	URL           string   `json:"url"`
	Title         string   `json:"title,omitempty"`
	Summary       string   `json:"summary,omitempty"`
	Category      string   `json:"category,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	CollectionIDs []string `json:"collectionIds,omitempty"`
}

// ClipPatch carries only the fields the caller provided.
type ClipPatch struct {
	Title         *string   `json:"title,omitempty"`
	Summary       *string   `json:"summary,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	KeyTakeaways  *string   `json:"keyTakeaways,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Keywords      *[]string `json:"keywords,omitempty"`
	CollectionIDs *[]string `json:"collectionIds,omitempty"`
	IsFavorite    *bool     `json:"isFavorite,omitempty"`
	IsReadLater   *bool     `json:"isReadLater,omitempty"`
	IsArchived    *bool     `json:"isArchived,omitempty"`
}

// CollectionPatch carries the collection fields to create or change.
type CollectionPatch struct {
	Name     *string `json:"name,omitempty"`
	Color    *string `json:"color,omitempty"`
	IsPublic *bool   `json:"isPublic,omitempty"`
}

// BulkRequest is a bulk operation over many clips.
type BulkRequest struct {
	Action   string   `json:"action"`
	IDs      []string `json:"ids"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Value    *bool    `json:"value,omitempty"`
}

// TagQuery selects clips by keyword.
type TagQuery struct {
	Tags   []string `json:"tags"`
	Match  string   `json:"match"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}
