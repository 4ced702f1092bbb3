package models

import (
	"time"
)

// Channel kinds. The kind decides how long a cached live playlist stays
// fresh: news-style channels refresh on a much shorter TTL.
const (
	ChannelKindNews     = "news"
	ChannelKindStandard = "standard"
	ChannelKindCustom   = "custom"
)

// Channel represents a linear TV channel: a named, perpetually looping
// broadcast. Videos holds the static authored fallback playlist in playback
// order; dynamic channels may have it replaced by a live-fetched list of the
// same shape on every cache refresh.
type Channel struct {
	ID        string    `json:"id" gorm:"type:text;primaryKey;column:id" validate:"required"`
	Name      string    `json:"name" gorm:"type:text;not null;column:name" validate:"required,min=1,max=255"`
	Icon      *string   `json:"icon,omitempty" gorm:"type:text;column:icon"`
	Color     *string   `json:"color,omitempty" gorm:"type:text;column:color"`
	Category  string    `json:"category" gorm:"type:text;not null;default:general;column:category"`
	Kind      string    `json:"kind" gorm:"type:text;not null;default:standard;column:kind" validate:"oneof=news standard custom"`
	Params    *SearchParams `json:"params,omitempty" gorm:"serializer:json;column:params"`
	CreatedAt time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`

	// Populated by joins, not stored on the channel row
	Videos []*Video `json:"videos,omitempty" gorm:"-"`
}

// NewChannel creates a new Channel with timestamps set
func NewChannel(id, name, category, kind string) *Channel {
	now := time.Now().UTC()
	return &Channel{
		ID:        id,
		Name:      name,
		Category:  category,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SearchParams are the content parameters handed to the upstream fetcher.
// A channel carries defaults; a scheduled program may override them during
// its window.
type SearchParams struct {
	Query          string `json:"query,omitempty"`
	FeedURL        string `json:"feed_url,omitempty"`
	DurationClass  string `json:"duration_class,omitempty"`
	UploadRecency  string `json:"upload_recency,omitempty"`
	SortOrder      string `json:"sort_order,omitempty"`
	MinDurationSec int64  `json:"min_duration_sec,omitempty"`
	MaxDurationSec int64  `json:"max_duration_sec,omitempty"`
	Limit          int    `json:"limit,omitempty"`
}

// Merge overlays non-zero fields of the override onto a copy of the receiver.
func (p SearchParams) Merge(override *SearchParams) SearchParams {
	if override == nil {
		return p
	}
	merged := p
	if override.Query != "" {
		merged.Query = override.Query
	}
	if override.FeedURL != "" {
		merged.FeedURL = override.FeedURL
	}
	if override.DurationClass != "" {
		merged.DurationClass = override.DurationClass
	}
	if override.UploadRecency != "" {
		merged.UploadRecency = override.UploadRecency
	}
	if override.SortOrder != "" {
		merged.SortOrder = override.SortOrder
	}
	if override.MinDurationSec != 0 {
		merged.MinDurationSec = override.MinDurationSec
	}
	if override.MaxDurationSec != 0 {
		merged.MaxDurationSec = override.MaxDurationSec
	}
	if override.Limit != 0 {
		merged.Limit = override.Limit
	}
	return merged
}
