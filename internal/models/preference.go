package models

import (
	"time"
)

// Preference actions. "up" and "more" boost, "down" suppresses, "never"
// blocks the video outright.
const (
	ActionUp    = "up"
	ActionDown  = "down"
	ActionMore  = "more"
	ActionNever = "never"
)

// ValidAction reports whether s is one of the recognized preference actions.
func ValidAction(s string) bool {
	switch s {
	case ActionUp, ActionDown, ActionMore, ActionNever:
		return true
	}
	return false
}

// Preference is one entry of the per-video feedback log. The log is keyed by
// VideoID: recording a preference for a video the viewer already rated
// overwrites the previous entry. The tuning profile is always rebuilt as a
// pure fold over this log, never patched incrementally.
type Preference struct {
	VideoID   string    `json:"video_id" gorm:"type:text;primaryKey;column:video_id" validate:"required"`
	UserID    string    `json:"user_id" gorm:"type:text;not null;default:local;column:user_id"`
	Action    string    `json:"action" gorm:"type:text;not null;column:action" validate:"oneof=up down more never"`
	ChannelID *string   `json:"channel_id,omitempty" gorm:"type:text;column:channel_id"`
	Keywords  []string  `json:"keywords,omitempty" gorm:"serializer:json;column:keywords"`
	UpdatedAt time.Time `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}
