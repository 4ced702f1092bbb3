package models

import (
	"time"
)

// Settings represents viewer-facing configuration.
// Singleton table with only one row.
type Settings struct {
	ID          int       `json:"id" gorm:"type:integer;primaryKey;default:1;column:id"`
	LastChannel string    `json:"last_channel" gorm:"type:text;not null;default:'';column:last_channel"`
	Language    string    `json:"language" gorm:"type:text;not null;default:en;column:language"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// DefaultSettings returns settings with default values
func DefaultSettings() *Settings {
	return &Settings{
		ID:        1,
		Language:  "en",
		UpdatedAt: time.Now().UTC(),
	}
}
