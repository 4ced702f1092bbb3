package models

import (
	"fmt"
	"time"
)

// Video represents a single YouTube video as used by the scheduler. The ID is
// the opaque platform identifier, not a UUID. Duration must be positive for a
// video to participate in clock-modulo scheduling.
type Video struct {
	ID        string    `json:"id" gorm:"type:text;primaryKey;column:id" validate:"required"`
	ChannelID string    `json:"channel_id" gorm:"type:text;not null;index;column:channel_id"`
	Title     string    `json:"title" gorm:"type:text;not null;column:title"`
	Duration  int64     `json:"duration" gorm:"type:integer;not null;column:duration" validate:"required,gt=0"` // seconds
	Position  int       `json:"position" gorm:"type:integer;not null;default:0;column:position" validate:"gte=0"`
	CreatedAt time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
}

// NewVideo creates a Video with the creation timestamp set
func NewVideo(id, channelID, title string, duration int64, position int) *Video {
	return &Video{
		ID:        id,
		ChannelID: channelID,
		Title:     title,
		Duration:  duration,
		Position:  position,
		CreatedAt: time.Now().UTC(),
	}
}

// DurationString returns duration in HH:MM:SS format
func (v *Video) DurationString() string {
	hours := v.Duration / 3600
	minutes := (v.Duration % 3600) / 60
	seconds := v.Duration % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// TotalDuration sums the durations of a playlist in seconds.
func TotalDuration(videos []*Video) int64 {
	var total int64
	for _, v := range videos {
		total += v.Duration
	}
	return total
}
