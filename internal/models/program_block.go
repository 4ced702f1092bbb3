package models

import (
	"time"

	"github.com/google/uuid"
)

// ProgramBlock is a scheduled programming window for a channel: on a given
// day of the week, between StartHour (inclusive) and EndHour (exclusive) in
// the viewer's local time, the named program's params override the channel's
// default content parameters.
type ProgramBlock struct {
	ID        uuid.UUID     `json:"id" gorm:"type:text;primaryKey;column:id"`
	ChannelID string        `json:"channel_id" gorm:"type:text;not null;index;column:channel_id" validate:"required"`
	DayOfWeek int           `json:"day_of_week" gorm:"type:integer;not null;column:day_of_week" validate:"gte=0,lte=6"` // 0 = Sunday
	StartHour int           `json:"start_hour" gorm:"type:integer;not null;column:start_hour" validate:"gte=0,lte=23"`
	EndHour   int           `json:"end_hour" gorm:"type:integer;not null;column:end_hour" validate:"gte=1,lte=24"`
	Name      string        `json:"name" gorm:"type:text;not null;column:name" validate:"required"`
	Params    *SearchParams `json:"params,omitempty" gorm:"serializer:json;column:params"`
	CreatedAt time.Time     `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
}

// NewProgramBlock creates a ProgramBlock with a generated UUID
func NewProgramBlock(channelID string, dayOfWeek, startHour, endHour int, name string, params *SearchParams) *ProgramBlock {
	return &ProgramBlock{
		ID:        uuid.New(),
		ChannelID: channelID,
		DayOfWeek: dayOfWeek,
		StartHour: startHour,
		EndHour:   endHour,
		Name:      name,
		Params:    params,
		CreatedAt: time.Now().UTC(),
	}
}
