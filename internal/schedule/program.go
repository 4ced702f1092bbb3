package schedule

import (
	"sort"
	"time"

	"github.com/wfedor/telecast/internal/models"
)

// Program is the active programming block for a channel: a display name plus
// the content parameters that override the channel's defaults while the
// block is on air.
type Program struct {
	Name   string               `json:"name"`
	Params *models.SearchParams `json:"params,omitempty"`

	// Scheduled is false for the synthesized default program that fills
	// schedule gaps
	Scheduled bool `json:"scheduled"`
}

// UpcomingProgram is one entry of the 7-day schedule projection. Display
// only; scheduling decisions always go through ResolveProgram.
type UpcomingProgram struct {
	DayOffset int    `json:"day_offset"` // 0 = today
	DayOfWeek int    `json:"day_of_week"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Name      string `json:"name"`
}

// ResolveProgram determines the currently active program for a channel. A
// block is active when its day of week matches today and
// startHour <= currentHour < endHour, in the viewer's local time. Gaps in
// the schedule resolve to the channel's default "Mixed <Channel>" program,
// so a scheduled channel always has a defined active program.
func ResolveProgram(channel *models.Channel, blocks []*models.ProgramBlock, now time.Time) Program {
	day := int(now.Weekday())
	hour := now.Hour()

	for _, b := range blocks {
		if b.DayOfWeek == day && b.StartHour <= hour && hour < b.EndHour {
			return Program{
				Name:      b.Name,
				Params:    b.Params,
				Scheduled: true,
			}
		}
	}

	return Program{
		Name:   "Mixed " + channel.Name,
		Params: channel.Params,
	}
}

// UpcomingPrograms projects a channel's schedule over the next 7 days
// relative to now. Blocks on the current day that have already started are
// skipped. The result is sorted by (day offset, start hour).
func UpcomingPrograms(blocks []*models.ProgramBlock, now time.Time) []UpcomingProgram {
	day := int(now.Weekday())
	hour := now.Hour()

	var upcoming []UpcomingProgram
	for offset := 0; offset < 7; offset++ {
		targetDay := (day + offset) % 7
		for _, b := range blocks {
			if b.DayOfWeek != targetDay {
				continue
			}
			if offset == 0 && b.StartHour <= hour {
				continue
			}
			upcoming = append(upcoming, UpcomingProgram{
				DayOffset: offset,
				DayOfWeek: b.DayOfWeek,
				StartHour: b.StartHour,
				EndHour:   b.EndHour,
				Name:      b.Name,
			})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		if upcoming[i].DayOffset != upcoming[j].DayOffset {
			return upcoming[i].DayOffset < upcoming[j].DayOffset
		}
		return upcoming[i].StartHour < upcoming[j].StartHour
	})

	return upcoming
}
