// Package schedule computes what should be playing on a channel at any given
// moment, creating the illusion of a continuously broadcasting television
// channel. The schedule is anchored to seconds-since-midnight on the viewer's
// wall clock modulo the playlist's total duration, so any client with a
// synchronized clock and the same playlist derives the same position with no
// coordination service.
package schedule

import (
	"time"

	"github.com/wfedor/telecast/internal/models"
)

// PlaybackState describes the playback position of a channel at one instant.
// It is derived fresh on every query and never persisted.
type PlaybackState struct {
	// Video is the currently playing video; always an element of the
	// playlist the state was computed from
	Video *models.Video `json:"video"`

	// VideoIndex is the index of Video within the playlist
	VideoIndex int `json:"video_index"`

	// PositionInVideo is the playback offset within Video, in seconds.
	// Always in [0, Video.Duration).
	PositionInVideo int64 `json:"position_in_video"`

	// ProgressPercent is PositionInVideo as a percentage of the video's
	// duration, in [0, 100]
	ProgressPercent float64 `json:"progress_percent"`

	// Guarded is set when the in-order walk failed to land on a video and
	// the state fell back to index 0 at position 0. Unreachable with
	// integer durations; surfaced so callers can log the anomaly instead
	// of blanking a live display.
	Guarded bool `json:"-"`
}

// CurrentPlayback calculates the playback position for a playlist at the
// given instant. This is a pure function: two callers evaluating the same
// (videos, now) get identical answers.
//
// Videos with non-positive durations are skipped during the walk; a playlist
// whose playable total is zero yields ErrNoContent.
func CurrentPlayback(videos []*models.Video, now time.Time) (*PlaybackState, error) {
	if len(videos) == 0 {
		return nil, ErrNoContent
	}

	var totalDuration int64
	for _, v := range videos {
		if v.Duration > 0 {
			totalDuration += v.Duration
		}
	}
	if totalDuration == 0 {
		return nil, ErrNoContent
	}

	secondsSinceMidnight := int64(now.Hour())*3600 + int64(now.Minute())*60 + int64(now.Second())
	positionInLoop := secondsSinceMidnight % totalDuration

	var accumulated int64
	for i, v := range videos {
		if v.Duration <= 0 {
			continue
		}
		if positionInLoop < accumulated+v.Duration {
			offset := positionInLoop - accumulated
			return &PlaybackState{
				Video:           v,
				VideoIndex:      i,
				PositionInVideo: offset,
				ProgressPercent: float64(offset) / float64(v.Duration) * 100,
			}, nil
		}
		accumulated += v.Duration
	}

	// Unreachable with integer arithmetic; favor availability over
	// crashing a live display
	return &PlaybackState{
		Video:           videos[0],
		VideoIndex:      0,
		PositionInVideo: 0,
		ProgressPercent: 0,
		Guarded:         true,
	}, nil
}

// NextVideo returns the video following currentIndex, wrapping at the end of
// the playlist. Returns nil for an empty playlist.
func NextVideo(videos []*models.Video, currentIndex int) *models.Video {
	if len(videos) == 0 {
		return nil
	}
	if currentIndex < 0 {
		currentIndex = -1
	}
	return videos[(currentIndex+1)%len(videos)]
}
