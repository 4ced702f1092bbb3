package schedule

import (
	"context"
	"fmt"

	"github.com/wfedor/telecast/internal/clock"
	"github.com/wfedor/telecast/internal/db"
	"github.com/wfedor/telecast/internal/logger"
	"github.com/wfedor/telecast/internal/models"
)

// LineupProvider resolves the playlist that is live for a channel right now.
// Implemented by the guide cache; the scheduler is indifferent to whether
// the lineup came from a live fetch or the rotated fallback.
type LineupProvider interface {
	Lineup(ctx context.Context, channelID string) ([]*models.Video, error)
}

// PlaybackView is the 1 Hz poll payload: current state plus what plays next,
// so the player can preload the upcoming video.
type PlaybackView struct {
	ChannelID string         `json:"channel_id"`
	State     *PlaybackState `json:"state"`
	Next      *models.Video  `json:"next,omitempty"`
}

// ScheduleView is the guide payload for a channel: the active program and
// the 7-day upcoming projection.
type ScheduleView struct {
	ChannelID string            `json:"channel_id"`
	Current   Program           `json:"current"`
	Upcoming  []UpcomingProgram `json:"upcoming"`
}

// Service answers playback and schedule queries against the live lineup.
// It is stateless; every call recomputes from (lineup, clock), which makes
// redundant 1 Hz polling idempotent.
type Service struct {
	repos   *db.Repositories
	lineups LineupProvider
	clk     clock.Clock
}

// NewService creates a new schedule service instance
func NewService(repos *db.Repositories, lineups LineupProvider, clk clock.Clock) *Service {
	return &Service{
		repos:   repos,
		lineups: lineups,
		clk:     clk,
	}
}

// GetPlayback computes the current playback position for a channel.
// Returns ErrChannelNotFound or ErrNoContent; never a fetch error, because
// the lineup provider absorbs those by falling back.
func (s *Service) GetPlayback(ctx context.Context, channelID string) (*PlaybackView, error) {
	if _, err := s.repos.Channels.GetByID(ctx, channelID); err != nil {
		if db.IsNotFound(err) {
			return nil, ErrChannelNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("channel_id", channelID).
			Msg("Failed to fetch channel for playback")
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	videos, err := s.lineups.Lineup(ctx, channelID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("channel_id", channelID).
			Msg("Failed to resolve lineup for playback")
		return nil, fmt.Errorf("failed to resolve lineup: %w", err)
	}

	state, err := CurrentPlayback(videos, s.clk.Now())
	if err != nil {
		logger.Log.Warn().
			Err(err).
			Str("channel_id", channelID).
			Int("lineup_size", len(videos)).
			Msg("Playback calculation yielded no content")
		return nil, err
	}

	if state.Guarded {
		logger.Log.Warn().
			Str("channel_id", channelID).
			Int("lineup_size", len(videos)).
			Msg("Playback walk missed all videos; served index 0 fallback")
	}

	logger.Log.Debug().
		Str("channel_id", channelID).
		Str("video_id", state.Video.ID).
		Int("video_index", state.VideoIndex).
		Int64("position", state.PositionInVideo).
		Msg("Playback position calculated")

	return &PlaybackView{
		ChannelID: channelID,
		State:     state,
		Next:      NextVideo(videos, state.VideoIndex),
	}, nil
}

// GetSchedule returns the active program and upcoming projection for a
// channel
func (s *Service) GetSchedule(ctx context.Context, channelID string) (*ScheduleView, error) {
	channel, err := s.repos.Channels.GetByID(ctx, channelID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrChannelNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("channel_id", channelID).
			Msg("Failed to fetch channel for schedule")
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	blocks, err := s.repos.ProgramBlocks.GetByChannelID(ctx, channelID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("channel_id", channelID).
			Msg("Failed to fetch program blocks")
		return nil, fmt.Errorf("failed to get program blocks: %w", err)
	}

	now := s.clk.Now()
	return &ScheduleView{
		ChannelID: channelID,
		Current:   ResolveProgram(channel, blocks, now),
		Upcoming:  UpcomingPrograms(blocks, now),
	}, nil
}
