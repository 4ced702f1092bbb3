package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wfedor/telecast/internal/logger"
	"github.com/wfedor/telecast/internal/middleware"
	"github.com/wfedor/telecast/internal/schedule"
)

// PlaybackHandler answers the 1 Hz playback poll and the schedule guide
type PlaybackHandler struct {
	scheduleService *schedule.Service
}

// NewPlaybackHandler creates a new playback handler instance
func NewPlaybackHandler(scheduleService *schedule.Service) *PlaybackHandler {
	return &PlaybackHandler{scheduleService: scheduleService}
}

// GetPlayback handles GET /api/channels/:id/playback. Clients poll this
// every second and swap the loaded video when the returned video ID differs
// from what the player currently shows.
func (h *PlaybackHandler) GetPlayback(c *gin.Context) {
	channelID := c.Param("id")

	viewer := middleware.ViewerFrom(c)
	if !viewer.ChannelAllowed(channelID) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "channel_not_found",
			Message: "Channel not found",
		})
		return
	}

	// Playback resolves the lineup through the cache, which may fetch
	ctx, cancel := context.WithTimeout(c.Request.Context(), lineupTimeout)
	defer cancel()

	view, err := h.scheduleService.GetPlayback(ctx, channelID)
	if err != nil {
		if errors.Is(err, schedule.ErrChannelNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "channel_not_found",
				Message: "Channel not found",
			})
			return
		}
		if errors.Is(err, schedule.ErrNoContent) {
			// A friendly empty state, not an error: the channel exists but
			// has nothing playable right now
			c.JSON(http.StatusOK, schedule.PlaybackView{ChannelID: channelID})
			return
		}
		logger.Log.Error().
			Err(err).
			Str("channel_id", channelID).
			Msg("Failed to compute playback position")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "playback_failed",
			Message: "Failed to compute playback position",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetSchedule handles GET /api/channels/:id/schedule
func (h *PlaybackHandler) GetSchedule(c *gin.Context) {
	channelID := c.Param("id")

	viewer := middleware.ViewerFrom(c)
	if !viewer.ChannelAllowed(channelID) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "channel_not_found",
			Message: "Channel not found",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	view, err := h.scheduleService.GetSchedule(ctx, channelID)
	if err != nil {
		if errors.Is(err, schedule.ErrChannelNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "channel_not_found",
				Message: "Channel not found",
			})
			return
		}
		logger.Log.Error().
			Err(err).
			Str("channel_id", channelID).
			Msg("Failed to build schedule view")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "schedule_failed",
			Message: "Failed to build schedule",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// SetupPlaybackRoutes registers playback and schedule endpoints
func SetupPlaybackRoutes(apiGroup *gin.RouterGroup, scheduleService *schedule.Service) {
	handler := NewPlaybackHandler(scheduleService)

	apiGroup.GET("/channels/:id/playback", handler.GetPlayback)
	apiGroup.GET("/channels/:id/schedule", handler.GetSchedule)
}
