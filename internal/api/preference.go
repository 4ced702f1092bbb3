package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wfedor/telecast/internal/logger"
	"github.com/wfedor/telecast/internal/middleware"
	"github.com/wfedor/telecast/internal/tuning"
)

// RecordPreferenceRequest represents a request to record viewer feedback on
// a video
type RecordPreferenceRequest struct {
	VideoID   string  `json:"video_id" binding:"required"`
	Action    string  `json:"action" binding:"required,oneof=up down more never"`
	ChannelID *string `json:"channel_id,omitempty"`
	Title     string  `json:"title,omitempty"`
}

// ProfileResponse is the derived tuning profile in API shape
type ProfileResponse struct {
	BoostedChannels    map[string]int `json:"boosted_channels"`
	SuppressedChannels map[string]int `json:"suppressed_channels"`
	BoostedKeywords    []string       `json:"boosted_keywords"`
	SuppressedKeywords []string       `json:"suppressed_keywords"`
	BlockedVideoIDs    []string       `json:"blocked_video_ids"`
}

// PreferenceHandler handles preference-related API requests
type PreferenceHandler struct {
	tuner *tuning.Service
}

// NewPreferenceHandler creates a new preference handler instance
func NewPreferenceHandler(tuner *tuning.Service) *PreferenceHandler {
	return &PreferenceHandler{tuner: tuner}
}

// RecordPreference handles POST /api/preferences
func (h *PreferenceHandler) RecordPreference(c *gin.Context) {
	var req RecordPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	viewer := middleware.ViewerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	pref, err := h.tuner.RecordPreference(ctx, req.VideoID, req.Action, req.ChannelID, req.Title, viewer.Authenticated)
	if err != nil {
		if errors.Is(err, tuning.ErrInvalidAction) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_action",
				Message: "Action must be one of: up, down, more, never",
			})
			return
		}
		logger.Log.Error().
			Err(err).
			Str("video_id", req.VideoID).
			Msg("Failed to record preference")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "record_failed",
			Message: "Failed to record preference",
		})
		return
	}

	c.JSON(http.StatusCreated, pref)
}

// RemovePreference handles DELETE /api/preferences/:video_id
func (h *PreferenceHandler) RemovePreference(c *gin.Context) {
	videoID := c.Param("video_id")
	viewer := middleware.ViewerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.tuner.RemovePreference(ctx, videoID, viewer.Authenticated); err != nil {
		if errors.Is(err, tuning.ErrPreferenceNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "preference_not_found",
				Message: "No preference recorded for this video",
			})
			return
		}
		logger.Log.Error().
			Err(err).
			Str("video_id", videoID).
			Msg("Failed to remove preference")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "remove_failed",
			Message: "Failed to remove preference",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListPreferences handles GET /api/preferences
func (h *PreferenceHandler) ListPreferences(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	prefs, err := h.tuner.List(ctx)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to list preferences")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "list_failed",
			Message: "Failed to list preferences",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// GetProfile handles GET /api/preferences/profile
func (h *PreferenceHandler) GetProfile(c *gin.Context) {
	profile := h.tuner.Profile()

	c.JSON(http.StatusOK, ProfileResponse{
		BoostedChannels:    profile.BoostedChannels,
		SuppressedChannels: profile.SuppressedChannels,
		BoostedKeywords:    setToSlice(profile.BoostedKeywords),
		SuppressedKeywords: setToSlice(profile.SuppressedKeywords),
		BlockedVideoIDs:    setToSlice(profile.BlockedVideoIDs),
	})
}

// setToSlice flattens a string set into a slice for JSON encoding
func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

// SetupPreferenceRoutes registers preference endpoints
func SetupPreferenceRoutes(apiGroup *gin.RouterGroup, tuner *tuning.Service) {
	handler := NewPreferenceHandler(tuner)

	apiGroup.POST("/preferences", handler.RecordPreference)
	apiGroup.GET("/preferences", handler.ListPreferences)
	apiGroup.GET("/preferences/profile", handler.GetProfile)
	apiGroup.DELETE("/preferences/:video_id", handler.RemovePreference)
}
