package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wfedor/telecast/internal/db"
	"github.com/wfedor/telecast/internal/guide"
	"github.com/wfedor/telecast/internal/logger"
	"github.com/wfedor/telecast/internal/middleware"
	"github.com/wfedor/telecast/internal/models"
)

const (
	requestTimeout = 5 * time.Second

	// Lineup resolution may include an upstream fetch; allow more headroom
	// than a plain database read
	lineupTimeout = 10 * time.Second
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CreateChannelRequest represents a request to create a custom channel
type CreateChannelRequest struct {
	ID       string               `json:"id" binding:"required"`
	Name     string               `json:"name" binding:"required"`
	Icon     *string              `json:"icon,omitempty"`
	Color    *string              `json:"color,omitempty"`
	Category string               `json:"category,omitempty"`
	Params   *models.SearchParams `json:"params,omitempty"`
}

// ChannelListResponse represents a list of channels
type ChannelListResponse struct {
	Channels []*models.Channel `json:"channels"`
}

// LineupResponse represents a channel's currently live playlist
type LineupResponse struct {
	ChannelID string          `json:"channel_id"`
	Videos    []*models.Video `json:"videos"`
}

// ChannelHandler handles channel-related API requests
type ChannelHandler struct {
	repos *db.Repositories
	cache *guide.Cache
}

// NewChannelHandler creates a new channel handler instance
func NewChannelHandler(repos *db.Repositories, cache *guide.Cache) *ChannelHandler {
	return &ChannelHandler{
		repos: repos,
		cache: cache,
	}
}

// ListChannels handles GET /api/channels. The lineup is filtered by the
// viewer's allowed-channel predicate.
func (h *ChannelHandler) ListChannels(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	channels, err := h.repos.Channels.List(ctx)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to list channels")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "list_failed",
			Message: "Failed to list channels",
		})
		return
	}

	viewer := middleware.ViewerFrom(c)
	allowed := make([]*models.Channel, 0, len(channels))
	for _, ch := range channels {
		if viewer.ChannelAllowed(ch.ID) {
			allowed = append(allowed, ch)
		}
	}

	c.JSON(http.StatusOK, ChannelListResponse{Channels: allowed})
}

// GetChannel handles GET /api/channels/:id
func (h *ChannelHandler) GetChannel(c *gin.Context) {
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

	channel, err := h.repos.Channels.GetByID(ctx, channelID)
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "channel_not_found",
				Message: "Channel not found",
			})
			return
		}
		logger.Log.Error().
			Err(err).
			Str("channel_id", channelID).
			Msg("Failed to get channel")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "get_failed",
			Message: "Failed to get channel",
		})
		return
	}

	c.JSON(http.StatusOK, channel)
}

// GetLineup handles GET /api/channels/:id/lineup. The lineup is whatever
// the cache resolves: cached live content, a fresh fetch, or the rotated
// fallback.
func (h *ChannelHandler) GetLineup(c *gin.Context) {
	channelID := c.Param("id")

	viewer := middleware.ViewerFrom(c)
	if !viewer.ChannelAllowed(channelID) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "channel_not_found",
			Message: "Channel not found",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), lineupTimeout)
	defer cancel()

	videos, err := h.cache.Lineup(ctx, channelID)
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "channel_not_found",
				Message: "Channel not found",
			})
			return
		}
		logger.Log.Error().
			Err(err).
			Str("channel_id", channelID).
			Msg("Failed to resolve lineup")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "lineup_failed",
			Message: "Failed to resolve lineup",
		})
		return
	}

	c.JSON(http.StatusOK, LineupResponse{
		ChannelID: channelID,
		Videos:    videos,
	})
}

// CreateChannel handles POST /api/channels. Creates a custom user-defined
// channel; custom channels have no static fallback playlist.
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	var req CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	category := req.Category
	if category == "" {
		category = "general"
	}

	channel := models.NewChannel(req.ID, req.Name, category, models.ChannelKindCustom)
	channel.Icon = req.Icon
	channel.Color = req.Color
	channel.Params = req.Params

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.repos.Channels.Create(ctx, channel); err != nil {
		if db.IsDuplicate(err) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "duplicate_channel",
				Message: "A channel with this ID already exists",
			})
			return
		}
		logger.Log.Error().
			Err(err).
			Str("channel_id", req.ID).
			Msg("Failed to create channel")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "create_failed",
			Message: "Failed to create channel",
		})
		return
	}

	logger.Log.Info().
		Str("channel_id", channel.ID).
		Str("name", channel.Name).
		Msg("Custom channel created")

	c.JSON(http.StatusCreated, channel)
}

// DeleteChannel handles DELETE /api/channels/:id
func (h *ChannelHandler) DeleteChannel(c *gin.Context) {
	channelID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	channel, err := h.repos.Channels.GetByID(ctx, channelID)
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "channel_not_found",
				Message: "Channel not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "delete_failed",
			Message: "Failed to delete channel",
		})
		return
	}

	if channel.Kind != models.ChannelKindCustom {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "not_custom",
			Message: "Only custom channels can be deleted",
		})
		return
	}

	if err := h.repos.Channels.Delete(ctx, channelID); err != nil {
		logger.Log.Error().
			Err(err).
			Str("channel_id", channelID).
			Msg("Failed to delete channel")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "delete_failed",
			Message: "Failed to delete channel",
		})
		return
	}

	logger.Log.Info().
		Str("channel_id", channelID).
		Msg("Custom channel deleted")

	c.Status(http.StatusNoContent)
}

// SetupChannelRoutes registers channel endpoints
func SetupChannelRoutes(apiGroup *gin.RouterGroup, repos *db.Repositories, cache *guide.Cache) {
	handler := NewChannelHandler(repos, cache)

	apiGroup.GET("/channels", handler.ListChannels)
	apiGroup.POST("/channels", handler.CreateChannel)
	apiGroup.GET("/channels/:id", handler.GetChannel)
	apiGroup.DELETE("/channels/:id", handler.DeleteChannel)
	apiGroup.GET("/channels/:id/lineup", handler.GetLineup)
}
