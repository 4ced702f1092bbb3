package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wfedor/telecast/internal/db"
	"github.com/wfedor/telecast/internal/guide"
	"github.com/wfedor/telecast/internal/logger"
)

// UpdateSettingsRequest represents a partial settings update
type UpdateSettingsRequest struct {
	LastChannel *string `json:"last_channel,omitempty"`
	Language    *string `json:"language,omitempty"`
}

// SettingsHandler handles settings API requests
type SettingsHandler struct {
	repos *db.Repositories
	cache *guide.Cache
}

// NewSettingsHandler creates a new settings handler instance
func NewSettingsHandler(repos *db.Repositories, cache *guide.Cache) *SettingsHandler {
	return &SettingsHandler{
		repos: repos,
		cache: cache,
	}
}

// GetSettings handles GET /api/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	settings, err := h.repos.Settings.Get(ctx)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to get settings")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "get_failed",
			Message: "Failed to get settings",
		})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings. A language change invalidates
// every cached playlist, since all cached content is in the old language.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	settings, err := h.repos.Settings.Get(ctx)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to load settings for update")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "update_failed",
			Message: "Failed to update settings",
		})
		return
	}

	languageChanged := false
	if req.LastChannel != nil {
		settings.LastChannel = *req.LastChannel
	}
	if req.Language != nil && *req.Language != settings.Language {
		settings.Language = *req.Language
		languageChanged = true
	}

	if err := h.repos.Settings.Update(ctx, settings); err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to update settings")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "update_failed",
			Message: "Failed to update settings",
		})
		return
	}

	if languageChanged {
		h.cache.Clear()
		logger.Log.Info().
			Str("language", settings.Language).
			Msg("Language changed; playlist cache cleared")
	}

	c.JSON(http.StatusOK, settings)
}

// SetupSettingsRoutes registers settings endpoints
func SetupSettingsRoutes(apiGroup *gin.RouterGroup, repos *db.Repositories, cache *guide.Cache) {
	handler := NewSettingsHandler(repos, cache)

	apiGroup.GET("/settings", handler.GetSettings)
	apiGroup.PUT("/settings", handler.UpdateSettings)
}
