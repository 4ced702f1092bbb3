package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfedor/telecast/internal/clock"
	"github.com/wfedor/telecast/internal/config"
	"github.com/wfedor/telecast/internal/db"
	"github.com/wfedor/telecast/internal/fetch"
	"github.com/wfedor/telecast/internal/guide"
	"github.com/wfedor/telecast/internal/models"
	"github.com/wfedor/telecast/internal/tuning"
)

// setupTestDB creates a test database with migrations applied
func setupTestDB(t *testing.T) (*db.DB, *db.Repositories, func()) {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(sqlDB, "file://../../migrations"))

	repos := db.NewRepositories(database)
	cleanup := func() {
		_ = database.Close()
	}
	return database, repos, cleanup
}

// testCache builds a guide cache with no upstream fetcher, so lineups always
// resolve to the rotated static fallback
func testCache(repos *db.Repositories) (*guide.Cache, *tuning.Service) {
	tuner := tuning.NewService(repos.Preferences, nil, "test-user")
	clk := clock.Fixed{Time: time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)}
	ttls := config.CacheConfig{NewsTTL: 15 * time.Minute, DefaultTTL: time.Hour}
	return guide.NewCache(repos, fetch.None{}, tuner, clk, ttls), tuner
}

// setupChannelRouter creates a test router with channel routes
func setupChannelRouter(repos *db.Repositories, cache *guide.Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	apiGroup := router.Group("/api")
	SetupChannelRoutes(apiGroup, repos, cache)
	return router
}

func TestListChannels(t *testing.T) {
	_, repos, cleanup := setupTestDB(t)
	defer cleanup()
	cache, _ := testCache(repos)
	router := setupChannelRouter(repos, cache)

	ctx := context.Background()
	require.NoError(t, repos.Channels.Create(ctx, models.NewChannel("news24", "News 24", "news", models.ChannelKindNews)))
	require.NoError(t, repos.Channels.Create(ctx, models.NewChannel("music", "Music Box", "music", models.ChannelKindStandard)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/channels", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp ChannelListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Channels, 2)
	// Ordered by name
	assert.Equal(t, "music", resp.Channels[0].ID)
	assert.Equal(t, "news24", resp.Channels[1].ID)
}

func TestGetChannel_NotFound(t *testing.T) {
	_, repos, cleanup := setupTestDB(t)
	defer cleanup()
	cache, _ := testCache(repos)
	router := setupChannelRouter(repos, cache)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/channels/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetLineup_ServesFallback(t *testing.T) {
	_, repos, cleanup := setupTestDB(t)
	defer cleanup()
	cache, _ := testCache(repos)
	router := setupChannelRouter(repos, cache)

	ctx := context.Background()
	require.NoError(t, repos.Channels.Create(ctx, models.NewChannel("music", "Music Box", "music", models.ChannelKindStandard)))
	static := []*models.Video{
		models.NewVideo("m1", "music", "Acoustic Set", 2400, 0),
		models.NewVideo("m2", "music", "Piano Night", 3100, 1),
	}
	require.NoError(t, repos.Videos.ReplacePlaylist(ctx, "music", static))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/channels/music/lineup", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp LineupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "music", resp.ChannelID)
	assert.Len(t, resp.Videos, 2)
}

func TestCreateChannel(t *testing.T) {
	_, repos, cleanup := setupTestDB(t)
	defer cleanup()
	cache, _ := testCache(repos)
	router := setupChannelRouter(repos, cache)

	body, _ := json.Marshal(CreateChannelRequest{
		ID:     "chess",
		Name:   "Chess TV",
		Params: &models.SearchParams{Query: "chess tournament"},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/channels", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	created, err := repos.Channels.GetByID(context.Background(), "chess")
	require.NoError(t, err)
	assert.Equal(t, models.ChannelKindCustom, created.Kind)
	assert.Equal(t, "general", created.Category)
	require.NotNil(t, created.Params)
	assert.Equal(t, "chess tournament", created.Params.Query)
}

func TestCreateChannel_Duplicate(t *testing.T) {
	_, repos, cleanup := setupTestDB(t)
	defer cleanup()
	cache, _ := testCache(repos)
	router := setupChannelRouter(repos, cache)

	require.NoError(t, repos.Channels.Create(context.Background(), models.NewChannel("chess", "Chess TV", "general", models.ChannelKindCustom)))

	body, _ := json.Marshal(CreateChannelRequest{ID: "chess", Name: "Chess TV"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/channels", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateChannel_MissingFields(t *testing.T) {
	_, repos, cleanup := setupTestDB(t)
	defer cleanup()
	cache, _ := testCache(repos)
	router := setupChannelRouter(repos, cache)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/channels", bytes.NewReader([]byte(`{"id":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteChannel_CustomOnly(t *testing.T) {
	_, repos, cleanup := setupTestDB(t)
	defer cleanup()
	cache, _ := testCache(repos)
	router := setupChannelRouter(repos, cache)

	ctx := context.Background()
	require.NoError(t, repos.Channels.Create(ctx, models.NewChannel("news24", "News 24", "news", models.ChannelKindNews)))
	require.NoError(t, repos.Channels.Create(ctx, models.NewChannel("mine", "My Channel", "general", models.ChannelKindCustom)))

	// Authored channels cannot be deleted
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/channels/news24", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Custom channels can
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/channels/mine", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err := repos.Channels.GetByID(ctx, "mine")
	assert.True(t, db.IsNotFound(err))
}
