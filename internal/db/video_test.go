package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfedor/telecast/internal/models"
)

func setupRepos(t *testing.T) (*Repositories, func()) {
	t.Helper()

	database, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err)
	require.NoError(t, RunMigrations(sqlDB, "file://../../migrations"))

	repos := NewRepositories(database)
	cleanup := func() {
		_ = database.Close()
	}
	return repos, cleanup
}

func seedChannel(t *testing.T, repos *Repositories, id string) {
	t.Helper()
	require.NoError(t, repos.Channels.Create(context.Background(), models.NewChannel(id, "Channel "+id, "general", models.ChannelKindStandard)))
}

func TestReplacePlaylist_ReplacesAtomically(t *testing.T) {
	repos, cleanup := setupRepos(t)
	defer cleanup()

	ctx := context.Background()
	seedChannel(t, repos, "music")

	first := []*models.Video{
		models.NewVideo("old1", "music", "Old One", 600, 0),
		models.NewVideo("old2", "music", "Old Two", 700, 1),
	}
	require.NoError(t, repos.Videos.ReplacePlaylist(ctx, "music", first))

	second := []*models.Video{
		models.NewVideo("new1", "music", "New One", 800, 0),
	}
	require.NoError(t, repos.Videos.ReplacePlaylist(ctx, "music", second))

	videos, err := repos.Videos.GetByChannelID(ctx, "music")
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "new1", videos[0].ID)
}

func TestGetByChannelID_OrderedByPosition(t *testing.T) {
	repos, cleanup := setupRepos(t)
	defer cleanup()

	ctx := context.Background()
	seedChannel(t, repos, "music")

	// Inserted out of position order on purpose
	require.NoError(t, repos.Videos.Create(ctx, models.NewVideo("c", "music", "Third", 600, 2)))
	require.NoError(t, repos.Videos.Create(ctx, models.NewVideo("a", "music", "First", 600, 0)))
	require.NoError(t, repos.Videos.Create(ctx, models.NewVideo("b", "music", "Second", 600, 1)))

	videos, err := repos.Videos.GetByChannelID(ctx, "music")
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, "a", videos[0].ID)
	assert.Equal(t, "b", videos[1].ID)
	assert.Equal(t, "c", videos[2].ID)
}

func TestPreferenceUpsert_OverwritesByVideoID(t *testing.T) {
	repos, cleanup := setupRepos(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repos.Preferences.Upsert(ctx, &models.Preference{
		VideoID: "v1", UserID: "local", Action: models.ActionUp,
	}))
	require.NoError(t, repos.Preferences.Upsert(ctx, &models.Preference{
		VideoID: "v1", UserID: "local", Action: models.ActionNever,
	}))

	prefs, err := repos.Preferences.List(ctx)
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	assert.Equal(t, models.ActionNever, prefs[0].Action)
}

func TestPreferenceDelete_NotFound(t *testing.T) {
	repos, cleanup := setupRepos(t)
	defer cleanup()

	err := repos.Preferences.Delete(context.Background(), "missing")

	assert.True(t, IsNotFound(err))
}

func TestSettingsGet_CreatesSingletonRow(t *testing.T) {
	repos, cleanup := setupRepos(t)
	defer cleanup()

	ctx := context.Background()
	first, err := repos.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "en", first.Language)

	first.LastChannel = "news24"
	require.NoError(t, repos.Settings.Update(ctx, first))

	second, err := repos.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "news24", second.LastChannel)
}
