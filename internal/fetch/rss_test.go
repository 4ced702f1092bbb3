package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfedor/telecast/internal/config"
	"github.com/wfedor/telecast/internal/models"
)

func testFetchConfig() *config.FetchConfig {
	return &config.FetchConfig{
		Timeout:          5 * time.Second,
		PerMinute:        60,
		BreakerThreshold: 3,
		BreakerReset:     time.Minute,
		DefaultDuration:  300 * time.Second,
	}
}

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/"
      xmlns="http://www.w3.org/2005/Atom">
  <title>Test Channel</title>
  <entry>
    <id>yt:video:dQw4w9WgXcQ</id>
    <yt:videoId>dQw4w9WgXcQ</yt:videoId>
    <title>First Upload</title>
  </entry>
  <entry>
    <id>yt:video:oHg5SJYRHA0</id>
    <yt:videoId>oHg5SJYRHA0</yt:videoId>
    <title>Second Upload</title>
  </entry>
</feed>`

func feedServer(t *testing.T, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_MapsFeedItems(t *testing.T) {
	srv := feedServer(t, testFeed)
	fetcher := NewRSSFetcher(testFetchConfig())

	videos, err := fetcher.Fetch(context.Background(), models.SearchParams{FeedURL: srv.URL})

	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "dQw4w9WgXcQ", videos[0].ID)
	assert.Equal(t, "First Upload", videos[0].Title)
	// Feed items carry no duration; the configured default applies
	assert.Equal(t, int64(300), videos[0].Duration)
}

func TestFetch_EmptyFeedURLIsNoOp(t *testing.T) {
	fetcher := NewRSSFetcher(testFetchConfig())

	videos, err := fetcher.Fetch(context.Background(), models.SearchParams{Query: "no feed"})

	assert.NoError(t, err)
	assert.Nil(t, videos)
}

func TestFetch_AppliesLimit(t *testing.T) {
	srv := feedServer(t, testFeed)
	fetcher := NewRSSFetcher(testFetchConfig())

	videos, err := fetcher.Fetch(context.Background(), models.SearchParams{FeedURL: srv.URL, Limit: 1})

	require.NoError(t, err)
	assert.Len(t, videos, 1)
}

func TestFetch_AppliesDurationBounds(t *testing.T) {
	srv := feedServer(t, testFeed)
	fetcher := NewRSSFetcher(testFetchConfig())

	// Default duration is 300s; a 400s floor excludes everything
	videos, err := fetcher.Fetch(context.Background(), models.SearchParams{FeedURL: srv.URL, MinDurationSec: 400})

	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestFetch_UpstreamErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	fetcher := NewRSSFetcher(testFetchConfig())

	videos, err := fetcher.Fetch(context.Background(), models.SearchParams{FeedURL: srv.URL})

	assert.Error(t, err)
	assert.Nil(t, videos)
}

func TestFetch_RateLimitExceeded(t *testing.T) {
	srv := feedServer(t, testFeed)
	cfg := testFetchConfig()
	cfg.PerMinute = 1
	fetcher := NewRSSFetcher(cfg)

	_, err := fetcher.Fetch(context.Background(), models.SearchParams{FeedURL: srv.URL})
	require.NoError(t, err)

	_, err = fetcher.Fetch(context.Background(), models.SearchParams{FeedURL: srv.URL})
	assert.Error(t, err)
}

func TestItemToVideo_UsesITunesDuration(t *testing.T) {
	fetcher := NewRSSFetcher(testFetchConfig())

	video := fetcher.itemToVideo(&gofeed.Item{
		GUID:      "yt:video:abc123",
		Title:     "Timed Upload",
		ITunesExt: &ext.ITunesItemExtension{Duration: "2:30"},
	})

	require.NotNil(t, video)
	assert.Equal(t, "abc123", video.ID)
	assert.Equal(t, int64(150), video.Duration)
}

func TestItemToVideo_UnparseableITunesDurationFallsBack(t *testing.T) {
	fetcher := NewRSSFetcher(testFetchConfig())

	video := fetcher.itemToVideo(&gofeed.Item{
		GUID:      "yt:video:abc123",
		Title:     "Timed Upload",
		ITunesExt: &ext.ITunesItemExtension{Duration: "soon"},
	})

	require.NotNil(t, video)
	assert.Equal(t, int64(300), video.Duration)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"45", 45},
		{"2:30", 150},
		{"1:02:03", 3723},
		{"00:00", 0},
		{"1:2:3:4", 0},
		{"abc", 0},
		{"-5", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseDuration(tt.input), "input %q", tt.input)
	}
}

func TestNone_Fetch(t *testing.T) {
	videos, err := None{}.Fetch(context.Background(), models.SearchParams{Query: "anything"})

	assert.NoError(t, err)
	assert.Nil(t, videos)
}
