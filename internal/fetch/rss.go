package fetch

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/wfedor/telecast/internal/config"
	"github.com/wfedor/telecast/internal/logger"
	"github.com/wfedor/telecast/internal/models"
)

// RSSFetcher retrieves candidate videos from YouTube channel RSS/Atom feeds.
// Calls are bounded by a per-call timeout, a quota-protecting rate limiter,
// and a circuit breaker; all three failure modes surface as an error the
// caller treats like an empty result.
type RSSFetcher struct {
	parser          *gofeed.Parser
	limiter         *rate.Limiter
	breaker         *CircuitBreaker
	timeout         time.Duration
	defaultDuration int64
}

// NewRSSFetcher creates an RSS fetcher from the fetch configuration
func NewRSSFetcher(cfg *config.FetchConfig) *RSSFetcher {
	return &RSSFetcher{
		parser:          gofeed.NewParser(),
		limiter:         rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.PerMinute)), cfg.PerMinute),
		breaker:         NewCircuitBreaker(cfg.BreakerThreshold, cfg.BreakerReset),
		timeout:         cfg.Timeout,
		defaultDuration: int64(cfg.DefaultDuration / time.Second),
	}
}

// Fetch parses the feed named by params.FeedURL and maps its items to
// videos, applying the duration bounds and limit from params. Channels
// without a feed URL yield no content.
func (f *RSSFetcher) Fetch(ctx context.Context, params models.SearchParams) ([]*models.Video, error) {
	if params.FeedURL == "" {
		return nil, nil
	}

	if !f.limiter.Allow() {
		logger.Log.Warn().
			Str("feed_url", params.FeedURL).
			Msg("Fetch rate limit exceeded; skipping upstream call")
		return nil, fmt.Errorf("fetch rate limit exceeded")
	}

	var feed *gofeed.Feed
	err := f.breaker.Call(func() error {
		fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()

		var parseErr error
		feed, parseErr = f.parser.ParseURLWithContext(params.FeedURL, fetchCtx)
		return parseErr
	})
	if err != nil {
		logger.Log.Warn().
			Err(err).
			Str("feed_url", params.FeedURL).
			Str("breaker_state", f.breaker.State().String()).
			Msg("Feed fetch failed")
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	videos := make([]*models.Video, 0, len(feed.Items))
	for _, item := range feed.Items {
		video := f.itemToVideo(item)
		if video == nil {
			continue
		}
		if params.MinDurationSec > 0 && video.Duration < params.MinDurationSec {
			continue
		}
		if params.MaxDurationSec > 0 && video.Duration > params.MaxDurationSec {
			continue
		}
		videos = append(videos, video)
		if params.Limit > 0 && len(videos) == params.Limit {
			break
		}
	}

	logger.Log.Debug().
		Str("feed_url", params.FeedURL).
		Int("items", len(feed.Items)).
		Int("videos", len(videos)).
		Msg("Feed fetched")

	return videos, nil
}

// itemToVideo maps a feed item to a Video. Items without a recognizable
// video ID are dropped; items without an explicit duration get the
// configured default so they stay schedulable.
func (f *RSSFetcher) itemToVideo(item *gofeed.Item) *models.Video {
	id := videoID(item)
	if id == "" {
		return nil
	}

	duration := f.defaultDuration
	if item.ITunesExt != nil && item.ITunesExt.Duration != "" {
		if parsed := parseDuration(item.ITunesExt.Duration); parsed > 0 {
			duration = parsed
		}
	}

	return &models.Video{
		ID:        id,
		Title:     item.Title,
		Duration:  duration,
		CreatedAt: time.Now().UTC(),
	}
}

// videoID extracts the platform video ID from a feed item. YouTube feeds
// carry it in the yt:videoId extension and in GUIDs of the form
// "yt:video:<id>".
func videoID(item *gofeed.Item) string {
	if yt, ok := item.Extensions["yt"]; ok {
		if ids, ok := yt["videoId"]; ok && len(ids) > 0 && ids[0].Value != "" {
			return ids[0].Value
		}
	}
	if strings.HasPrefix(item.GUID, "yt:video:") {
		return strings.TrimPrefix(item.GUID, "yt:video:")
	}
	return item.GUID
}

// parseDuration parses "SS", "MM:SS", or "HH:MM:SS" into seconds
func parseDuration(s string) int64 {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0
	}
	var total int64
	for _, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}
