// Package guide owns the decision of which playlist is live for a channel
// at a given moment, balancing freshness, upstream quota, and continuity.
// The fallback chain is: cached live playlist, freshly fetched playlist,
// deterministic shuffle of the channel's static fallback, empty.
package guide

import (
	"context"
	"sync"
	"time"

	"github.com/wfedor/telecast/internal/clock"
	"github.com/wfedor/telecast/internal/config"
	"github.com/wfedor/telecast/internal/db"
	"github.com/wfedor/telecast/internal/fetch"
	"github.com/wfedor/telecast/internal/logger"
	"github.com/wfedor/telecast/internal/models"
	"github.com/wfedor/telecast/internal/observability"
	"github.com/wfedor/telecast/internal/schedule"
	"github.com/wfedor/telecast/internal/tuning"
)

// cacheEntry is one cached live playlist. Entries are immutable once stored;
// a refresh builds a complete new entry and swaps it in, so readers see
// either the old playlist or the new one, never a partially filtered list.
type cacheEntry struct {
	videos    []*models.Video
	timestamp time.Time
	timeBlock string
}

// Subscriber is notified whenever a channel's resolved playlist changes, so
// a guide view and the active player observe the same lineup without
// separate fetches.
type Subscriber func(channelID string, videos []*models.Video)

// Cache is the process-wide playlist cache. Keys are the channel ID, or
// "<channelID>:<programName>" while a scheduled program is active, so a
// program boundary never serves stale cross-program content.
type Cache struct {
	repos   *db.Repositories
	fetcher fetch.Fetcher
	tuner   *tuning.Service
	clk     clock.Clock
	ttls    config.CacheConfig

	mu       sync.Mutex
	entries  map[string]*cacheEntry
	inflight map[string]chan struct{}

	subMu sync.RWMutex
	subs  []Subscriber
}

// NewCache creates a new playlist cache
func NewCache(repos *db.Repositories, fetcher fetch.Fetcher, tuner *tuning.Service, clk clock.Clock, ttls config.CacheConfig) *Cache {
	return &Cache{
		repos:    repos,
		fetcher:  fetcher,
		tuner:    tuner,
		clk:      clk,
		ttls:     ttls,
		entries:  make(map[string]*cacheEntry),
		inflight: make(map[string]chan struct{}),
	}
}

// Subscribe registers a subscriber for playlist-changed notifications
func (c *Cache) Subscribe(fn Subscriber) {
	c.subMu.Lock()
	c.subs = append(c.subs, fn)
	c.subMu.Unlock()
}

// Clear drops every cache entry. Called when the content language changes,
// since every cached playlist is stale in the new language.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()

	logger.Log.Info().Msg("Playlist cache cleared")
}

// Lineup resolves the playlist that is live for a channel right now. Fetch
// and storage failures are absorbed by the fallback chain; the only error
// returned is for an unknown channel or a failing database.
func (c *Cache) Lineup(ctx context.Context, channelID string) ([]*models.Video, error) {
	channel, err := c.repos.Channels.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	program, err := c.activeProgram(ctx, channel)
	if err != nil {
		return nil, err
	}

	key := cacheKey(channelID, program)
	now := c.clk.Now()
	block := schedule.CacheBlock(now)

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		if c.entryValid(entry, channel, now, block) {
			videos := entry.videos
			c.mu.Unlock()
			observability.CacheHits.Inc()
			return videos, nil
		}
		observability.CacheMisses.WithLabelValues(missReason(entry, block)).Inc()
	} else {
		observability.CacheMisses.WithLabelValues(observability.MissReasonCold).Inc()
	}

	// Coalesce concurrent refreshes of the same key: duplicates would only
	// waste upstream quota
	if wait, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		c.mu.Lock()
		if entry, ok := c.entries[key]; ok && c.entryValid(entry, channel, c.clk.Now(), schedule.CacheBlock(c.clk.Now())) {
			videos := entry.videos
			c.mu.Unlock()
			observability.CacheHits.Inc()
			return videos, nil
		}
		c.mu.Unlock()
		return c.fallback(ctx, channel)
	}

	done := make(chan struct{})
	c.inflight[key] = done
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
		close(done)
	}()

	return c.refresh(ctx, channel, program, key)
}

// refresh runs one fetch cycle: fetch with merged params, safety-filter,
// tune, then swap the complete entry in. Anything short of a non-empty
// tuned result falls back to the rotated static playlist.
func (c *Cache) refresh(ctx context.Context, channel *models.Channel, program schedule.Program, key string) ([]*models.Video, error) {
	start := time.Now()
	defer func() {
		observability.RefreshDuration.Observe(time.Since(start).Seconds())
	}()

	params := mergedParams(channel, program)
	if params == nil {
		return c.fallback(ctx, channel)
	}

	profile := c.tuner.Profile()
	fetchParams := *params
	fetchParams.Query = profile.AugmentQuery(fetchParams.Query)

	candidates, err := c.fetcher.Fetch(ctx, fetchParams)
	if err != nil {
		observability.FetchFailures.Inc()
		logger.Log.Warn().
			Err(err).
			Str("channel_id", channel.ID).
			Str("program", program.Name).
			Msg("Live fetch failed; falling back")
		return c.fallback(ctx, channel)
	}

	safe := FilterSafe(candidates, channel.Category)
	tuned := profile.Apply(safe, channel.ID)
	if len(tuned) == 0 {
		logger.Log.Debug().
			Str("channel_id", channel.ID).
			Int("fetched", len(candidates)).
			Int("safe", len(safe)).
			Msg("Live fetch yielded no usable videos; falling back")
		return c.fallback(ctx, channel)
	}

	// Stale-write protection: a schedule boundary may have passed while the
	// fetch was in flight. Discard rather than store under a stale key.
	currentProgram, err := c.activeProgram(ctx, channel)
	if err == nil && cacheKey(channel.ID, currentProgram) != key {
		logger.Log.Debug().
			Str("channel_id", channel.ID).
			Str("fetched_program", program.Name).
			Str("active_program", currentProgram.Name).
			Msg("Program changed mid-fetch; discarding stale result")
		return c.fallback(ctx, channel)
	}

	now := c.clk.Now()
	c.mu.Lock()
	c.entries[key] = &cacheEntry{
		videos:    tuned,
		timestamp: now,
		timeBlock: schedule.CacheBlock(now),
	}
	c.mu.Unlock()

	logger.Log.Info().
		Str("channel_id", channel.ID).
		Str("program", program.Name).
		Int("videos", len(tuned)).
		Msg("Live playlist cached")

	c.notify(channel.ID, tuned)
	return tuned, nil
}

// fallback serves the deterministic shuffle of the channel's static
// authored playlist, with blocked videos removed. Custom channels without a
// static fallback yield an empty lineup.
func (c *Cache) fallback(ctx context.Context, channel *models.Channel) ([]*models.Video, error) {
	static, err := c.repos.Videos.GetByChannelID(ctx, channel.ID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("channel_id", channel.ID).
			Msg("Failed to load static fallback playlist")
		return nil, err
	}

	rotated := schedule.RotatedFallback(static, c.tuner.Profile().BlockedVideoIDs, c.clk.Now())
	observability.FallbacksServed.Inc()

	logger.Log.Debug().
		Str("channel_id", channel.ID).
		Int("videos", len(rotated)).
		Msg("Serving rotated fallback playlist")

	c.notify(channel.ID, rotated)
	return rotated, nil
}

// entryValid reports whether a cache entry is still fresh: its age must be
// under the channel kind's TTL and the cache time block must not have
// rolled since it was stored.
func (c *Cache) entryValid(entry *cacheEntry, channel *models.Channel, now time.Time, block string) bool {
	if now.Sub(entry.timestamp) >= c.ttlFor(channel) {
		return false
	}
	return entry.timeBlock == block
}

// ttlFor returns the cache TTL for a channel's kind
func (c *Cache) ttlFor(channel *models.Channel) time.Duration {
	if channel.Kind == models.ChannelKindNews {
		return c.ttls.NewsTTL
	}
	return c.ttls.DefaultTTL
}

// activeProgram resolves the currently active scheduled program, if any
func (c *Cache) activeProgram(ctx context.Context, channel *models.Channel) (schedule.Program, error) {
	blocks, err := c.repos.ProgramBlocks.GetByChannelID(ctx, channel.ID)
	if err != nil {
		return schedule.Program{}, err
	}
	return schedule.ResolveProgram(channel, blocks, c.clk.Now()), nil
}

// notify publishes a resolved playlist to all subscribers
func (c *Cache) notify(channelID string, videos []*models.Video) {
	c.subMu.RLock()
	subs := c.subs
	c.subMu.RUnlock()

	for _, fn := range subs {
		fn(channelID, videos)
	}
}

// cacheKey partitions cache entries by channel and, for scheduled channels,
// by the active program name
func cacheKey(channelID string, program schedule.Program) string {
	if program.Scheduled {
		return channelID + ":" + program.Name
	}
	return channelID
}

// mergedParams overlays the active program's overrides onto the channel's
// defaults. Returns nil when the channel has no content parameters at all.
func mergedParams(channel *models.Channel, program schedule.Program) *models.SearchParams {
	if channel.Params == nil && program.Params == nil {
		return nil
	}
	if channel.Params == nil {
		params := *program.Params
		return &params
	}
	merged := channel.Params.Merge(program.Params)
	return &merged
}

// missReason classifies why a cache entry was invalid
func missReason(entry *cacheEntry, block string) string {
	if entry.timeBlock != block {
		return observability.MissReasonBlock
	}
	return observability.MissReasonExpired
}
