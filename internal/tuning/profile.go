// Package tuning converts a viewer's per-video feedback log into a scoring
// profile, and uses that profile to filter and re-rank candidate videos
// before they become a channel's live playlist. Personalization is strictly
// best-effort: every failure path degrades to an empty profile rather than
// blocking playback.
package tuning

import (
	"time"

	"github.com/wfedor/telecast/internal/models"
)

// Profile is the scoring model derived from the preference log. It is always
// rebuilt from scratch by BuildProfile, never incrementally patched, so
// replaying the same log yields the same profile.
type Profile struct {
	BoostedChannels    map[string]int      `json:"boosted_channels"`
	SuppressedChannels map[string]int      `json:"suppressed_channels"`
	BoostedKeywords    map[string]struct{} `json:"-"`
	SuppressedKeywords map[string]struct{} `json:"-"`
	BlockedVideoIDs    map[string]struct{} `json:"-"`
	LastUpdated        time.Time           `json:"last_updated"`
}

// EmptyProfile returns a profile with no signal; scoring against it is a
// no-op re-rank
func EmptyProfile() *Profile {
	return &Profile{
		BoostedChannels:    make(map[string]int),
		SuppressedChannels: make(map[string]int),
		BoostedKeywords:    make(map[string]struct{}),
		SuppressedKeywords: make(map[string]struct{}),
		BlockedVideoIDs:    make(map[string]struct{}),
	}
}

// BuildProfile folds a preference log into a Profile. Pure function of the
// log contents:
//
//   - never        -> blocks the video ID
//   - up/more      -> boosts the channel (when attributed) and the keywords
//   - down         -> suppresses the channel (when attributed) and keywords
//   - never        -> also suppresses the keywords
func BuildProfile(log []*models.Preference) *Profile {
	profile := EmptyProfile()

	for _, pref := range log {
		switch pref.Action {
		case models.ActionUp, models.ActionMore:
			if pref.ChannelID != nil {
				profile.BoostedChannels[*pref.ChannelID]++
			}
			for _, kw := range pref.Keywords {
				profile.BoostedKeywords[kw] = struct{}{}
			}
		case models.ActionDown:
			if pref.ChannelID != nil {
				profile.SuppressedChannels[*pref.ChannelID]++
			}
			for _, kw := range pref.Keywords {
				profile.SuppressedKeywords[kw] = struct{}{}
			}
		case models.ActionNever:
			profile.BlockedVideoIDs[pref.VideoID] = struct{}{}
			for _, kw := range pref.Keywords {
				profile.SuppressedKeywords[kw] = struct{}{}
			}
		}
		if pref.UpdatedAt.After(profile.LastUpdated) {
			profile.LastUpdated = pref.UpdatedAt
		}
	}

	return profile
}

// IsBlocked reports whether a video ID is blocked by a "never" preference
func (p *Profile) IsBlocked(videoID string) bool {
	_, ok := p.BlockedVideoIDs[videoID]
	return ok
}
