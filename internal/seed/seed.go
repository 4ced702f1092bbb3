// Package seed populates an empty database with the authored channel
// lineup: the channels themselves, their static fallback playlists, and
// the scheduled program blocks. Seeding is idempotent and skipped entirely
// when any channel already exists.
package seed

import (
	"context"
	"fmt"

	"github.com/wfedor/telecast/internal/db"
	"github.com/wfedor/telecast/internal/logger"
	"github.com/wfedor/telecast/internal/models"
)

// channelSeed bundles everything that defines one authored channel
type channelSeed struct {
	channel  *models.Channel
	fallback []fallbackVideo
	blocks   []blockSeed
}

type fallbackVideo struct {
	id       string
	title    string
	duration int64
}

type blockSeed struct {
	dayOfWeek int
	startHour int
	endHour   int
	name      string
	params    *models.SearchParams
}

func strPtr(s string) *string { return &s }

// authoredChannels returns the built-in channel lineup. Fallback playlists
// are hand-picked evergreen videos so every channel has something to air
// before its first successful fetch.
func authoredChannels() []channelSeed {
	return []channelSeed{
		{
			channel: func() *models.Channel {
				ch := models.NewChannel("news24", "News 24", "news", models.ChannelKindNews)
				ch.Icon = strPtr("newspaper")
				ch.Color = strPtr("#c0392b")
				ch.Params = &models.SearchParams{
					Query:         "world news today",
					FeedURL:       "https://www.youtube.com/feeds/videos.xml?channel_id=UC16niRr50-MSBwiO3YDb3RA",
					UploadRecency: "day",
					SortOrder:     "date",
					Limit:         20,
				}
				return ch
			}(),
			fallback: []fallbackVideo{
				{"f8kDdMTIsaA", "The Decade in Review", 1460},
				{"wXhTHyIgQ_U", "How Newsrooms Decide What Makes the Front Page", 912},
				{"0GDGnH1Q2PA", "A Brief History of the Wire Services", 1105},
				{"hC8CH0Z3L54", "Inside a 24-Hour News Cycle", 987},
			},
			blocks: []blockSeed{
				{1, 7, 9, "Morning Briefing", &models.SearchParams{Query: "morning news briefing", UploadRecency: "day"}},
				{1, 19, 21, "Evening Report", &models.SearchParams{Query: "evening news report", UploadRecency: "day"}},
				{5, 19, 21, "Week in Review", &models.SearchParams{Query: "weekly news recap", UploadRecency: "week"}},
			},
		},
		{
			channel: func() *models.Channel {
				ch := models.NewChannel("sports-one", "Sports One", "sports", models.ChannelKindStandard)
				ch.Icon = strPtr("trophy")
				ch.Color = strPtr("#27ae60")
				ch.Params = &models.SearchParams{
					Query:          "sports highlights",
					UploadRecency:  "week",
					MinDurationSec: 240,
					Limit:          15,
				}
				return ch
			}(),
			fallback: []fallbackVideo{
				{"qWcp8rTayNs", "Greatest Comebacks in Sports History", 1320},
				{"Zx1_6F-nCaw", "The Science of the Perfect Free Kick", 845},
				{"R0cL0OzW0iE", "Marathon Legends: A Retrospective", 1740},
				{"y3laV9DDxTE", "Top 50 Plays of the Season", 1510},
			},
			blocks: []blockSeed{
				{0, 14, 18, "Sunday Game Day", &models.SearchParams{Query: "full game highlights", UploadRecency: "day", MinDurationSec: 600}},
				{6, 14, 18, "Saturday Game Day", &models.SearchParams{Query: "full game highlights", UploadRecency: "day", MinDurationSec: 600}},
			},
		},
		{
			channel: func() *models.Channel {
				ch := models.NewChannel("science", "Science Lab", "science", models.ChannelKindStandard)
				ch.Icon = strPtr("flask")
				ch.Color = strPtr("#2980b9")
				ch.Params = &models.SearchParams{
					Query:          "science documentary explained",
					MinDurationSec: 300,
					Limit:          15,
				}
				return ch
			}(),
			fallback: []fallbackVideo{
				{"J2pWSUnkUWk", "How Do Black Holes Evaporate?", 1185},
				{"QcUey-DVYjk", "The Chemistry of Everyday Things", 960},
				{"pTn6Ewhb27k", "Why the Immune System Is So Strange", 1420},
				{"kYfNvmF0Bqw", "A Tour of the Solar System's Moons", 1655},
			},
			blocks: []blockSeed{
				{3, 20, 22, "Deep Space Wednesday", &models.SearchParams{Query: "astronomy documentary", MinDurationSec: 900}},
			},
		},
		{
			channel: func() *models.Channel {
				ch := models.NewChannel("kids", "Kids Corner", "kids", models.ChannelKindStandard)
				ch.Icon = strPtr("teddy-bear")
				ch.Color = strPtr("#f39c12")
				ch.Params = &models.SearchParams{
					Query:          "cartoons for kids full episodes",
					MaxDurationSec: 1800,
					Limit:          15,
				}
				return ch
			}(),
			fallback: []fallbackVideo{
				{"XqZsoesa55w", "Counting Adventures with Animals", 620},
				{"kJQP7kiw5Fk", "The Big Colorful Shapes Show", 745},
				{"tVj0ZTS4WF4", "Storytime: The Brave Little Boat", 880},
			},
			blocks: []blockSeed{
				{6, 8, 11, "Saturday Morning Cartoons", &models.SearchParams{Query: "classic cartoons full episodes"}},
				{0, 8, 11, "Sunday Morning Cartoons", &models.SearchParams{Query: "classic cartoons full episodes"}},
			},
		},
		{
			channel: func() *models.Channel {
				ch := models.NewChannel("music", "Music Box", "music", models.ChannelKindStandard)
				ch.Icon = strPtr("music-note")
				ch.Color = strPtr("#8e44ad")
				ch.Params = &models.SearchParams{
					Query:         "live session full concert",
					UploadRecency: "month",
					Limit:         12,
				}
				return ch
			}(),
			fallback: []fallbackVideo{
				{"vx2u5uUu3DE", "Acoustic Sessions, Volume One", 2410},
				{"hTWKbfoikeg", "An Evening of Piano Standards", 3125},
				{"fJ9rUzIMcZQ", "Live from the Rooftop", 2860},
			},
			blocks: []blockSeed{
				{5, 21, 24, "Friday Night Live", &models.SearchParams{Query: "live concert full set", UploadRecency: "week"}},
			},
		},
	}
}

// Run seeds the database if and only if no channels exist yet
func Run(ctx context.Context, repos *db.Repositories) error {
	count, err := repos.Channels.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check channel count: %w", err)
	}
	if count > 0 {
		logger.Log.Debug().
			Int64("channels", count).
			Msg("Database already seeded; skipping")
		return nil
	}

	seeds := authoredChannels()
	for _, s := range seeds {
		if err := repos.Channels.Create(ctx, s.channel); err != nil {
			return fmt.Errorf("failed to seed channel %s: %w", s.channel.ID, err)
		}

		videos := make([]*models.Video, 0, len(s.fallback))
		for i, fv := range s.fallback {
			videos = append(videos, models.NewVideo(fv.id, s.channel.ID, fv.title, fv.duration, i))
		}
		if err := repos.Videos.ReplacePlaylist(ctx, s.channel.ID, videos); err != nil {
			return fmt.Errorf("failed to seed fallback playlist for %s: %w", s.channel.ID, err)
		}

		for _, b := range s.blocks {
			block := models.NewProgramBlock(s.channel.ID, b.dayOfWeek, b.startHour, b.endHour, b.name, b.params)
			if err := repos.ProgramBlocks.Create(ctx, block); err != nil {
				return fmt.Errorf("failed to seed program block %q for %s: %w", b.name, s.channel.ID, err)
			}
		}
	}

	logger.Log.Info().
		Int("channels", len(seeds)).
		Msg("Seeded authored channel lineup")
	return nil
}
