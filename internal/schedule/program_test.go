package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfedor/telecast/internal/models"
)

func testChannel() *models.Channel {
	return &models.Channel{
		ID:       "sports-one",
		Name:     "Sports One",
		Category: "sports",
		Kind:     models.ChannelKindStandard,
		Params:   &models.SearchParams{Query: "sports highlights"},
	}
}

func TestResolveProgram_ActiveBlock(t *testing.T) {
	channel := testChannel()
	blocks := []*models.ProgramBlock{
		models.NewProgramBlock("sports-one", 0, 14, 18, "Sunday Game Day", &models.SearchParams{Query: "full game"}),
	}

	// Sunday 15:00
	now := time.Date(2026, 3, 15, 15, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, now.Weekday())

	program := ResolveProgram(channel, blocks, now)

	assert.True(t, program.Scheduled)
	assert.Equal(t, "Sunday Game Day", program.Name)
	require.NotNil(t, program.Params)
	assert.Equal(t, "full game", program.Params.Query)
}

func TestResolveProgram_StartHourInclusiveEndHourExclusive(t *testing.T) {
	channel := testChannel()
	blocks := []*models.ProgramBlock{
		models.NewProgramBlock("sports-one", 0, 14, 18, "Sunday Game Day", nil),
	}

	atStart := ResolveProgram(channel, blocks, time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC))
	assert.True(t, atStart.Scheduled)

	atEnd := ResolveProgram(channel, blocks, time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC))
	assert.False(t, atEnd.Scheduled)
}

func TestResolveProgram_WrongDay(t *testing.T) {
	channel := testChannel()
	blocks := []*models.ProgramBlock{
		models.NewProgramBlock("sports-one", 0, 14, 18, "Sunday Game Day", nil),
	}

	// Monday 15:00, same hours as the Sunday block
	program := ResolveProgram(channel, blocks, time.Date(2026, 3, 16, 15, 0, 0, 0, time.UTC))

	assert.False(t, program.Scheduled)
}

func TestResolveProgram_GapSynthesizesDefault(t *testing.T) {
	channel := testChannel()

	program := ResolveProgram(channel, nil, time.Date(2026, 3, 15, 15, 0, 0, 0, time.UTC))

	assert.False(t, program.Scheduled)
	assert.Equal(t, "Mixed Sports One", program.Name)
	assert.Equal(t, channel.Params, program.Params)
}

func TestUpcomingPrograms_SkipsStartedBlocksToday(t *testing.T) {
	blocks := []*models.ProgramBlock{
		models.NewProgramBlock("news24", 0, 7, 9, "Morning Briefing", nil),
		models.NewProgramBlock("news24", 0, 19, 21, "Evening Report", nil),
	}

	// Sunday 10:00: the morning block already started, the evening one has not
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	upcoming := UpcomingPrograms(blocks, now)

	// The projection covers offsets 0..6, so a Sunday-only schedule viewed
	// on Sunday shows only the blocks still ahead today
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Evening Report", upcoming[0].Name)
	assert.Equal(t, 0, upcoming[0].DayOffset)
}

func TestUpcomingPrograms_SortedByDayThenHour(t *testing.T) {
	blocks := []*models.ProgramBlock{
		models.NewProgramBlock("news24", 3, 20, 22, "Wednesday Late", nil),
		models.NewProgramBlock("news24", 1, 19, 21, "Monday Evening", nil),
		models.NewProgramBlock("news24", 1, 7, 9, "Monday Morning", nil),
	}

	// Sunday midnight
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	upcoming := UpcomingPrograms(blocks, now)

	require.Len(t, upcoming, 3)
	assert.Equal(t, "Monday Morning", upcoming[0].Name)
	assert.Equal(t, "Monday Evening", upcoming[1].Name)
	assert.Equal(t, "Wednesday Late", upcoming[2].Name)
	assert.Equal(t, 1, upcoming[0].DayOffset)
	assert.Equal(t, 3, upcoming[2].DayOffset)
}

func TestUpcomingPrograms_Empty(t *testing.T) {
	upcoming := UpcomingPrograms(nil, time.Now())

	assert.Empty(t, upcoming)
}
