package schedule

import (
	"time"

	"github.com/wfedor/telecast/internal/models"
)

// RotationSeed derives the shuffle seed for an instant: day-of-year times ten
// plus the fallback block index. Every viewer in the same calendar day and
// time block shares a seed, so the rotated order is coordinated across
// machines while still changing through the day and week.
func RotationSeed(now time.Time) int64 {
	dayOfYear := int64(now.YearDay() - 1)
	return dayOfYear*10 + int64(FallbackBlockIndex(now.Hour()))
}

// RotatedFallback returns a deterministic pseudo-random permutation of a
// channel's static fallback playlist for the given instant, with any blocked
// video IDs removed first. The input slice is not modified.
func RotatedFallback(videos []*models.Video, blocked map[string]struct{}, now time.Time) []*models.Video {
	filtered := make([]*models.Video, 0, len(videos))
	for _, v := range videos {
		if _, ok := blocked[v.ID]; ok {
			continue
		}
		filtered = append(filtered, v)
	}

	shuffleSeeded(filtered, RotationSeed(now))
	return filtered
}

// shuffleSeeded applies a Fisher-Yates shuffle driven by a xorshift64
// generator. The permutation is a pure function of the seed: no global
// math/rand state and no external entropy.
func shuffleSeeded(videos []*models.Video, seed int64) {
	rng := newXorshift(seed)
	for i := len(videos) - 1; i > 0; i-- {
		j := int(rng.next() % uint64(i+1))
		videos[i], videos[j] = videos[j], videos[i]
	}
}

// xorshift is a xorshift64 pseudo-random generator. Statistical quality is
// modest but far better than needed for visibly varied playlist rotation,
// and the sequence is fully determined by the seed.
type xorshift struct {
	state uint64
}

func newXorshift(seed int64) *xorshift {
	// A zero state would lock the generator at zero forever
	s := uint64(seed)
	if s == 0 {
		s = 0x9E3779B97F4A7C15
	}
	return &xorshift{state: s}
}

func (x *xorshift) next() uint64 {
	x.state ^= x.state << 13
	x.state ^= x.state >> 7
	x.state ^= x.state << 17
	return x.state
}
