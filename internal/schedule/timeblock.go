package schedule

import "time"

// The day is partitioned twice, at different granularities.
//
// Fallback blocks drive the deterministic shuffle seed, so the rotated order
// of a static playlist changes a handful of times per day. Cache blocks are
// the finer partition used for cache invalidation, so live content visibly
// rotates across a viewing day even when a TTL has not elapsed.

// Fallback block names, in seed-index order.
const (
	FallbackBlockEarly     = "early"
	FallbackBlockMorning   = "morning"
	FallbackBlockAfternoon = "afternoon"
	FallbackBlockPrimetime = "primetime"
	FallbackBlockLatenight = "latenight"
)

// Cache block names.
const (
	CacheBlockMorning   = "morning"
	CacheBlockMidday    = "midday"
	CacheBlockAfternoon = "afternoon"
	CacheBlockPrimetime = "primetime"
	CacheBlockLatenight = "latenight"
)

// FallbackBlockIndex returns the index of the fallback block containing the
// given local hour. Blocks: 05-09 early, 09-14 morning, 14-19 afternoon,
// 19-23 primetime, 23-05 latenight.
func FallbackBlockIndex(hour int) int {
	switch {
	case hour >= 5 && hour < 9:
		return 0
	case hour >= 9 && hour < 14:
		return 1
	case hour >= 14 && hour < 19:
		return 2
	case hour >= 19 && hour < 23:
		return 3
	default:
		return 4
	}
}

// FallbackBlockName returns the name of the fallback block for a local hour.
func FallbackBlockName(hour int) string {
	names := []string{
		FallbackBlockEarly,
		FallbackBlockMorning,
		FallbackBlockAfternoon,
		FallbackBlockPrimetime,
		FallbackBlockLatenight,
	}
	return names[FallbackBlockIndex(hour)]
}

// CacheBlock returns the cache time block for an instant, in local time.
// Blocks: 05-11 morning, 11-15 midday, 15-19 afternoon, 19-23 primetime,
// 23-05 latenight.
func CacheBlock(t time.Time) string {
	hour := t.Hour()
	switch {
	case hour >= 5 && hour < 11:
		return CacheBlockMorning
	case hour >= 11 && hour < 15:
		return CacheBlockMidday
	case hour >= 15 && hour < 19:
		return CacheBlockAfternoon
	case hour >= 19 && hour < 23:
		return CacheBlockPrimetime
	default:
		return CacheBlockLatenight
	}
}
