package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFallbackBlockIndex(t *testing.T) {
	tests := []struct {
		hour  int
		index int
		name  string
	}{
		{0, 4, FallbackBlockLatenight},
		{4, 4, FallbackBlockLatenight},
		{5, 0, FallbackBlockEarly},
		{8, 0, FallbackBlockEarly},
		{9, 1, FallbackBlockMorning},
		{13, 1, FallbackBlockMorning},
		{14, 2, FallbackBlockAfternoon},
		{18, 2, FallbackBlockAfternoon},
		{19, 3, FallbackBlockPrimetime},
		{22, 3, FallbackBlockPrimetime},
		{23, 4, FallbackBlockLatenight},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.index, FallbackBlockIndex(tt.hour), "hour %d", tt.hour)
		assert.Equal(t, tt.name, FallbackBlockName(tt.hour), "hour %d", tt.hour)
	}
}

func TestCacheBlock(t *testing.T) {
	tests := []struct {
		hour  int
		block string
	}{
		{0, CacheBlockLatenight},
		{4, CacheBlockLatenight},
		{5, CacheBlockMorning},
		{10, CacheBlockMorning},
		{11, CacheBlockMidday},
		{14, CacheBlockMidday},
		{15, CacheBlockAfternoon},
		{18, CacheBlockAfternoon},
		{19, CacheBlockPrimetime},
		{22, CacheBlockPrimetime},
		{23, CacheBlockLatenight},
	}

	for _, tt := range tests {
		at := time.Date(2026, 3, 14, tt.hour, 30, 0, 0, time.UTC)
		assert.Equal(t, tt.block, CacheBlock(at), "hour %d", tt.hour)
	}
}

func TestCacheBlock_FinerThanFallbackBlocks(t *testing.T) {
	// 10:00 and 12:00 share a fallback block but sit in different cache
	// blocks, so cached live content rotates more often than the fallback
	// shuffle reseeds
	assert.Equal(t, FallbackBlockIndex(10), FallbackBlockIndex(12))
	tenAM := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	noon := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.NotEqual(t, CacheBlock(tenAM), CacheBlock(noon))
}
