package schedule

import "errors"

// Scheduling errors
var (
	// ErrNoContent indicates a channel has no playable videos at all
	// (no live playlist and no fallback). Callers render this as an
	// empty state, never as a crash.
	ErrNoContent = errors.New("channel has no playable content")

	// ErrChannelNotFound indicates the requested channel does not exist
	ErrChannelNotFound = errors.New("channel not found")
)
