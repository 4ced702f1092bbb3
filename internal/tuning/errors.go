package tuning

import "errors"

// Tuning errors
var (
	// ErrInvalidAction indicates an unrecognized preference action
	ErrInvalidAction = errors.New("invalid preference action")

	// ErrPreferenceNotFound indicates no preference exists for the video
	ErrPreferenceNotFound = errors.New("preference not found")
)
