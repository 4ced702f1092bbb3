// Package clock provides an injectable time source so scheduling logic can be
// tested against arbitrary instants instead of the real wall clock.
package clock

import "time"

// Clock supplies the current time. The scheduler, cache, and programming
// resolver all take a Clock so "now" is controllable in tests.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by the real wall clock in local time.
type System struct{}

// Now returns the current local time.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock that always returns the same instant. Intended for tests.
type Fixed struct {
	Time time.Time
}

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return f.Time
}
