package data

import "time"

// TimeProvider abstracts the clock so repositories can stamp rows with an
// injectable time source.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the system clock.
type RealTimeProvider struct{}

// Now returns the current system time.
func (r *RealTimeProvider) Now() time.Time { return time.Now() }

// FixedTimeProvider always returns the same instant. Tests use it to make
// generated order ids and defaults deterministic.
type FixedTimeProvider struct {
	fixedTime time.Time
}

// NewFixedTimeProvider creates a FixedTimeProvider pinned to t.
func NewFixedTimeProvider(t time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{fixedTime: t}
}

// Now returns the pinned time.
func (f *FixedTimeProvider) Now() time.Time { return f.fixedTime }
