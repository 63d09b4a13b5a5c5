package clock

import "time"

// Clock abstracts the wall clock so tests can control time
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now reports the current wall-clock time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
