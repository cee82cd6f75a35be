package metrics

import (
	"time"
)

// Timer measures how long a run takes
type Timer interface {
	// Time calls fn and returns its wall time along with fn's error
	Time(fn func() error) (time.Duration, error)
}

// WallTimer reads the monotonic clock around fn
type WallTimer struct{}

func (WallTimer) Time(fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	return time.Since(start), err
}

// FixedTimer reports the same duration for every run. Useful in tests,
// where real timings make output unstable.
type FixedTimer time.Duration

func (d FixedTimer) Time(fn func() error) (time.Duration, error) {
	return time.Duration(d), fn()
}
