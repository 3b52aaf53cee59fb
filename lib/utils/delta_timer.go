package utils

import "time"

// DeltaTimer measures the time between successive frames.
type DeltaTimer struct {
	last time.Time
}

func (d *DeltaTimer) Next() time.Duration {
	// acquire the timestamp exactly once so no error accumulates
	now := time.Now()
	defer func() { d.last = now }()

	if d.last.IsZero() {
		return 0
	}
	return now.Sub(d.last)
}
