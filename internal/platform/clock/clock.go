package clock

import "time"

// Clock abstracts wall-clock time so usecases stay deterministic in tests.
// Countdown math is always recomputed from Now() deltas, never from
// accumulated ticks, so a suspended process self-corrects on the next read.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
