package domain

import "time"

// Sample is one biometric reading relayed by a companion device.
type Sample struct {
	At  time.Time `json:"at"`
	BPM float64   `json:"bpm"`
}

// ActiveSession is the provisional record of a running countdown. Nothing
// here ticks: elapsed, remaining and progress are recomputed from the wall
// clock on every read, so a process suspended for an arbitrary interval
// reports correct values on the next wake.
type ActiveSession struct {
	SessionID       string        `json:"session_id"`
	StartedAt       time.Time     `json:"started_at"`
	PlannedDuration time.Duration `json:"planned_duration"`
	Samples         []Sample      `json:"samples,omitempty"`
}

func (a ActiveSession) Elapsed(now time.Time) time.Duration {
	elapsed := now.Sub(a.StartedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (a ActiveSession) Remaining(now time.Time) time.Duration {
	remaining := a.PlannedDuration - a.Elapsed(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (a ActiveSession) Progress(now time.Time) float64 {
	ratio := a.Elapsed(now).Seconds() / a.PlannedDuration.Seconds()
	if ratio > 1 {
		return 1
	}
	return ratio
}

func (a ActiveSession) Expired(now time.Time) bool {
	return a.Remaining(now) <= 0
}

// FinalizedSession is produced exactly once per run, on timeout or manual
// stop, and is immutable from then on.
type FinalizedSession struct {
	ID              string
	StartedAt       time.Time
	PlannedDuration time.Duration
	EndedAt         time.Time
	ActualDuration  time.Duration
	Samples         []Sample
}
