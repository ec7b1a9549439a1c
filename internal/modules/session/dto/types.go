package dto

import "time"

type StartInput struct {
	Duration time.Duration
}

type StartOutput struct {
	SessionID       string
	StartedAt       time.Time
	PlannedDuration time.Duration
	// AlreadyRunning reports that start was a no-op because a session was
	// in flight; the fields above then describe the existing session.
	AlreadyRunning bool
}

type CompletedOutput struct {
	SessionID            string
	StartedAt            time.Time
	EndedAt              time.Time
	ActualDuration       time.Duration
	CompletionPercentage float64
}

type StopOutput struct {
	// Stopped is false when there was nothing to stop.
	Stopped bool
	Session CompletedOutput
}

type StatusOutput struct {
	Running         bool
	SessionID       string
	StartedAt       time.Time
	PlannedDuration time.Duration
	Elapsed         time.Duration
	Remaining       time.Duration
	Progress        float64
	SampleCount     int
	// Finalized is set when this status read observed an expired countdown
	// and completed it.
	Finalized *CompletedOutput
}

type SampleInput struct {
	At  time.Time
	BPM float64
}
