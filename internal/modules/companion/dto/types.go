package dto

import "time"

type StartedEvent struct {
	SessionID       string
	At              time.Time
	PlannedDuration time.Duration
}

type EndedEvent struct {
	SessionID string
	At        time.Time
	Completed bool
}
