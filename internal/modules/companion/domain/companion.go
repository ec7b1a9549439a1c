package domain

import (
	"fmt"
	"time"
)

type EventType string

const (
	EventSessionStarted EventType = "session_started"
	EventSessionEnded   EventType = "session_ended"
)

// Event is a lifecycle notification pushed to paired devices.
type Event struct {
	Type            EventType
	SessionID       string
	At              time.Time
	PlannedDuration time.Duration
	Completed       bool
}

func (e Event) Validate() error {
	switch e.Type {
	case EventSessionStarted, EventSessionEnded:
	default:
		return fmt.Errorf("unknown event type %q", string(e.Type))
	}
	if e.SessionID == "" {
		return fmt.Errorf("event session id is required")
	}
	return nil
}

// Sample is one inbound biometric reading. Readings are opaque to the
// bridge; they are merged into the active session by the timer.
type Sample struct {
	At  time.Time
	BPM float64
}
