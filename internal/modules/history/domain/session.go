package domain

import (
	"fmt"
	"time"
)

const SchemaVersion = 1

// Sample is one biometric reading relayed by a companion device while the
// session was running.
type Sample struct {
	At  time.Time `json:"at"`
	BPM float64   `json:"bpm"`
}

// Session is one completed (or, transiently, still-running) meditation run.
// Once EndedAt is set the record never changes again.
type Session struct {
	ID              string         `json:"id"`
	StartedAt       time.Time      `json:"started_at"`
	PlannedDuration time.Duration  `json:"planned_duration"`
	EndedAt         *time.Time     `json:"ended_at,omitempty"`
	ActualDuration  *time.Duration `json:"actual_duration,omitempty"`
	Samples         []Sample       `json:"samples,omitempty"`
}

func (s Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("session id is required")
	}
	if s.StartedAt.IsZero() {
		return fmt.Errorf("session start time is required")
	}
	if s.PlannedDuration <= 0 {
		return fmt.Errorf("planned duration must be positive")
	}
	if s.EndedAt != nil && s.EndedAt.Before(s.StartedAt) {
		return fmt.Errorf("session cannot end before it starts")
	}
	return nil
}

func (s Session) IsCompleted() bool {
	return s.EndedAt != nil
}

// EffectiveDuration is the elapsed time credited to the session: the recorded
// actual duration when finalized, otherwise the planned length.
func (s Session) EffectiveDuration() time.Duration {
	if s.ActualDuration != nil {
		return *s.ActualDuration
	}
	if s.EndedAt != nil {
		return s.EndedAt.Sub(s.StartedAt)
	}
	return s.PlannedDuration
}

// CompletionPercentage is in [0, 1]. A session stopped immediately after
// starting legitimately reports 0.
func (s Session) CompletionPercentage() float64 {
	ratio := s.EffectiveDuration().Seconds() / s.PlannedDuration.Seconds()
	if ratio > 1 {
		return 1
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}

// AverageBPM is 0 when no companion samples were recorded.
func (s Session) AverageBPM() float64 {
	if len(s.Samples) == 0 {
		return 0
	}
	total := 0.0
	for _, sample := range s.Samples {
		total += sample.BPM
	}
	return total / float64(len(s.Samples))
}

// Collection is the ordered-by-insertion session set, unique by id.
type Collection struct {
	sessions []Session
}

func NewCollection(sessions []Session) Collection {
	c := Collection{}
	for _, s := range sessions {
		c.Append(s)
	}
	return c
}

// Append adds a session, replacing any record with the same id in place.
func (c *Collection) Append(session Session) {
	for i := range c.sessions {
		if c.sessions[i].ID == session.ID {
			c.sessions[i] = session
			return
		}
	}
	c.sessions = append(c.sessions, session)
}

// Remove deletes by id and reports whether anything was removed.
func (c *Collection) Remove(id string) bool {
	for i := range c.sessions {
		if c.sessions[i].ID == id {
			c.sessions = append(c.sessions[:i], c.sessions[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Collection) Clear() {
	c.sessions = nil
}

func (c *Collection) All() []Session {
	out := make([]Session, len(c.sessions))
	copy(out, c.sessions)
	return out
}

func (c *Collection) Len() int {
	return len(c.sessions)
}
