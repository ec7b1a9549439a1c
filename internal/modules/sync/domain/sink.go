package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	ErrSinkDisabled     = errors.New("sink is disabled")
	ErrChecksumMismatch = errors.New("sink checksum mismatch")
	ErrSinkTimeout      = errors.New("sink timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one mindful-sink plugin binary. Sinks receive finalized
// sessions and deletion notices; they never influence local state.
type Manifest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Binary  string `yaml:"binary"`
	SHA256  string `yaml:"sha256"`
	Enabled bool   `yaml:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("sink name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("sink version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("sink binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("sink sha256 must be lowercase 64-char hex")
	}
	return nil
}

type Metadata struct {
	Name    string
	Version string
}

// MindfulEntry is the external "mindful session" record: the interval only,
// nothing about biometrics or planned duration leaves the device.
type MindfulEntry struct {
	SessionID string
	StartedAt time.Time
	EndedAt   time.Time
}

func (e MindfulEntry) Validate() error {
	if e.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if e.StartedAt.IsZero() || e.EndedAt.IsZero() {
		return fmt.Errorf("mindful entry interval is required")
	}
	if e.EndedAt.Before(e.StartedAt) {
		return fmt.Errorf("mindful entry cannot end before it starts")
	}
	return nil
}
