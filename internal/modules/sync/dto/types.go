package dto

import "time"

type RecordInput struct {
	SessionID string
	StartedAt time.Time
	EndedAt   time.Time
}

type SinkInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
}

type DoctorResult struct {
	Name            string
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Error           string
}
