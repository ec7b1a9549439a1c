package dto

import "time"

type SampleInput struct {
	At  time.Time
	BPM float64
}

type AppendInput struct {
	ID              string
	StartedAt       time.Time
	PlannedDuration time.Duration
	EndedAt         time.Time
	ActualDuration  time.Duration
	Samples         []SampleInput
}

type SessionOutput struct {
	ID                   string
	StartedAt            time.Time
	PlannedDuration      time.Duration
	EndedAt              time.Time
	ActualDuration       time.Duration
	EffectiveDuration    time.Duration
	CompletionPercentage float64
	AverageBPM           float64
	SampleCount          int
}
