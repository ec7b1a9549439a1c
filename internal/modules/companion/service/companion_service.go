package service

import (
	"encoding/json"
	"fmt"
	"time"

	"zazen/internal/modules/companion/domain"
)

// Wire format shared with companion devices. Events flow outbound, sample
// batches flow inbound; anything else is ignored.
type wireEvent struct {
	Type           string    `json:"type"`
	SessionID      string    `json:"session_id"`
	At             time.Time `json:"at"`
	PlannedSeconds float64   `json:"planned_seconds,omitempty"`
	Completed      *bool     `json:"completed,omitempty"`
}

type wireSample struct {
	At  time.Time `json:"at"`
	BPM float64   `json:"bpm"`
}

type wireInbound struct {
	Type    string       `json:"type"`
	Samples []wireSample `json:"samples"`
}

type CompanionService struct{}

func NewCompanionService() *CompanionService {
	return &CompanionService{}
}

func (s *CompanionService) EncodeEvent(event domain.Event) ([]byte, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	wire := wireEvent{
		Type:      string(event.Type),
		SessionID: event.SessionID,
		At:        event.At,
	}
	switch event.Type {
	case domain.EventSessionStarted:
		wire.PlannedSeconds = event.PlannedDuration.Seconds()
	case domain.EventSessionEnded:
		completed := event.Completed
		wire.Completed = &completed
	}
	payload, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode companion event: %w", err)
	}
	return payload, nil
}

// DecodeSamples returns nil for frames that are not heart-rate batches;
// unknown message types from a companion are not an error.
func (s *CompanionService) DecodeSamples(payload []byte) []domain.Sample {
	var inbound wireInbound
	if err := json.Unmarshal(payload, &inbound); err != nil {
		return nil
	}
	if inbound.Type != "heart_rate" || len(inbound.Samples) == 0 {
		return nil
	}
	samples := make([]domain.Sample, 0, len(inbound.Samples))
	for _, sample := range inbound.Samples {
		samples = append(samples, domain.Sample{At: sample.At, BPM: sample.BPM})
	}
	return samples
}
