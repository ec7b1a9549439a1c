package service_test

import (
	"encoding/json"
	"testing"
	"time"

	"zazen/internal/modules/companion/domain"
	"zazen/internal/modules/companion/service"
)

func TestEncodeStartedEvent(t *testing.T) {
	t.Parallel()
	svc := service.NewCompanionService()
	at := time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)

	payload, err := svc.EncodeEvent(domain.Event{
		Type:            domain.EventSessionStarted,
		SessionID:       "sit-1",
		At:              at,
		PlannedDuration: 10 * time.Minute,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var frame map[string]any
	if err := json.Unmarshal(payload, &frame); err != nil {
		t.Fatalf("frame is not json: %v", err)
	}
	if frame["type"] != "session_started" || frame["session_id"] != "sit-1" {
		t.Fatalf("unexpected frame: %v", frame)
	}
	if frame["planned_seconds"] != 600.0 {
		t.Fatalf("expected planned_seconds 600, got %v", frame["planned_seconds"])
	}
	if _, present := frame["completed"]; present {
		t.Fatalf("start frames must not carry a completed flag")
	}
}

func TestEncodeEndedEventCarriesCompleted(t *testing.T) {
	t.Parallel()
	svc := service.NewCompanionService()

	payload, err := svc.EncodeEvent(domain.Event{
		Type:      domain.EventSessionEnded,
		SessionID: "sit-1",
		At:        time.Date(2026, 8, 30, 7, 10, 0, 0, time.UTC),
		Completed: false,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var frame map[string]any
	if err := json.Unmarshal(payload, &frame); err != nil {
		t.Fatalf("frame is not json: %v", err)
	}
	// completed=false is meaningful for an early stop and must serialize.
	if frame["completed"] != false {
		t.Fatalf("expected completed=false in frame: %v", frame)
	}
}

func TestEncodeRejectsInvalidEvents(t *testing.T) {
	t.Parallel()
	svc := service.NewCompanionService()
	if _, err := svc.EncodeEvent(domain.Event{Type: "mystery", SessionID: "sit-1"}); err == nil {
		t.Fatalf("unknown event type must fail")
	}
	if _, err := svc.EncodeEvent(domain.Event{Type: domain.EventSessionStarted}); err == nil {
		t.Fatalf("missing session id must fail")
	}
}

func TestDecodeSamplesParsesHeartRateBatch(t *testing.T) {
	t.Parallel()
	svc := service.NewCompanionService()
	payload := []byte(`{"type":"heart_rate","samples":[{"at":"2026-08-30T07:01:00Z","bpm":61},{"at":"2026-08-30T07:01:05Z","bpm":60}]}`)

	samples := svc.DecodeSamples(payload)
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].BPM != 61 || samples[1].BPM != 60 {
		t.Fatalf("unexpected samples: %+v", samples)
	}
}

func TestDecodeSamplesIgnoresOtherFrames(t *testing.T) {
	t.Parallel()
	svc := service.NewCompanionService()

	if got := svc.DecodeSamples([]byte(`{"type":"ping"}`)); got != nil {
		t.Fatalf("non heart-rate frames must decode to nil, got %+v", got)
	}
	if got := svc.DecodeSamples([]byte(`{"type":"heart_rate","samples":[]}`)); got != nil {
		t.Fatalf("empty batches must decode to nil, got %+v", got)
	}
	if got := svc.DecodeSamples([]byte(`not json at all`)); got != nil {
		t.Fatalf("garbage must decode to nil, got %+v", got)
	}
}
