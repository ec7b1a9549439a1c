package domain_test

import (
	"testing"
	"time"

	"zazen/internal/modules/session/domain"
)

func TestRemainingRecomputesFromWallClock(t *testing.T) {
	t.Parallel()
	startedAt := time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)
	active := domain.ActiveSession{
		SessionID:       "sit-1",
		StartedAt:       startedAt,
		PlannedDuration: 10 * time.Minute,
	}

	// A long gap between reads must not accumulate drift: only the wall
	// clock matters.
	if got := active.Remaining(startedAt.Add(3 * time.Minute)); got != 7*time.Minute {
		t.Fatalf("expected 7m remaining, got %s", got)
	}
	if got := active.Remaining(startedAt.Add(9*time.Minute + 59*time.Second)); got != time.Second {
		t.Fatalf("expected 1s remaining, got %s", got)
	}
	if got := active.Remaining(startedAt.Add(time.Hour)); got != 0 {
		t.Fatalf("remaining must floor at 0, got %s", got)
	}
}

func TestProgressClampsToOne(t *testing.T) {
	t.Parallel()
	startedAt := time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)
	active := domain.ActiveSession{
		SessionID:       "sit-1",
		StartedAt:       startedAt,
		PlannedDuration: 10 * time.Minute,
	}

	if got := active.Progress(startedAt.Add(5 * time.Minute)); got != 0.5 {
		t.Fatalf("expected 0.5 progress, got %.2f", got)
	}
	if got := active.Progress(startedAt.Add(time.Hour)); got != 1 {
		t.Fatalf("progress must clamp to 1, got %.2f", got)
	}
	if got := active.Progress(startedAt.Add(-time.Minute)); got != 0 {
		t.Fatalf("a clock stepping backwards must report 0, got %.2f", got)
	}
}

func TestExpired(t *testing.T) {
	t.Parallel()
	startedAt := time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)
	active := domain.ActiveSession{
		SessionID:       "sit-1",
		StartedAt:       startedAt,
		PlannedDuration: 10 * time.Minute,
	}

	if active.Expired(startedAt.Add(9 * time.Minute)) {
		t.Fatalf("9m into a 10m sit is not expired")
	}
	if !active.Expired(startedAt.Add(10 * time.Minute)) {
		t.Fatalf("the planned deadline itself counts as expired")
	}
}
