package domain_test

import (
	"testing"
	"time"

	"zazen/internal/modules/history/domain"
)

func completed(id string, startedAt time.Time, planned, actual time.Duration) domain.Session {
	endedAt := startedAt.Add(actual)
	return domain.Session{
		ID:              id,
		StartedAt:       startedAt,
		PlannedDuration: planned,
		EndedAt:         &endedAt,
		ActualDuration:  &actual,
	}
}

func TestCompletionPercentageClamps(t *testing.T) {
	t.Parallel()
	startedAt := time.Date(2026, 8, 29, 6, 0, 0, 0, time.UTC)

	early := completed("a", startedAt, 10*time.Minute, 3*time.Minute)
	if pct := early.CompletionPercentage(); pct != 0.3 {
		t.Fatalf("expected 0.3, got %.2f", pct)
	}
	over := completed("b", startedAt, 10*time.Minute, 12*time.Minute)
	if pct := over.CompletionPercentage(); pct != 1 {
		t.Fatalf("overrun must clamp to 1, got %.2f", pct)
	}
	instant := completed("c", startedAt, 10*time.Minute, 0)
	if pct := instant.CompletionPercentage(); pct != 0 {
		t.Fatalf("an immediate stop reports 0, got %.2f", pct)
	}
}

func TestValidateRejectsInvertedInterval(t *testing.T) {
	t.Parallel()
	startedAt := time.Date(2026, 8, 29, 6, 0, 0, 0, time.UTC)
	endedAt := startedAt.Add(-time.Minute)
	s := domain.Session{ID: "a", StartedAt: startedAt, PlannedDuration: time.Minute, EndedAt: &endedAt}
	if err := s.Validate(); err == nil {
		t.Fatalf("session ending before it starts must fail")
	}
}

func TestAverageBPM(t *testing.T) {
	t.Parallel()
	startedAt := time.Date(2026, 8, 29, 6, 0, 0, 0, time.UTC)
	s := completed("a", startedAt, 10*time.Minute, 10*time.Minute)
	if s.AverageBPM() != 0 {
		t.Fatalf("no samples must average to 0")
	}
	s.Samples = []domain.Sample{
		{At: startedAt, BPM: 60},
		{At: startedAt.Add(time.Minute), BPM: 66},
	}
	if avg := s.AverageBPM(); avg != 63 {
		t.Fatalf("expected 63, got %.1f", avg)
	}
}

func TestCollectionAppendReplacesByID(t *testing.T) {
	t.Parallel()
	startedAt := time.Date(2026, 8, 29, 6, 0, 0, 0, time.UTC)
	var c domain.Collection
	c.Append(completed("a", startedAt, 10*time.Minute, 5*time.Minute))
	c.Append(completed("b", startedAt.Add(time.Hour), 10*time.Minute, 10*time.Minute))
	c.Append(completed("a", startedAt, 10*time.Minute, 8*time.Minute))

	if c.Len() != 2 {
		t.Fatalf("expected replace-in-place, got %d entries", c.Len())
	}
	all := c.All()
	if all[0].ID != "a" || *all[0].ActualDuration != 8*time.Minute {
		t.Fatalf("expected the replacement to keep position: %+v", all[0])
	}

	if c.Remove("missing") {
		t.Fatalf("removing an unknown id must report false")
	}
	if !c.Remove("a") || c.Len() != 1 {
		t.Fatalf("expected removal of a, got %d entries", c.Len())
	}
}
