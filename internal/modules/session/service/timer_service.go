package service

import (
	"fmt"
	"time"

	"zazen/internal/modules/session/domain"
	"zazen/internal/platform/clock"
	apperrors "zazen/internal/platform/errors"
	"zazen/internal/platform/id"
)

type TimerService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewTimerService(clock clock.Clock, idGen id.Generator) *TimerService {
	return &TimerService{clock: clock, idGen: idGen}
}

func (s *TimerService) Begin(duration time.Duration) (domain.ActiveSession, error) {
	if duration <= 0 {
		return domain.ActiveSession{}, fmt.Errorf("%w: duration must be positive", apperrors.ErrInvalidInput)
	}
	return domain.ActiveSession{
		SessionID:       s.idGen.New(),
		StartedAt:       s.clock.Now(),
		PlannedDuration: duration,
	}, nil
}

// Finalize stamps the end of a run. The end time is always "now at
// detection": for a manual stop that is the stop call, for an expired
// countdown it is the progress read that noticed the expiry.
func (s *TimerService) Finalize(active domain.ActiveSession) domain.FinalizedSession {
	endedAt := s.clock.Now()
	actual := endedAt.Sub(active.StartedAt)
	if actual < 0 {
		actual = 0
	}
	return domain.FinalizedSession{
		ID:              active.SessionID,
		StartedAt:       active.StartedAt,
		PlannedDuration: active.PlannedDuration,
		EndedAt:         endedAt,
		ActualDuration:  actual,
		Samples:         active.Samples,
	}
}

func (s *TimerService) Now() time.Time {
	return s.clock.Now()
}
