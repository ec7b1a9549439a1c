package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	historydto "zazen/internal/modules/history/dto"
	historyin "zazen/internal/modules/history/port/in"
	"zazen/internal/modules/session/domain"
	sessiondto "zazen/internal/modules/session/dto"
	sessionin "zazen/internal/modules/session/port/in"
	sessionout "zazen/internal/modules/session/port/out"
	"zazen/internal/modules/session/service"
	syncdto "zazen/internal/modules/sync/dto"
	syncin "zazen/internal/modules/sync/port/in"
	apperrors "zazen/internal/platform/errors"
)

// Interactor drives the idle -> running -> completed lifecycle. Completion
// is transient: finalizing appends to history, announces to the mindful
// sink and companion devices, clears the active record and returns to idle.
//
// The mutex exists because companion samples arrive on the websocket bridge
// goroutine while the TUI tick owns the main flow.
type Interactor struct {
	mu          sync.Mutex
	svc         *service.TimerService
	activeStore sessionout.ActiveSessionStore
	history     historyin.Usecase
	sink        syncin.Usecase
	publisher   sessionout.EventPublisher
	log         zerolog.Logger
}

func NewInteractor(
	svc *service.TimerService,
	activeStore sessionout.ActiveSessionStore,
	history historyin.Usecase,
	sink syncin.Usecase,
	publisher sessionout.EventPublisher,
	log zerolog.Logger,
) sessionin.Usecase {
	return &Interactor{
		svc:         svc,
		activeStore: activeStore,
		history:     history,
		sink:        sink,
		publisher:   publisher,
		log:         log,
	}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	active, err := i.loadActive(ctx)
	if err == nil {
		if !active.Expired(i.svc.Now()) {
			// Already running: no-op, report the existing session.
			return sessiondto.StartOutput{
				SessionID:       active.SessionID,
				StartedAt:       active.StartedAt,
				PlannedDuration: active.PlannedDuration,
				AlreadyRunning:  true,
			}, nil
		}
		// The previous countdown ran out while nobody was looking;
		// complete it before starting the new one.
		i.finalizeLocked(ctx, active)
	}

	active, err = i.svc.Begin(input.Duration)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	if err := i.activeStore.SaveActive(ctx, active); err != nil {
		i.log.Warn().Err(err).Msg("persist active session failed")
	}
	if i.publisher != nil {
		if err := i.publisher.SessionStarted(ctx, active.SessionID, active.StartedAt, active.PlannedDuration); err != nil {
			i.log.Warn().Err(err).Msg("companion start notification failed")
		}
	}
	return sessiondto.StartOutput{
		SessionID:       active.SessionID,
		StartedAt:       active.StartedAt,
		PlannedDuration: active.PlannedDuration,
	}, nil
}

func (i *Interactor) Stop(ctx context.Context) (sessiondto.StopOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	active, err := i.loadActive(ctx)
	if err != nil {
		// Idle: stop is a no-op.
		return sessiondto.StopOutput{}, nil
	}
	completed := i.finalizeLocked(ctx, active)
	return sessiondto.StopOutput{Stopped: true, Session: completed}, nil
}

func (i *Interactor) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	active, err := i.loadActive(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, nil
	}
	now := i.svc.Now()
	if active.Expired(now) {
		completed := i.finalizeLocked(ctx, active)
		return sessiondto.StatusOutput{Finalized: &completed}, nil
	}
	return sessiondto.StatusOutput{
		Running:         true,
		SessionID:       active.SessionID,
		StartedAt:       active.StartedAt,
		PlannedDuration: active.PlannedDuration,
		Elapsed:         active.Elapsed(now),
		Remaining:       active.Remaining(now),
		Progress:        active.Progress(now),
		SampleCount:     len(active.Samples),
	}, nil
}

func (i *Interactor) AddSamples(ctx context.Context, samples []sessiondto.SampleInput) error {
	if len(samples) == 0 {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()

	active, err := i.loadActive(ctx)
	if err != nil {
		// No session to attribute the readings to.
		return nil
	}
	for _, sample := range samples {
		active.Samples = append(active.Samples, domain.Sample{At: sample.At, BPM: sample.BPM})
	}
	if err := i.activeStore.SaveActive(ctx, active); err != nil {
		i.log.Warn().Err(err).Msg("persist companion samples failed")
	}
	return nil
}

func (i *Interactor) loadActive(ctx context.Context) (domain.ActiveSession, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNoActiveSession) {
		i.log.Warn().Err(err).Msg("active session unreadable, treating as idle")
	}
	return active, err
}

// finalizeLocked completes one run: history first (local state is
// authoritative), then best-effort external announcements, then back to idle.
func (i *Interactor) finalizeLocked(ctx context.Context, active domain.ActiveSession) sessiondto.CompletedOutput {
	fin := i.svc.Finalize(active)

	samples := make([]historydto.SampleInput, 0, len(fin.Samples))
	for _, sample := range fin.Samples {
		samples = append(samples, historydto.SampleInput{At: sample.At, BPM: sample.BPM})
	}
	_, err := i.history.Append(ctx, historydto.AppendInput{
		ID:              fin.ID,
		StartedAt:       fin.StartedAt,
		PlannedDuration: fin.PlannedDuration,
		EndedAt:         fin.EndedAt,
		ActualDuration:  fin.ActualDuration,
		Samples:         samples,
	})
	pct := fin.ActualDuration.Seconds() / fin.PlannedDuration.Seconds()
	if pct > 1 {
		pct = 1
	}
	completed := sessiondto.CompletedOutput{
		SessionID:            fin.ID,
		StartedAt:            fin.StartedAt,
		EndedAt:              fin.EndedAt,
		ActualDuration:       fin.ActualDuration,
		CompletionPercentage: pct,
	}
	if err != nil {
		i.log.Error().Err(err).Str("session_id", fin.ID).Msg("record session in history failed")
	}

	if i.sink != nil {
		if err := i.sink.RecordSession(ctx, syncdto.RecordInput{
			SessionID: fin.ID,
			StartedAt: fin.StartedAt,
			EndedAt:   fin.EndedAt,
		}); err != nil {
			i.log.Warn().Err(err).Str("session_id", fin.ID).Msg("mindful sink record failed")
		}
	}
	if i.publisher != nil {
		if err := i.publisher.SessionEnded(ctx, fin.ID, fin.EndedAt, fin.ActualDuration >= fin.PlannedDuration); err != nil {
			i.log.Warn().Err(err).Msg("companion end notification failed")
		}
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		i.log.Warn().Err(err).Msg("clear active session failed")
	}
	return completed
}
