package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"zazen/internal/modules/history/domain"
	historydto "zazen/internal/modules/history/dto"
	historyin "zazen/internal/modules/history/port/in"
	"zazen/internal/modules/history/service"
	syncin "zazen/internal/modules/sync/port/in"
)

// Interactor owns the in-memory session collection. The in-memory state is
// authoritative: persistence failures are logged and the mutation still
// takes effect, to be flushed by the next successful write.
type Interactor struct {
	mu         sync.Mutex
	svc        *service.HistoryService
	sink       syncin.Usecase
	log        zerolog.Logger
	collection domain.Collection
}

func NewInteractor(svc *service.HistoryService, sink syncin.Usecase, log zerolog.Logger) historyin.Usecase {
	return &Interactor{svc: svc, sink: sink, log: log}
}

func (i *Interactor) Load(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	collection, err := i.svc.Load(ctx)
	if err != nil {
		i.log.Warn().Err(err).Msg("session history unreadable, starting empty")
		i.collection = domain.Collection{}
		return nil
	}
	i.collection = collection
	return nil
}

func (i *Interactor) Append(ctx context.Context, input historydto.AppendInput) (historydto.SessionOutput, error) {
	session := fromAppendInput(input)
	if err := session.Validate(); err != nil {
		return historydto.SessionOutput{}, err
	}

	i.mu.Lock()
	i.collection.Append(session)
	i.persistLocked(ctx)
	i.mu.Unlock()

	return toSessionOutput(session), nil
}

func (i *Interactor) List(_ context.Context) ([]historydto.SessionOutput, error) {
	i.mu.Lock()
	sessions := i.collection.All()
	i.mu.Unlock()

	out := make([]historydto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionOutput(s))
	}
	return out, nil
}

func (i *Interactor) Remove(ctx context.Context, id string) error {
	i.mu.Lock()
	removed := i.collection.Remove(id)
	if removed {
		i.persistLocked(ctx)
	}
	i.mu.Unlock()

	if removed {
		i.notifyDeleted(ctx, id)
	}
	return nil
}

func (i *Interactor) RemoveAll(ctx context.Context) error {
	i.mu.Lock()
	removed := i.collection.All()
	i.collection.Clear()
	i.persistLocked(ctx)
	i.mu.Unlock()

	// Local deletion already completed; external sync is notified per item
	// afterwards and any failure there never reverses it.
	for _, session := range removed {
		i.notifyDeleted(ctx, session.ID)
	}
	return nil
}

func (i *Interactor) persistLocked(ctx context.Context) {
	if err := i.svc.Persist(ctx, i.collection); err != nil {
		i.log.Warn().Err(err).Msg("persist session history failed, in-memory state kept")
	}
}

func (i *Interactor) notifyDeleted(ctx context.Context, id string) {
	if i.sink == nil {
		return
	}
	if err := i.sink.DeleteSession(ctx, id); err != nil {
		i.log.Warn().Err(err).Str("session_id", id).Msg("mindful sink deletion failed")
	}
}

func fromAppendInput(input historydto.AppendInput) domain.Session {
	endedAt := input.EndedAt
	actual := input.ActualDuration
	samples := make([]domain.Sample, 0, len(input.Samples))
	for _, sample := range input.Samples {
		samples = append(samples, domain.Sample{At: sample.At, BPM: sample.BPM})
	}
	if len(samples) == 0 {
		samples = nil
	}
	return domain.Session{
		ID:              input.ID,
		StartedAt:       input.StartedAt,
		PlannedDuration: input.PlannedDuration,
		EndedAt:         &endedAt,
		ActualDuration:  &actual,
		Samples:         samples,
	}
}

func toSessionOutput(session domain.Session) historydto.SessionOutput {
	out := historydto.SessionOutput{
		ID:                   session.ID,
		StartedAt:            session.StartedAt,
		PlannedDuration:      session.PlannedDuration,
		EffectiveDuration:    session.EffectiveDuration(),
		CompletionPercentage: session.CompletionPercentage(),
		AverageBPM:           session.AverageBPM(),
		SampleCount:          len(session.Samples),
	}
	if session.EndedAt != nil {
		out.EndedAt = *session.EndedAt
	}
	if session.ActualDuration != nil {
		out.ActualDuration = *session.ActualDuration
	} else if session.EndedAt != nil {
		out.ActualDuration = session.EndedAt.Sub(session.StartedAt)
	}
	return out
}
