package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"zazen/internal/modules/sync/domain"
	syncdto "zazen/internal/modules/sync/dto"
	syncin "zazen/internal/modules/sync/port/in"
	"zazen/internal/modules/sync/service"
)

// Interactor fans finalized sessions and deletions out to every runnable
// sink. Failures are logged and swallowed; there are no retries and the
// local session lifecycle never observes them.
type Interactor struct {
	svc *service.SyncService
	log zerolog.Logger
}

func NewInteractor(svc *service.SyncService, log zerolog.Logger) syncin.Usecase {
	return &Interactor{svc: svc, log: log}
}

func (i *Interactor) RecordSession(ctx context.Context, input syncdto.RecordInput) error {
	sinks, err := i.svc.RunnableSinks(ctx)
	if err != nil {
		i.log.Warn().Err(err).Msg("load mindful sinks failed")
		return nil
	}
	entry := domain.MindfulEntry{SessionID: input.SessionID, StartedAt: input.StartedAt, EndedAt: input.EndedAt}
	for _, sink := range sinks {
		if err := i.svc.Record(ctx, sink, entry); err != nil {
			i.log.Warn().Err(err).Str("sink", sink.Name).Str("session_id", input.SessionID).Msg("record mindful session failed")
		}
	}
	return nil
}

func (i *Interactor) DeleteSession(ctx context.Context, sessionID string) error {
	sinks, err := i.svc.RunnableSinks(ctx)
	if err != nil {
		i.log.Warn().Err(err).Msg("load mindful sinks failed")
		return nil
	}
	for _, sink := range sinks {
		if err := i.svc.Delete(ctx, sink, sessionID); err != nil {
			i.log.Warn().Err(err).Str("sink", sink.Name).Str("session_id", sessionID).Msg("delete mindful session failed")
		}
	}
	return nil
}

func (i *Interactor) List(ctx context.Context) ([]syncdto.SinkInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]syncdto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}
