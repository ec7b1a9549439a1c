package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"zazen/internal/modules/companion/domain"
	companiondto "zazen/internal/modules/companion/dto"
	companionin "zazen/internal/modules/companion/port/in"
	companionout "zazen/internal/modules/companion/port/out"
	"zazen/internal/modules/companion/service"
)

type Interactor struct {
	svc       *service.CompanionService
	transport companionout.Transport
	sink      companionout.SampleSink
	log       zerolog.Logger
}

func NewInteractor(svc *service.CompanionService, transport companionout.Transport, sink companionout.SampleSink, log zerolog.Logger) companionin.Usecase {
	return &Interactor{svc: svc, transport: transport, sink: sink, log: log}
}

func (i *Interactor) Serve(ctx context.Context, addr string) error {
	return i.transport.Run(ctx, addr, i.handleFrame)
}

func (i *Interactor) handleFrame(ctx context.Context, payload []byte) {
	samples := i.svc.DecodeSamples(payload)
	if len(samples) == 0 {
		return
	}
	if err := i.sink.AddSamples(ctx, samples); err != nil {
		i.log.Warn().Err(err).Msg("merge companion samples failed")
	}
}

func (i *Interactor) PublishStarted(ctx context.Context, event companiondto.StartedEvent) error {
	return i.publish(ctx, domain.Event{
		Type:            domain.EventSessionStarted,
		SessionID:       event.SessionID,
		At:              event.At,
		PlannedDuration: event.PlannedDuration,
	})
}

func (i *Interactor) PublishEnded(ctx context.Context, event companiondto.EndedEvent) error {
	return i.publish(ctx, domain.Event{
		Type:      domain.EventSessionEnded,
		SessionID: event.SessionID,
		At:        event.At,
		Completed: event.Completed,
	})
}

func (i *Interactor) publish(ctx context.Context, event domain.Event) error {
	payload, err := i.svc.EncodeEvent(event)
	if err != nil {
		return err
	}
	return i.transport.Broadcast(ctx, payload)
}
