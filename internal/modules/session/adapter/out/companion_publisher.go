package out

import (
	"context"
	"time"

	companiondto "zazen/internal/modules/companion/dto"
	companionin "zazen/internal/modules/companion/port/in"
	sessionout "zazen/internal/modules/session/port/out"
)

// CompanionPublisher adapts the companion bridge to the timer's event port.
type CompanionPublisher struct {
	companion companionin.Usecase
}

func NewCompanionPublisher(companion companionin.Usecase) sessionout.EventPublisher {
	return &CompanionPublisher{companion: companion}
}

func (p *CompanionPublisher) SessionStarted(ctx context.Context, sessionID string, startedAt time.Time, planned time.Duration) error {
	return p.companion.PublishStarted(ctx, companiondto.StartedEvent{
		SessionID:       sessionID,
		At:              startedAt,
		PlannedDuration: planned,
	})
}

func (p *CompanionPublisher) SessionEnded(ctx context.Context, sessionID string, endedAt time.Time, completed bool) error {
	return p.companion.PublishEnded(ctx, companiondto.EndedEvent{
		SessionID: sessionID,
		At:        endedAt,
		Completed: completed,
	})
}
