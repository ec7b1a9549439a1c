package out

import (
	"context"
	"time"

	"zazen/internal/modules/session/domain"
)

type ActiveSessionStore interface {
	SaveActive(ctx context.Context, session domain.ActiveSession) error
	LoadActive(ctx context.Context) (domain.ActiveSession, error)
	ClearActive(ctx context.Context) error
}

// EventPublisher pushes lifecycle events to paired companion devices.
// Publishing is best-effort; errors are logged by the caller and ignored.
type EventPublisher interface {
	SessionStarted(ctx context.Context, sessionID string, startedAt time.Time, planned time.Duration) error
	SessionEnded(ctx context.Context, sessionID string, endedAt time.Time, completed bool) error
}
