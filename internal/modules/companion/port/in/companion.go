package in

import (
	"context"

	"zazen/internal/modules/companion/dto"
)

type Usecase interface {
	// Serve runs the bridge until ctx is cancelled or the listener fails.
	Serve(ctx context.Context, addr string) error
	PublishStarted(ctx context.Context, event dto.StartedEvent) error
	PublishEnded(ctx context.Context, event dto.EndedEvent) error
}
