package in

import (
	"context"

	"zazen/internal/modules/session/dto"
)

type Usecase interface {
	// Start is a silent no-op when a session is already running.
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	// Stop is a silent no-op when idle.
	Stop(ctx context.Context) (dto.StopOutput, error)
	// Status recomputes remaining/progress from the wall clock and
	// finalizes the session if the countdown has expired.
	Status(ctx context.Context) (dto.StatusOutput, error)
	// AddSamples merges companion biometric readings into the active
	// session; samples arriving while idle are dropped.
	AddSamples(ctx context.Context, samples []dto.SampleInput) error
}
