package in

import (
	"context"

	"zazen/internal/modules/sync/dto"
)

type Usecase interface {
	// RecordSession and DeleteSession are best-effort: sink failures are
	// logged by the implementation and never returned to the caller.
	RecordSession(ctx context.Context, input dto.RecordInput) error
	DeleteSession(ctx context.Context, sessionID string) error

	List(ctx context.Context) ([]dto.SinkInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
}
