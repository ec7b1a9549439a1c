package in

import (
	"context"

	"zazen/internal/modules/stats/dto"
)

type Usecase interface {
	// Overview recomputes every figure from the full session list. There
	// is no incremental state: any history mutation is picked up by the
	// next call.
	Overview(ctx context.Context) (dto.OverviewOutput, error)
}
