package in

import (
	"context"

	syncdto "zazen/internal/modules/sync/dto"
	syncin "zazen/internal/modules/sync/port/in"
)

type CLIHandler struct {
	usecase syncin.Usecase
}

func NewCLIHandler(usecase syncin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]syncdto.SinkInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]syncdto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}
