package in

import (
	"context"

	historydto "zazen/internal/modules/history/dto"
	historyin "zazen/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]historydto.SessionOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Remove(ctx context.Context, id string) error {
	return h.usecase.Remove(ctx, id)
}

func (h CLIHandler) RemoveAll(ctx context.Context) error {
	return h.usecase.RemoveAll(ctx)
}
