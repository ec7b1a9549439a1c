package in

import (
	"context"

	"zazen/internal/modules/history/dto"
)

type Usecase interface {
	// Load hydrates the in-memory collection from the blob store. It is
	// called once at startup and never fails: corrupt or missing data
	// yields an empty collection.
	Load(ctx context.Context) error
	Append(ctx context.Context, input dto.AppendInput) (dto.SessionOutput, error)
	List(ctx context.Context) ([]dto.SessionOutput, error)
	Remove(ctx context.Context, id string) error
	RemoveAll(ctx context.Context) error
}
