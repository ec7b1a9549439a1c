package out

import (
	"context"

	"zazen/internal/modules/sync/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	RecordSession(ctx context.Context, manifest domain.Manifest, entry domain.MindfulEntry) error
	DeleteSession(ctx context.Context, manifest domain.Manifest, sessionID string) error
}
