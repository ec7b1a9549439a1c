package usecase_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"zazen/internal/modules/sync/domain"
	syncdto "zazen/internal/modules/sync/dto"
	"zazen/internal/modules/sync/service"
	"zazen/internal/modules/sync/usecase"
)

type fakeManifestStore struct {
	manifests []domain.Manifest
	err       error
}

func (f *fakeManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return f.manifests, f.err
}

type fakeHost struct {
	records   []domain.MindfulEntry
	deletes   []string
	recordErr error
}

func (f *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (f *fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{}, nil
}
func (f *fakeHost) RecordSession(_ context.Context, _ domain.Manifest, entry domain.MindfulEntry) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.records = append(f.records, entry)
	return nil
}
func (f *fakeHost) DeleteSession(_ context.Context, _ domain.Manifest, sessionID string) error {
	f.deletes = append(f.deletes, sessionID)
	return nil
}

func verifiedManifest(t *testing.T) domain.Manifest {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sink")
	content := []byte("sink-binary")
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write sink binary: %v", err)
	}
	digest := sha256.Sum256(content)
	return domain.Manifest{
		Name:    "sink",
		Version: "1.0.0",
		Binary:  path,
		SHA256:  hex.EncodeToString(digest[:]),
		Enabled: true,
	}
}

func TestRecordSessionSwallowsSinkFailures(t *testing.T) {
	t.Parallel()
	host := &fakeHost{recordErr: fmt.Errorf("sink exploded")}
	store := &fakeManifestStore{manifests: []domain.Manifest{verifiedManifest(t)}}
	uc := usecase.NewInteractor(service.NewSyncService(store, host), zerolog.Nop())

	started := time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)
	err := uc.RecordSession(context.Background(), syncdto.RecordInput{
		SessionID: "sit-1",
		StartedAt: started,
		EndedAt:   started.Add(10 * time.Minute),
	})
	if err != nil {
		t.Fatalf("sink failures must never surface: %v", err)
	}
}

func TestRecordSessionReachesVerifiedSinks(t *testing.T) {
	t.Parallel()
	host := &fakeHost{}
	store := &fakeManifestStore{manifests: []domain.Manifest{verifiedManifest(t)}}
	uc := usecase.NewInteractor(service.NewSyncService(store, host), zerolog.Nop())

	started := time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)
	if err := uc.RecordSession(context.Background(), syncdto.RecordInput{
		SessionID: "sit-1",
		StartedAt: started,
		EndedAt:   started.Add(10 * time.Minute),
	}); err != nil {
		t.Fatalf("record session: %v", err)
	}
	if len(host.records) != 1 || host.records[0].SessionID != "sit-1" {
		t.Fatalf("expected the entry to reach the sink, got %+v", host.records)
	}
}

func TestDeleteSessionSwallowsManifestErrors(t *testing.T) {
	t.Parallel()
	store := &fakeManifestStore{err: fmt.Errorf("manifest unreadable")}
	uc := usecase.NewInteractor(service.NewSyncService(store, &fakeHost{}), zerolog.Nop())

	if err := uc.DeleteSession(context.Background(), "sit-1"); err != nil {
		t.Fatalf("manifest failures must never surface: %v", err)
	}
}
