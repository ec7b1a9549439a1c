package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"zazen/internal/modules/sync/domain"
	"zazen/internal/modules/sync/dto"
	syncout "zazen/internal/modules/sync/port/out"
)

type SyncService struct {
	store syncout.ManifestStore
	host  syncout.Host
}

func NewSyncService(store syncout.ManifestStore, host syncout.Host) *SyncService {
	return &SyncService{store: store, host: host}
}

// RunnableSinks returns enabled manifests whose binaries pass checksum
// verification. A sink that fails verification is skipped, not fatal.
func (s *SyncService) RunnableSinks(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	runnable := make([]domain.Manifest, 0, len(manifests))
	for _, m := range manifests {
		if !m.Enabled {
			continue
		}
		if err := m.Validate(); err != nil {
			continue
		}
		if err := checksumMatches(m.Binary, m.SHA256); err != nil {
			continue
		}
		runnable = append(runnable, m)
	}
	return runnable, nil
}

func (s *SyncService) Record(ctx context.Context, manifest domain.Manifest, entry domain.MindfulEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return s.host.RecordSession(ctx, manifest, entry)
}

func (s *SyncService) Delete(ctx context.Context, manifest domain.Manifest, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	return s.host.DeleteSession(ctx, manifest, sessionID)
}

func (s *SyncService) List(ctx context.Context) ([]dto.SinkInfo, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SinkInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.SinkInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary})
	}
	return out, nil
}

func (s *SyncService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if result.BinaryReachable {
			result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		}
		if result.BinaryReachable && result.ChecksumValid && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !result.BinaryReachable {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if result.BinaryReachable && !result.ChecksumValid {
			result.Error = domain.ErrChecksumMismatch.Error()
		}
		results = append(results, result)
	}
	return results, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func checksumMatches(path, want string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open sink binary: %w", err)
	}
	defer f.Close()
	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return fmt.Errorf("hash sink binary: %w", err)
	}
	if hex.EncodeToString(hash.Sum(nil)) != want {
		return domain.ErrChecksumMismatch
	}
	return nil
}
