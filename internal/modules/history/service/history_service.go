package service

import (
	"context"
	"encoding/json"
	"fmt"

	"zazen/internal/modules/history/domain"
	historyout "zazen/internal/modules/history/port/out"
)

const collectionKey = "sessions"

type storedCollection struct {
	SchemaVersion int              `json:"schema_version"`
	Sessions      []domain.Session `json:"sessions"`
}

// HistoryService translates the session collection to and from the opaque
// blob store. The encoding is internal; the only contract is that
// Load(Persist(x)) == x for every field.
type HistoryService struct {
	store historyout.BlobStore
}

func NewHistoryService(store historyout.BlobStore) *HistoryService {
	return &HistoryService{store: store}
}

func (s *HistoryService) Load(ctx context.Context) (domain.Collection, error) {
	payload, ok, err := s.store.Get(ctx, collectionKey)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("read session collection: %w", err)
	}
	if !ok {
		return domain.Collection{}, nil
	}
	var stored storedCollection
	if err := json.Unmarshal(payload, &stored); err != nil {
		return domain.Collection{}, fmt.Errorf("decode session collection: %w", err)
	}
	return domain.NewCollection(stored.Sessions), nil
}

func (s *HistoryService) Persist(ctx context.Context, collection domain.Collection) error {
	payload, err := json.Marshal(storedCollection{
		SchemaVersion: domain.SchemaVersion,
		Sessions:      collection.All(),
	})
	if err != nil {
		return fmt.Errorf("encode session collection: %w", err)
	}
	if err := s.store.Set(ctx, collectionKey, payload); err != nil {
		return fmt.Errorf("write session collection: %w", err)
	}
	return nil
}
