// Command mindful-file is the reference sink: it appends mindful-minute
// entries to a JSONL journal so an external health store can import them.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-plugin"

	syncrpc "zazen/internal/modules/sync/adapter/out/rpc"
)

const journalName = "mindful-journal.jsonl"

type entry struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Deleted   bool      `json:"deleted,omitempty"`
}

type server struct {
	path string
}

func (s *server) GetMetadata(_ context.Context, _ *syncrpc.Empty) (*syncrpc.Metadata, error) {
	return &syncrpc.Metadata{
		Name:    "mindful-file",
		Version: "1.0.0",
	}, nil
}

func (s *server) RecordSession(_ context.Context, in *syncrpc.RecordSessionRequest) (*syncrpc.Empty, error) {
	if err := s.append(entry{
		SessionID: in.SessionID,
		StartedAt: in.StartedAt,
		EndedAt:   in.EndedAt,
	}); err != nil {
		return nil, err
	}
	return &syncrpc.Empty{}, nil
}

// DeleteSession appends a tombstone rather than rewriting the journal; the
// importer is expected to honor the latest entry per session id.
func (s *server) DeleteSession(_ context.Context, in *syncrpc.DeleteSessionRequest) (*syncrpc.Empty, error) {
	if err := s.append(entry{SessionID: in.SessionID, Deleted: true}); err != nil {
		return nil, err
	}
	return &syncrpc.Empty{}, nil
}

func (s *server) append(e entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(raw, '\n')); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

func main() {
	dir := os.Getenv("MINDFUL_JOURNAL_DIR")
	if dir == "" {
		dir = "."
	}
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: syncrpc.HandshakeConfig,
		Plugins:         syncrpc.PluginMap(&server{path: filepath.Join(dir, journalName)}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
