package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	syncoutadapter "zazen/internal/modules/sync/adapter/out"
)

const manifestYAML = `- name: mindful-file
  version: 1.0.0
  binary: plugins/mindful-file
  sha256: ` + "0000000000000000000000000000000000000000000000000000000000000000" + `
  enabled: true
- name: remote
  version: 0.2.0
  binary: /opt/sinks/remote
  sha256: ` + "1111111111111111111111111111111111111111111111111111111111111111" + `
  enabled: false
`

func TestLoadResolvesRelativeBinaryPaths(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	if err := os.MkdirAll(filepath.Join(home, "plugins"), 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, "plugins", "sinks.yaml"), []byte(manifestYAML), 0o644); err != nil {
		t.Fatalf("write sinks.yaml: %v", err)
	}

	store := syncoutadapter.NewFileManifestStore(home)
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 2 {
		t.Fatalf("expected two manifests, got %d", len(manifests))
	}
	if manifests[0].Binary != filepath.Join(home, "plugins", "mindful-file") {
		t.Fatalf("relative path must resolve against the data dir, got %s", manifests[0].Binary)
	}
	if manifests[1].Binary != "/opt/sinks/remote" {
		t.Fatalf("absolute path must stay untouched, got %s", manifests[1].Binary)
	}
	if manifests[1].Enabled {
		t.Fatalf("enabled flag lost in decoding")
	}
}

func TestLoadMissingFileYieldsEmpty(t *testing.T) {
	t.Parallel()
	store := syncoutadapter.NewFileManifestStore(t.TempDir())
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty list, got %d", len(manifests))
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	if err := os.MkdirAll(filepath.Join(home, "plugins"), 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, "plugins", "sinks.yaml"), []byte("{not yaml"), 0o644); err != nil {
		t.Fatalf("write sinks.yaml: %v", err)
	}

	store := syncoutadapter.NewFileManifestStore(home)
	if _, err := store.Load(context.Background()); err == nil || !strings.Contains(err.Error(), "decode sink manifests") {
		t.Fatalf("expected decode error, got %v", err)
	}
}
