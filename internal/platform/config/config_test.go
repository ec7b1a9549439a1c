package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"zazen/internal/platform/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ZAZEN_HOME", "ZAZEN_LOG_LEVEL", "ZAZEN_COMPANION_ADDR", "ZAZEN_DEFAULT_DURATION"} {
		t.Setenv(key, "placeholder")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.New("/data/zazen")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.HomePath != "/data/zazen" {
		t.Fatalf("unexpected home: %s", cfg.HomePath)
	}
	if cfg.DBPath != filepath.Join("/data/zazen", "zazen.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected warn default, got %s", cfg.LogLevel)
	}
	if cfg.DefaultDuration != 10*time.Minute {
		t.Fatalf("expected 10m default, got %s", cfg.DefaultDuration)
	}
}

func TestFlagWinsOverEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ZAZEN_HOME", "/from/env")
	cfg, err := config.New("/from/flag")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.HomePath != "/from/flag" {
		t.Fatalf("explicit path must win, got %s", cfg.HomePath)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ZAZEN_HOME", "/from/env")
	t.Setenv("ZAZEN_LOG_LEVEL", "debug")
	t.Setenv("ZAZEN_COMPANION_ADDR", "0.0.0.0:9000")
	t.Setenv("ZAZEN_DEFAULT_DURATION", "25m")

	cfg, err := config.New("")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.HomePath != "/from/env" || cfg.LogLevel != "debug" {
		t.Fatalf("environment not applied: %+v", cfg)
	}
	if cfg.CompanionAddr != "0.0.0.0:9000" || cfg.DefaultDuration != 25*time.Minute {
		t.Fatalf("environment not applied: %+v", cfg)
	}
}

func TestRejectsNonPositiveDefaultDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("ZAZEN_DEFAULT_DURATION", "-5m")
	if _, err := config.New("/data"); err == nil {
		t.Fatalf("negative default duration must fail")
	}
}
