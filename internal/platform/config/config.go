package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HomePath        string
	DBPath          string
	LogLevel        string
	CompanionAddr   string
	DefaultDuration time.Duration
}

type envOverrides struct {
	Home            string        `env:"ZAZEN_HOME"`
	LogLevel        string        `env:"ZAZEN_LOG_LEVEL" envDefault:"warn"`
	CompanionAddr   string        `env:"ZAZEN_COMPANION_ADDR"`
	DefaultDuration time.Duration `env:"ZAZEN_DEFAULT_DURATION" envDefault:"10m"`
}

// New resolves the data directory. An explicit homePath (the --home flag)
// wins over ZAZEN_HOME, which wins over ~/.zazen.
func New(homePath string) (Config, error) {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	home := homePath
	if home == "" {
		home = raw.Home
	}
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		home = filepath.Join(userHome, ".zazen")
	}
	if raw.DefaultDuration <= 0 {
		return Config{}, fmt.Errorf("ZAZEN_DEFAULT_DURATION must be positive")
	}

	return Config{
		HomePath:        home,
		DBPath:          filepath.Join(home, "zazen.db"),
		LogLevel:        raw.LogLevel,
		CompanionAddr:   raw.CompanionAddr,
		DefaultDuration: raw.DefaultDuration,
	}, nil
}
