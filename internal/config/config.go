package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config centralizes the client's environment settings.
type Config struct {
	APIURL  string `env:"MOREACH_API_URL" envDefault:"https://api.moreach.io"`
	BaseURL string `env:"MOREACH_BASE_URL"`
	DataDir string `env:"MOREACH_DATA_DIR"`
	LogFile string `env:"MOREACH_LOG_FILE"`
	Debug   bool   `env:"MOREACH_DEBUG" envDefault:"false"`
}

// Load reads configuration from the environment, after loading a .env file
// when one is present. DataDir defaults to ~/.moreach and LogFile to
// <DataDir>/debug.log.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // a missing .env file is fine

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".moreach")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "debug.log")
	}
	return &cfg, nil
}
