package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "https://api.moreach.io" {
		t.Errorf("APIURL = %q, want default", cfg.APIURL)
	}
	if !strings.HasSuffix(cfg.DataDir, ".moreach") {
		t.Errorf("DataDir = %q, want a ~/.moreach default", cfg.DataDir)
	}
	if cfg.LogFile != filepath.Join(cfg.DataDir, "debug.log") {
		t.Errorf("LogFile = %q, want inside DataDir", cfg.LogFile)
	}
	if cfg.Debug {
		t.Error("Debug = true, want false by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MOREACH_API_URL", "http://localhost:8080")
	t.Setenv("MOREACH_BASE_URL", "http://localhost:3000")
	t.Setenv("MOREACH_DATA_DIR", "/tmp/moreach-test")
	t.Setenv("MOREACH_LOG_FILE", "/tmp/moreach-test/custom.log")
	t.Setenv("MOREACH_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.DataDir != "/tmp/moreach-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.LogFile != "/tmp/moreach-test/custom.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
}
