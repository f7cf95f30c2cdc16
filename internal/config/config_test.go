package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxDiagnostics != 100 {
		t.Fatalf("max diagnostics = %d", cfg.MaxDiagnostics)
	}
	if cfg.Engine.SettleDelay() != 500*time.Millisecond {
		t.Fatalf("settle delay = %v", cfg.Engine.SettleDelay())
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `
max_diagnostics = 10

[engine]
discovery_path = "/run/engine.json"
settle_delay_ms = 50
poll_interval_ms = 200
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxDiagnostics != 10 {
		t.Fatalf("max diagnostics = %d", cfg.MaxDiagnostics)
	}
	if cfg.Engine.DiscoveryPath != "/run/engine.json" {
		t.Fatalf("discovery path = %q", cfg.Engine.DiscoveryPath)
	}
	if cfg.Engine.SettleDelay() != 50*time.Millisecond {
		t.Fatalf("settle delay = %v", cfg.Engine.SettleDelay())
	}
	if cfg.Engine.PollInterval() != 200*time.Millisecond {
		t.Fatalf("poll interval = %v", cfg.Engine.PollInterval())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, FileName), []byte("max_diagnostcs = 5\n"), 0o644)
	if _, err := Load(dir); err == nil {
		t.Fatal("unknown key should be rejected")
	}
}
