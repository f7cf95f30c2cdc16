// Package config loads tempo.toml, the optional server configuration file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up in the workspace root.
const FileName = "tempo.toml"

// Config is the full configuration with defaults applied.
type Config struct {
	MaxDiagnostics int    `toml:"max_diagnostics"`
	CachePath      string `toml:"cache_path"`
	Engine         Engine `toml:"engine"`
}

// Engine configures the sync client.
type Engine struct {
	DiscoveryPath  string `toml:"discovery_path"`
	SettleDelayMs  int    `toml:"settle_delay_ms"`
	PollIntervalMs int    `toml:"poll_interval_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxDiagnostics: 100,
		Engine: Engine{
			DiscoveryPath: filepath.Join(os.TempDir(), "tempo-engine.json"),
			SettleDelayMs: 500,
		},
	}
}

// Load reads tempo.toml from dir. A missing file yields the defaults;
// unknown keys are an error so typos don't silently disable settings.
func Load(dir string) (Config, error) {
	cfg := Default()
	path := filepath.Join(dir, FileName)
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New("unknown key in " + FileName + ": " + undecoded[0].String())
	}
	if cfg.MaxDiagnostics <= 0 {
		cfg.MaxDiagnostics = Default().MaxDiagnostics
	}
	return cfg, nil
}

// SettleDelay returns the reconnect settle delay as a duration.
func (e Engine) SettleDelay() time.Duration {
	if e.SettleDelayMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(e.SettleDelayMs) * time.Millisecond
}

// PollInterval returns the discovery poll interval as a duration.
func (e Engine) PollInterval() time.Duration {
	if e.PollIntervalMs <= 0 {
		return time.Second
	}
	return time.Duration(e.PollIntervalMs) * time.Millisecond
}
