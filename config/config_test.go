package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"sappyduck/engine"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SearchConfig() != engine.DefaultSearchConfig() {
		t.Errorf("search config %+v want %+v", cfg.SearchConfig(), engine.DefaultSearchConfig())
	}
	if cfg.TimeManager() != engine.DefaultTimeManager() {
		t.Errorf("time manager %+v want %+v", cfg.TimeManager(), engine.DefaultTimeManager())
	}
	if cfg.DepthMaxTime != 5*time.Minute || cfg.InfiniteMaxTime != time.Hour {
		t.Errorf("limits %v / %v", cfg.DepthMaxTime, cfg.InfiniteMaxTime)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level %q want info", cfg.LogLevel)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SAPPYDUCK_MAX_DEPTH", "7")
	t.Setenv("SAPPYDUCK_MAX_USAGE", "0.5")
	t.Setenv("SAPPYDUCK_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDepth != 7 || cfg.MaxUsage != 0.5 || cfg.LogLevel != "debug" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "sappyduck.yaml", `
max_depth: 12
aspiration_window: 0.25
aspiration_max_retries: 3
depth_max_time: 30s
default_moves_to_go: 40
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDepth != 12 || cfg.AspirationWindow != 0.25 || cfg.AspirationMaxRetries != 3 {
		t.Errorf("search keys not read: %+v", cfg)
	}
	if cfg.DepthMaxTime != 30*time.Second {
		t.Errorf("depth_max_time %v want 30s", cfg.DepthMaxTime)
	}
	if cfg.TimeManager().DefaultMovesToGo != 40 {
		t.Errorf("default_moves_to_go %d want 40", cfg.DefaultMovesToGo)
	}
	if cfg.SafeguardMs != engine.DefaultSafeguardMs {
		t.Errorf("unset key lost its default: safeguard_ms %v", cfg.SafeguardMs)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	for _, body := range []string{
		"max_depth: 0\n",
		"max_usage: 0\n",
		"default_moves_to_go: -1\n",
		"aspiration_window: -0.5\n",
	} {
		path := writeConfig(t, "bad.yaml", body)
		if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%q: got %v want ErrInvalidConfig", body, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug level not enabled")
	}

	if _, err := NewLogger("chatty"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("got %v want ErrInvalidConfig", err)
	}
}
