package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.BodySizeBytes() != constants.DefaultMaxBodySizeBytes {
		t.Fatalf("expected default body limit, got %d", cfg.BodySizeBytes())
	}
	if cfg.MetricsPath != constants.DefaultMetricsPath {
		t.Fatalf("expected default metrics path, got %q", cfg.MetricsPath)
	}
	if cfg.ShutdownTimeoutDuration() != constants.DefaultShutdownTimeout {
		t.Fatalf("expected default shutdown timeout, got %s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxBodySize: 16K
metricsPath: internal/metrics
shutdownTimeout: 3s
logging:
  level: debug
  format: console
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.BodySizeBytes() != 16*1024 {
		t.Fatalf("expected body limit override, got %d", cfg.BodySizeBytes())
	}
	if cfg.MetricsPath != "/internal/metrics" {
		t.Fatalf("expected metrics path with a leading slash, got %s", cfg.MetricsPath)
	}
	if cfg.ShutdownTimeoutDuration() != 3*time.Second {
		t.Fatalf("expected 3s shutdown timeout, got %s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"Bad size":    "maxBodySize: invalid",
		"Bad timeout": "shutdownTimeout: soon",
		"Bad YAML":    "address: [unterminated",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatal("expected error but got nil")
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxBodySizeBytes,
		"1024":      1024,
		"512b":      512,
		"64K":       64 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	for _, bad := range []string{"1G", "abc", "99999999999999999M"} {
		if _, err := ParseSize(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
