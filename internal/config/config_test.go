package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Source.BaseURL != defaultBaseURL {
		t.Fatalf("base url = %q, want default", cfg.Source.BaseURL)
	}
	if got := cfg.Poller.IntervalDuration(); got != defaultPollInterval {
		t.Fatalf("interval = %v, want %v", got, defaultPollInterval)
	}
	if cfg.Poller.SerializeBatches {
		t.Fatal("batches must not be serialized by default")
	}
	if got := cfg.Transport.TimeoutDuration(); got != defaultHTTPTimeout {
		t.Fatalf("timeout = %v, want %v", got, defaultHTTPTimeout)
	}
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
source:
  baseUrl: https://mirror.example.org
poller:
  interval: 60s
  serializeBatches: true
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ARTICLE_INGEST_CONFIG", path)
	t.Setenv("POLL_INTERVAL", "90s")

	cfg := Load()

	if cfg.Source.BaseURL != "https://mirror.example.org" {
		t.Fatalf("base url = %q, want file value", cfg.Source.BaseURL)
	}
	// Environment wins over the file.
	if got := cfg.Poller.IntervalDuration(); got != 90*time.Second {
		t.Fatalf("interval = %v, want 90s", got)
	}
	if !cfg.Poller.SerializeBatches {
		t.Fatal("serializeBatches from file ignored")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestIntervalDurationFallsBackOnGarbage(t *testing.T) {
	p := PollerConfig{Interval: "soon"}
	if got := p.IntervalDuration(); got != defaultPollInterval {
		t.Fatalf("interval = %v, want default", got)
	}
}
