package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalConfig = `
environment: test
upstream:
  base_url: http://localhost:5000
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Upstream.Timeout != 15*time.Second {
		t.Errorf("upstream timeout = %v", cfg.Upstream.Timeout)
	}
	if cfg.Upstream.RetryAttempts != 1 {
		t.Errorf("retry attempts = %d", cfg.Upstream.RetryAttempts)
	}
	if cfg.Lookup.DefaultPeriod != "1y" {
		t.Errorf("default period = %q", cfg.Lookup.DefaultPeriod)
	}
	if cfg.Log.Level != "info" || cfg.Metrics.Path != "/metrics" {
		t.Errorf("log level = %q, metrics path = %q", cfg.Log.Level, cfg.Metrics.Path)
	}
}

func TestLoadRejectsMissingUpstream(t *testing.T) {
	if _, err := Load(writeConfig(t, "environment: test\n")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadRejectsDiagnosticsWithoutBrokers(t *testing.T) {
	body := minimalConfig + `
diagnostics:
  enabled: true
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("STOCKLENS_UPSTREAM_URL", "http://backend:9000")
	t.Setenv("PORT", "3000")
	t.Setenv("STOCKLENS_LOG_LEVEL", "debug")

	cfg, err := LoadWithEnv(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Upstream.BaseURL != "http://backend:9000" {
		t.Errorf("base url = %q", cfg.Upstream.BaseURL)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}
