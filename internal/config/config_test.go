package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseOverDefaults(t *testing.T) {
	t.Parallel()

	raw := []byte(`
logging:
  level: debug
fetch:
  cookie: "z_c0=token"
  timeout: 5s
browser:
  enabled: true
  headless: false
panel:
  lineDelay: 250ms
  clipboard: false
server:
  addr: ":9000"
`)

	cfg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
	if cfg.Fetch.Cookie != "z_c0=token" || cfg.Fetch.Timeout != 5*time.Second {
		t.Fatalf("unexpected fetch: %+v", cfg.Fetch)
	}
	if cfg.Fetch.UserAgent != defaultUserAgent {
		t.Fatalf("expected default user agent kept, got %q", cfg.Fetch.UserAgent)
	}
	if !cfg.Browser.Enabled || cfg.Browser.Headless || cfg.Browser.Timeout != 60*time.Second {
		t.Fatalf("unexpected browser: %+v", cfg.Browser)
	}
	if cfg.Panel.LineDelay != 250*time.Millisecond || cfg.Panel.Clipboard {
		t.Fatalf("unexpected panel: %+v", cfg.Panel)
	}
	if cfg.Server.Addr != ":9000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
}

func TestParseSingleFieldSections(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("panel:\n  clipboard: false\nbrowser:\n  headless: false\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if cfg.Panel.Clipboard {
		t.Fatalf("clipboard: false was dropped")
	}
	if cfg.Browser.Headless {
		t.Fatalf("headless: false was dropped")
	}
	if cfg.Panel.LineDelay != 100*time.Millisecond || cfg.Browser.Timeout != 60*time.Second {
		t.Fatalf("untouched keys must keep defaults: %+v %+v", cfg.Panel, cfg.Browser)
	}
	if cfg.Server.Addr != defaultConfig().Server.Addr {
		t.Fatalf("absent section must keep defaults, got %q", cfg.Server.Addr)
	}
}

func TestParseZeroLineDelay(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("panel:\n  lineDelay: 0s\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Panel.LineDelay != 0 {
		t.Fatalf("expected zero delay, got %v", cfg.Panel.LineDelay)
	}
	if !cfg.Panel.Clipboard {
		t.Fatalf("clipboard default lost")
	}
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("panel: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadAppliesFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipper.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":7000\"\nlogging:\n  format: json\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(cookieEnv, "from-env")
	t.Setenv(browserEnv, "true")
	t.Setenv(logLevelEnv, "warn")

	cfg := Load()

	if cfg.Server.Addr != ":7000" || cfg.Logging.Format != "json" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Fetch.Cookie != "from-env" || !cfg.Browser.Enabled || cfg.Logging.Level != "warn" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.Panel.LineDelay != 100*time.Millisecond {
		t.Fatalf("expected default line delay, got %v", cfg.Panel.LineDelay)
	}
}

func TestLoadFallsBackOnMissingFile(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()
	if cfg.Server.Addr != defaultConfig().Server.Addr {
		t.Fatalf("expected defaults, got %+v", cfg.Server)
	}
}
