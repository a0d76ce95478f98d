package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"html-tag-names/internal/scraper"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() is invalid: %v", err)
	}
	if len(cfg.Sources) != 2 {
		t.Fatalf("expected 2 default sources, got %d", len(cfg.Sources))
	}
	if cfg.Sources[0].URL != W3CURL || cfg.Sources[1].URL != WHATWGURL {
		t.Errorf("unexpected default URLs: %+v", cfg.Sources)
	}
	if cfg.Sources[1].Rule != scraper.WHATWGRule {
		t.Errorf("unexpected WHATWG rule: %+v", cfg.Sources[1].Rule)
	}
	if cfg.GetTotalTimeout() != 0 {
		t.Errorf("default timeout should be disabled, got %v", cfg.GetTotalTimeout())
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
output:
  path: out/tags.json
http:
  total_timeout_ms: 1500
observability:
  log_level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Output.Path != "out/tags.json" {
		t.Errorf("Output.Path = %q", cfg.Output.Path)
	}
	if cfg.GetTotalTimeout() != 1500*time.Millisecond {
		t.Errorf("GetTotalTimeout() = %v", cfg.GetTotalTimeout())
	}
	if cfg.Observability.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.Observability.LogLevel)
	}
	// Не указанные поля сохраняют значения по умолчанию
	if cfg.HTTP.UserAgent != "html-tag-names/1.0" || len(cfg.Sources) != 2 {
		t.Errorf("defaults were lost: %+v", cfg)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Output.Path != "index.json" {
		t.Errorf("Output.Path = %q", cfg.Output.Path)
	}
}

func TestLoadConfigReplacesSources(t *testing.T) {
	path := writeConfig(t, `
sources:
  - name: local
    url: https://example.com/elements
    rule:
      selector: td code
      text_depth: 1
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Name != "local" || cfg.Sources[0].Rule.Selector != "td code" {
		t.Errorf("unexpected sources: %+v", cfg.Sources)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}
	if _, err := LoadConfig(writeConfig(t, "output: [broken")); err == nil {
		t.Errorf("expected parse error")
	}
	if _, err := LoadConfig(writeConfig(t, "unknown_field: 1\n")); err == nil {
		t.Errorf("expected error for unknown field")
	}
	_, err := LoadConfig(writeConfig(t, "storage:\n  driver: postgres\n"))
	if err == nil || !strings.Contains(err.Error(), "storage.driver") {
		t.Errorf("expected storage.driver validation error, got %v", err)
	}
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "config.example.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig(example): %v", err)
	}
	if cfg.Sources[0].Rule != scraper.W3CRule || cfg.Sources[1].Rule != scraper.WHATWGRule {
		t.Errorf("example rules drifted from built-in rules: %+v", cfg.Sources)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"no sources", func(c *Config) { c.Sources = nil }, "at least one source"},
		{"empty name", func(c *Config) { c.Sources[0].Name = "" }, "sources[0].name"},
		{"duplicate name", func(c *Config) { c.Sources[1].Name = "w3c" }, "duplicated"},
		{"relative url", func(c *Config) { c.Sources[0].URL = "/elements" }, "sources[0].url"},
		{"ftp url", func(c *Config) { c.Sources[1].URL = "ftp://example.com" }, "sources[1].url"},
		{"empty selector", func(c *Config) { c.Sources[0].Rule.Selector = "" }, "selector"},
		{"zero depth", func(c *Config) { c.Sources[1].Rule.TextDepth = 0 }, "text_depth"},
		{"render without rod", func(c *Config) { c.Sources[0].Render = true }, "rod.enabled"},
		{"empty output", func(c *Config) { c.Output.Path = "" }, "output.path"},
		{"empty user agent", func(c *Config) { c.HTTP.UserAgent = "" }, "user_agent"},
		{"negative timeout", func(c *Config) { c.HTTP.TotalTimeoutMS = -1 }, "total_timeout_ms"},
		{"mssql without dsn", func(c *Config) { c.Storage.Driver = "mssql" }, "storage.dsn"},
		{"empty log level", func(c *Config) { c.Observability.LogLevel = "" }, "log_level"},
	}

	for _, tt := range tests {
		cfg := Default()
		tt.mutate(cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: Validate() = %v, want error containing %q", tt.name, err, tt.wantErr)
		}
	}

	cfg := Default()
	cfg.Rod.Enabled = true
	cfg.Sources[1].Render = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("render with rod enabled should be valid: %v", err)
	}
}
