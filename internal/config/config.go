package config

import (
	"fmt"
	"net/url"
	"time"

	"html-tag-names/internal/scraper"
)

type Config struct {
	Sources       []SourceConfig      `yaml:"sources"`
	Output        OutputConfig        `yaml:"output"`
	HTTP          HttpConfig          `yaml:"http"`
	Rod           RodConfig           `yaml:"rod"`
	Storage       StorageConfig       `yaml:"storage"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// SourceConfig описывает одну страницу-источник и правило извлечения имён
type SourceConfig struct {
	Name   string       `yaml:"name"`
	URL    string       `yaml:"url"`
	Render bool         `yaml:"render"`
	Rule   scraper.Rule `yaml:"rule"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
}

type HttpConfig struct {
	UserAgent                 string `yaml:"user_agent"`
	Accept                    string `yaml:"accept"`
	TotalTimeoutMS            int    `yaml:"total_timeout_ms"`
	MaxIdleConnections        int    `yaml:"max_idle_connections"`
	MaxIdleConnectionsPerHost int    `yaml:"max_idle_connections_per_host"`
	IdleConnectionTimeoutS    int    `yaml:"idle_connection_timeout_s"`
}

type RodConfig struct {
	Enabled      bool   `yaml:"enabled"`
	ChromePath   string `yaml:"chrome_path"`
	Headless     bool   `yaml:"headless"`
	PageTimeoutS int    `yaml:"page_timeout_s"`
}

type StorageConfig struct {
	Driver           string `yaml:"driver"`
	DSN              string `yaml:"dsn"`
	CommandTimeoutMS int    `yaml:"command_timeout_ms"`
}

type ObservabilityConfig struct {
	LogPath       string `yaml:"log_path"`
	LogLevel      string `yaml:"log_level"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`
}

const (
	W3CURL    = "http://w3c.github.io/elements-of-html/"
	WHATWGURL = "https://html.spec.whatwg.org/multipage/indices.html#elements-3"
)

// Default возвращает конфигурацию, с которой утилита работает без файла настроек
func Default() *Config {
	return &Config{
		Sources: []SourceConfig{
			{Name: "w3c", URL: W3CURL, Rule: scraper.W3CRule},
			{Name: "whatwg", URL: WHATWGURL, Rule: scraper.WHATWGRule},
		},
		Output: OutputConfig{
			Path: "index.json",
		},
		HTTP: HttpConfig{
			UserAgent:                 "html-tag-names/1.0",
			Accept:                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			MaxIdleConnections:        10,
			MaxIdleConnectionsPerHost: 2,
			IdleConnectionTimeoutS:    90,
		},
		Rod: RodConfig{
			Headless:     true,
			PageTimeoutS: 60,
		},
		Storage: StorageConfig{
			Driver:           "json",
			CommandTimeoutMS: 5000,
		},
		Observability: ObservabilityConfig{
			LogLevel:      "info",
			LogMaxSizeMB:  10,
			LogMaxBackups: 3,
		},
	}
}

// Validation
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	seen := make(map[string]bool, len(c.Sources))
	for i, src := range c.Sources {
		if src.Name == "" {
			return fmt.Errorf("sources[%d].name is required", i)
		}
		if seen[src.Name] {
			return fmt.Errorf("sources[%d].name %q is duplicated", i, src.Name)
		}
		seen[src.Name] = true

		u, err := url.Parse(src.URL)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("sources[%d].url must be an absolute http(s) URL", i)
		}
		if err := validateRule(src.Rule); err != nil {
			return fmt.Errorf("sources[%d].rule: %w", i, err)
		}
		if src.Render && !c.Rod.Enabled {
			return fmt.Errorf("sources[%d].render requires rod.enabled", i)
		}
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent is required")
	}
	if c.HTTP.TotalTimeoutMS < 0 {
		return fmt.Errorf("http.total_timeout_ms must be >= 0")
	}
	if c.Rod.Enabled && c.Rod.PageTimeoutS < 0 {
		return fmt.Errorf("rod.page_timeout_s must be >= 0")
	}
	switch c.Storage.Driver {
	case "json":
	case "mssql":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required when storage.driver is 'mssql'")
		}
		if c.Storage.CommandTimeoutMS <= 0 {
			return fmt.Errorf("storage.command_timeout_ms must be > 0")
		}
	default:
		return fmt.Errorf("storage.driver must be 'json' or 'mssql'")
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("observability.log_level is required")
	}
	return nil
}

// Getters
func (c *Config) GetTotalTimeout() time.Duration {
	return time.Duration(c.HTTP.TotalTimeoutMS) * time.Millisecond
}

func (c *Config) GetIdleConnectionTimeout() time.Duration {
	return time.Duration(c.HTTP.IdleConnectionTimeoutS) * time.Second
}

func (c *Config) GetCommandTimeout() time.Duration {
	return time.Duration(c.Storage.CommandTimeoutMS) * time.Millisecond
}

func (c *Config) GetRodPageTimeout() time.Duration {
	return time.Duration(c.Rod.PageTimeoutS) * time.Second
}
