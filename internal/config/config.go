package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// RSSSource is one optional direct feed.
type RSSSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Lang string `yaml:"lang"`
}

// Blocklist excludes sources by name term and links by domain.
type Blocklist struct {
	Terms   []string `yaml:"terms"`
	Domains []string `yaml:"domains"`
}

type Config struct {
	AggregatorEndpoint string `yaml:"aggregator_endpoint"`
	SpotifyEndpoint    string `yaml:"spotify_endpoint"`

	RequestTimeout string `yaml:"request_timeout"`
	CacheTTL       string `yaml:"cache_ttl"`

	Mode       string `yaml:"mode"`
	Market     string `yaml:"market"`
	MonthsBack int    `yaml:"months_back"`

	SourceCap  int `yaml:"source_cap"`
	MaxAgeDays int `yaml:"max_age_days"`

	MaxItems  int `yaml:"max_items"`
	BatchSize int `yaml:"batch_size"`

	Blocklist  Blocklist   `yaml:"blocklist"`
	RSSSources []RSSSource `yaml:"rss_sources"`
}

// TimeoutDuration returns the per-request timeout, defaulting to 15s.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// TTLDuration returns the cache window, defaulting to 5m.
func (c *Config) TTLDuration() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// MaxAge returns the item age window, or zero when disabled.
func (c *Config) MaxAge() time.Duration {
	if c.MaxAgeDays <= 0 {
		return 0
	}
	return time.Duration(c.MaxAgeDays) * 24 * time.Hour
}

// RenderLimit caps how many cards are actually rendered, independent of how
// many were fetched.
func (c *Config) RenderLimit() int {
	if c.MaxItems <= 0 {
		return 50
	}
	return c.MaxItems
}

// RenderBatch is the chunked-render batch size, clamped to a sane range.
func (c *Config) RenderBatch() int {
	switch {
	case c.BatchSize <= 0:
		return 12
	case c.BatchSize < 6:
		return 6
	case c.BatchSize > 24:
		return 24
	default:
		return c.BatchSize
	}
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "kitzer", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to the config path on first run.
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults.
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	for name, endpoint := range map[string]string{
		"aggregator_endpoint": cfg.AggregatorEndpoint,
		"spotify_endpoint":    cfg.SpotifyEndpoint,
	} {
		if endpoint == "" {
			continue
		}
		u, err := url.Parse(endpoint)
		if err != nil {
			return fmt.Errorf("%s: invalid url: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s: url scheme must be http or https, got %q", name, u.Scheme)
		}
	}

	if cfg.AggregatorEndpoint == "" && cfg.SpotifyEndpoint == "" && len(cfg.RSSSources) == 0 {
		return fmt.Errorf("no endpoints configured")
	}

	if cfg.Mode != "" && cfg.Mode != "curated" && cfg.Mode != "extended" {
		return fmt.Errorf("mode must be curated or extended, got %q", cfg.Mode)
	}

	for i, s := range cfg.RSSSources {
		if s.Name == "" {
			return fmt.Errorf("rss source %d: name is required", i)
		}
		u, err := url.Parse(s.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("rss source %q: url must be http or https", s.Name)
		}
	}
	return nil
}
