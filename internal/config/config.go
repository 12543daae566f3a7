// Package config loads wordmap settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wordmap/wordmap/internal/explore"
)

// Config holds all wordmap settings.
type Config struct {
	// APIURL is the root of the persistence API. Default: http://127.0.0.1:5000.
	APIURL string `yaml:"api_url"`

	// Timeout bounds each API request. Default: 10s.
	Timeout time.Duration `yaml:"timeout"`

	// DBPath is the local quiz history database. Empty means the
	// default data directory.
	DBPath string `yaml:"db_path"`

	Log LogConfig `yaml:"log"`

	Capabilities explore.Capabilities `yaml:"capabilities"`
}

// LogConfig configures the log file.
type LogConfig struct {
	// Path of the log file. Empty disables logging.
	Path string `yaml:"path"`

	// Level is one of debug, info, warn, error. Default: info.
	Level string `yaml:"level"`
}

// Default returns a Config with every optional view capability on.
func Default() Config {
	return Config{
		APIURL:       "http://127.0.0.1:5000",
		Timeout:      10 * time.Second,
		Log:          LogConfig{Level: "info"},
		Capabilities: explore.AllCapabilities(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/wordmap/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "wordmap", "config.yaml"), nil
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays WORDMAP_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	if u := os.Getenv("WORDMAP_API_URL"); u != "" {
		c.APIURL = u
	}
	if t := os.Getenv("WORDMAP_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("WORDMAP_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if p := os.Getenv("WORDMAP_DB"); p != "" {
		c.DBPath = p
	}
	if p := os.Getenv("WORDMAP_LOG"); p != "" {
		c.Log.Path = p
	}
	return nil
}

// Validate checks the API URL and timeout.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url %q: missing host", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.Log.Level)
	}
	return nil
}
