package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.APIURL != "http://127.0.0.1:5000" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if !cfg.Capabilities.RandomMode || !cfg.Capabilities.EdgeLengths {
		t.Errorf("capabilities not all enabled: %+v", cfg.Capabilities)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `api_url: https://cards.example.com
timeout: 3s
log:
  path: /tmp/wordmap.log
  level: debug
capabilities:
  random_mode: false
  importance_coloring: true
  connected_node_nav: true
  edge_lengths: false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "https://cards.example.com" || cfg.Timeout != 3*time.Second {
		t.Errorf("got %+v", cfg)
	}
	if cfg.Log.Path != "/tmp/wordmap.log" || cfg.Log.Level != "debug" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Capabilities.RandomMode || cfg.Capabilities.EdgeLengths || !cfg.Capabilities.ConnectedNodeNav {
		t.Errorf("capabilities = %+v", cfg.Capabilities)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timeout: [nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("WORDMAP_API_URL", "http://localhost:8080")
	t.Setenv("WORDMAP_TIMEOUT", "250ms")
	t.Setenv("WORDMAP_DB", "/tmp/x.db")
	t.Setenv("WORDMAP_LOG", "/tmp/x.log")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" || cfg.Timeout != 250*time.Millisecond ||
		cfg.DBPath != "/tmp/x.db" || cfg.Log.Path != "/tmp/x.log" {
		t.Errorf("got %+v", cfg)
	}

	t.Setenv("WORDMAP_TIMEOUT", "soon")
	if err := cfg.ApplyEnv(); err == nil || !strings.Contains(err.Error(), "WORDMAP_TIMEOUT") {
		t.Errorf("expected timeout parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"ftp url", func(c *Config) { c.APIURL = "ftp://host" }, "scheme"},
		{"no host", func(c *Config) { c.APIURL = "http://" }, "missing host"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "wordmap", "config.yaml"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
