package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.ListenAddr != ":8000" {
		t.Errorf("ListenAddr = %q, want :8000", cfg.ListenAddr)
	}
	if cfg.KeepaliveInterval != 15 {
		t.Errorf("KeepaliveInterval = %d, want 15", cfg.KeepaliveInterval)
	}
	if cfg.MaxConnections != 0 || cfg.MaxEvents != 0 {
		t.Error("connection and event caps should default to unlimited")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging defaults = %s/%s, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration invalid: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "riverd.yaml", `
listenAddr: ":9000"
keepaliveInterval: 30
maxConnections: 100
logFormat: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q, want :9000", cfg.ListenAddr)
	}
	if cfg.KeepaliveInterval != 30 {
		t.Errorf("KeepaliveInterval = %d, want 30", cfg.KeepaliveInterval)
	}
	if cfg.MaxConnections != 100 {
		t.Errorf("MaxConnections = %d, want 100", cfg.MaxConnections)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
	// Unset fields keep their defaults.
	if cfg.ShutdownTimeout != 10 {
		t.Errorf("ShutdownTimeout = %d, want default 10", cfg.ShutdownTimeout)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "riverd.json", `{"listenAddr":":7070","maxEvents":500,"logLevel":"debug"}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %q, want :7070", cfg.ListenAddr)
	}
	if cfg.MaxEvents != 500 {
		t.Errorf("MaxEvents = %d, want 500", cfg.MaxEvents)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Load missing file = %v, want ErrFileNotFound", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")
	if _, err := Load(path); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("Load empty file = %v, want ErrEmptyFile", err)
	}
}

func TestLoadDirectory(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load accepted a directory path")
	}
}

func TestLoadMalformed(t *testing.T) {
	yamlPath := writeFile(t, "bad.yaml", "listenAddr: [unclosed")
	if _, err := Load(yamlPath); !errors.Is(err, ErrInvalidYAML) {
		t.Errorf("Load bad YAML = %v, want ErrInvalidYAML", err)
	}

	jsonPath := writeFile(t, "bad.json", `{"listenAddr":`)
	if _, err := Load(jsonPath); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("Load bad JSON = %v, want ErrInvalidJSON", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty listen addr", func(c *Config) { c.ListenAddr = "" }},
		{"negative keepalive", func(c *Config) { c.KeepaliveInterval = -1 }},
		{"negative max connections", func(c *Config) { c.MaxConnections = -1 }},
		{"negative max events", func(c *Config) { c.MaxEvents = -1 }},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted an invalid configuration")
			}
		})
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeFile(t, "bad-values.yaml", "logLevel: loud")
	if _, err := Load(path); err == nil {
		t.Error("Load accepted a config failing validation")
	}
}
