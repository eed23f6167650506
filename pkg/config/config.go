// Package config defines the riverd server configuration and its
// file loader.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrEmptyFile    = errors.New("configuration file is empty")
	ErrInvalidJSON  = errors.New("invalid JSON syntax")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
)

// Config holds the riverd server configuration.
type Config struct {
	// ListenAddr is the host:port the HTTP server binds to.
	ListenAddr string `json:"listenAddr" yaml:"listenAddr"`

	// KeepaliveInterval is the seconds between SSE keepalive comments
	// and WebSocket pings. 0 disables keepalives.
	KeepaliveInterval int `json:"keepaliveInterval" yaml:"keepaliveInterval"`

	// MaxConnections caps concurrent streams. 0 means unlimited.
	MaxConnections int `json:"maxConnections" yaml:"maxConnections"`

	// MaxEvents caps events per stream before a graceful close.
	// 0 means unlimited.
	MaxEvents int64 `json:"maxEvents" yaml:"maxEvents"`

	// ShutdownTimeout is the seconds allowed for draining streams on
	// shutdown.
	ShutdownTimeout int `json:"shutdownTimeout" yaml:"shutdownTimeout"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel" yaml:"logLevel"`

	// LogFormat is text or json.
	LogFormat string `json:"logFormat" yaml:"logFormat"`
}

// Default returns the default server configuration.
func Default() *Config {
	return &Config{
		ListenAddr:        ":8000",
		KeepaliveInterval: 15,
		MaxConnections:    0,
		MaxEvents:         0,
		ShutdownTimeout:   10,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Load reads a Config from a JSON or YAML file, applied on top of the
// defaults. The format is auto-detected from the file extension
// (.yaml/.yml for YAML, otherwise JSON).
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	cfg := Default()
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listenAddr must not be empty")
	}
	if c.KeepaliveInterval < 0 {
		return errors.New("keepaliveInterval must not be negative")
	}
	if c.MaxConnections < 0 {
		return errors.New("maxConnections must not be negative")
	}
	if c.MaxEvents < 0 {
		return errors.New("maxEvents must not be negative")
	}
	if c.ShutdownTimeout < 1 {
		return errors.New("shutdownTimeout must be at least 1 second")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logLevel must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("logFormat must be text or json; got %q", c.LogFormat)
	}
	return nil
}
