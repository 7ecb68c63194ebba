// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all addressbook configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Display Display `yaml:"display"`
	Log     Log     `yaml:"log"`
}

// Storage holds the data file location.
type Storage struct {
	Path string `yaml:"path"`
}

// Display holds terminal output settings.
type Display struct {
	Color string `yaml:"color"` // "auto" | "always" | "never"
	TUI   bool   `yaml:"tui"`   // Use the interactive TUI when stdout is a terminal
}

// Log holds diagnostic logging settings.
type Log struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `yaml:"format"` // "text" | "json"
	File   string `yaml:"file"`   // Empty means stderr
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{
			Path: "addressbook.data",
		},
		Display: Display{
			Color: "auto",
			TUI:   true,
		},
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return errors.New("config: storage.path cannot be empty")
	}
	switch c.Display.Color {
	case "auto", "always", "never":
		// valid
	default:
		return fmt.Errorf("config: display.color must be \"auto\", \"always\" or \"never\", got %q", c.Display.Color)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
		// valid
	default:
		return fmt.Errorf("config: log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ADDRESSBOOK_FILE, ADDRESSBOOK_COLOR, ADDRESSBOOK_LOG_LEVEL, ADDRESSBOOK_TUI.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ADDRESSBOOK_FILE"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("ADDRESSBOOK_COLOR"); v != "" {
		c.Display.Color = v
	}
	if v := os.Getenv("ADDRESSBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ADDRESSBOOK_TUI"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			c.Display.TUI = true
		case "0", "false", "no", "off":
			c.Display.TUI = false
		default:
			return fmt.Errorf("config: invalid ADDRESSBOOK_TUI %q", v)
		}
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Storage *rawStorage `yaml:"storage"`
	Display *rawDisplay `yaml:"display"`
	Log     *rawLog     `yaml:"log"`
}

type rawStorage struct {
	Path *string `yaml:"path"`
}

type rawDisplay struct {
	Color *string `yaml:"color"`
	TUI   *bool   `yaml:"tui"`
}

type rawLog struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
	File   *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Storage != nil && layer.Storage.Path != nil {
		c.Storage.Path = *layer.Storage.Path
	}
	if layer.Display != nil {
		if layer.Display.Color != nil {
			c.Display.Color = *layer.Display.Color
		}
		if layer.Display.TUI != nil {
			c.Display.TUI = *layer.Display.TUI
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.Format != nil {
			c.Log.Format = *layer.Log.Format
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
}
