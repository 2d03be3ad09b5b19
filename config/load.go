package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the decoder by file extension, TOML by default.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := LoadFromReader(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader reads and validates configuration from an io.Reader.
func LoadFromReader(r io.Reader, format Format) (*Config, error) {
	cfg := DefaultConfig()

	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
			return nil, fmt.Errorf("yaml.Decode: %w", err)
		}
	default:
		if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
			return nil, fmt.Errorf("toml.Decode: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	normalizeFormatOptions(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the configuration values used for anything a file
// leaves out.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:    "info",
			LoadTimeout: Duration{30 * time.Second},
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GRIDVIEW_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
	if v := os.Getenv("GRIDVIEW_LOG_FILE"); v != "" {
		cfg.General.LogFile = v
	}
}

// normalizeFormatOptions turns the integer types of the decoders into int
// so formatters see the same values whatever the file format.
func normalizeFormatOptions(cfg *Config) {
	for i := range cfg.Views {
		for j := range cfg.Views[i].Columns {
			opts := cfg.Views[i].Columns[j].FormatOptions
			for k, v := range opts {
				if n, ok := v.(int64); ok {
					opts[k] = int(n)
				}
			}
		}
	}
}
