package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jty/internal/converter"
	"github.com/mcncl/jty/internal/formatter"
	"github.com/mcncl/jty/internal/naming"
)

// Names searched by FindConfigFile, in order of preference
var configNames = []string{".jty.yml", ".jty.yaml", "jty.yml", "jty.yaml"}

// Config represents the complete configuration for jty
type Config struct {
	JSON JSONConfig `yaml:"json"`
	YAML YAMLConfig `yaml:"yaml"`
	TOML TOMLConfig `yaml:"toml"`
	Keys KeysConfig `yaml:"keys"`
	Dev  DevConfig  `yaml:"dev"`
}

// JSONConfig controls JSON output layout
type JSONConfig struct {
	// Indent is written once per nesting level; empty means compact output
	Indent string `yaml:"indent"`
}

// YAMLConfig controls YAML output layout
type YAMLConfig struct {
	Indent int `yaml:"indent"`
}

// TOMLConfig controls TOML output layout
type TOMLConfig struct {
	Indent string `yaml:"indent"`
}

// KeysConfig controls mapping key rewriting
type KeysConfig struct {
	Case string `yaml:"case"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// Overrides holds CLI values. Nil pointers were not given on the command line.
type Overrides struct {
	Indent  *int
	KeyCase *string
	Debug   bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	defaults := formatter.DefaultOptions()
	return &Config{
		JSON: JSONConfig{Indent: defaults.JSONIndent},
		YAML: YAMLConfig{Indent: defaults.YAMLIndent},
		TOML: TOMLConfig{Indent: defaults.TOMLIndent},
	}
}

// LoadConfig loads configuration from a YAML file on fs
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in dir and its parents
func FindConfigFile(fs afero.Fs, dir string) string {
	currentDir := filepath.Clean(dir)

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if ok, _ := afero.Exists(fs, configPath); ok {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate rejects values the formatter or key renamer cannot use
func (c *Config) Validate() error {
	if c.YAML.Indent < 1 {
		return fmt.Errorf("yaml.indent must be at least 1, got %d", c.YAML.Indent)
	}
	if strings.TrimSpace(c.JSON.Indent) != "" {
		return fmt.Errorf("json.indent may only contain whitespace, got %q", c.JSON.Indent)
	}
	if strings.TrimSpace(c.TOML.Indent) != "" {
		return fmt.Errorf("toml.indent may only contain whitespace, got %q", c.TOML.Indent)
	}
	if _, err := naming.ParseCase(c.Keys.Case); err != nil {
		return err
	}
	return nil
}

// Apply merges CLI overrides into the config. Only values given on the
// command line replace file values; debug can be switched on but not off.
func (c *Config) Apply(o Overrides) error {
	if o.Indent != nil {
		n := *o.Indent
		if n < 0 {
			return fmt.Errorf("indent must not be negative, got %d", n)
		}
		c.JSON.Indent = strings.Repeat(" ", n)
		c.TOML.Indent = strings.Repeat(" ", n)
		if n > 0 {
			c.YAML.Indent = n
		}
	}
	if o.KeyCase != nil {
		c.Keys.Case = *o.KeyCase
	}
	if o.Debug {
		c.Dev.Debug = true
	}
	return c.Validate()
}

// LoadConfigWithCLI loads the file at configPath, if any, over the defaults
// and then applies the CLI overrides
func LoadConfigWithCLI(fs afero.Fs, configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(fs, configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if err := cfg.Apply(o); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FormatterOptions returns the output layout described by the config
func (c *Config) FormatterOptions() formatter.Options {
	return formatter.Options{
		JSONIndent: c.JSON.Indent,
		TOMLIndent: c.TOML.Indent,
		YAMLIndent: c.YAML.Indent,
	}
}

// ConverterOptions returns converter settings for the config. The config
// must have passed Validate.
func (c *Config) ConverterOptions() converter.Options {
	keyCase, _ := naming.ParseCase(c.Keys.Case)
	return converter.Options{
		Formatting: c.FormatterOptions(),
		RenameKey:  keyCase.Renamer(),
	}
}
