// Package config loads the front end's settings from a TOML or YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"cool-frontend/ast"
	"cool-frontend/parser"
	"cool-frontend/utils"
)

// EnvPath names the environment variable holding a config file path.
const EnvPath = "COOLFE_CONFIG"

// Config holds the complete front end configuration.
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Limits LimitsConfig `toml:"limits" yaml:"limits"`
	Parser ParserConfig `toml:"parser" yaml:"parser"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level     string `toml:"level" yaml:"level"`
	Format    string `toml:"format" yaml:"format"`
	File      string `toml:"file" yaml:"file"`
	AddSource bool   `toml:"add_source" yaml:"add_source"`
}

// LimitsConfig bounds the memory one syntax tree may hold. Zero means
// unlimited.
type LimitsConfig struct {
	MaxNodes       int `toml:"max_nodes" yaml:"max_nodes"`
	MaxStringBytes int `toml:"max_string_bytes" yaml:"max_string_bytes"`
}

// ParserConfig holds parser settings.
type ParserConfig struct {
	InjectBasicClasses bool `toml:"inject_basic_classes" yaml:"inject_basic_classes"`
}

// Format is a config file format.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "warn", Format: "text"},
	}
}

// Load reads the configuration at path. An empty path falls back to
// $COOLFE_CONFIG, and to the defaults when that is unset too.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(content, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes content on top of the defaults and validates the result.
func Parse(content []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// detectFormat determines the configuration format from file extension
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := utils.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if c.Limits.MaxNodes < 0 {
		return fmt.Errorf("limits.max_nodes must not be negative, got %d", c.Limits.MaxNodes)
	}
	if c.Limits.MaxStringBytes < 0 {
		return fmt.Errorf("limits.max_string_bytes must not be negative, got %d", c.Limits.MaxStringBytes)
	}
	return nil
}

// LogConfig converts the log section for utils.NewLogger.
func (c *Config) LogConfig() utils.LogConfig {
	lc := utils.DefaultLogConfig()
	lc.Level = c.Log.Level
	lc.Format = c.Log.Format
	lc.LogFile = c.Log.File
	lc.AddSource = c.Log.AddSource
	return lc
}

// TreeLimits converts the limits section for ast.WithLimits.
func (c *Config) TreeLimits() ast.Limits {
	return ast.Limits{MaxNodes: c.Limits.MaxNodes, MaxStringBytes: c.Limits.MaxStringBytes}
}

// ParserConfig converts the parser section for parser.NewParser.
func (c *Config) ParserConfig() parser.Config {
	return parser.Config{InjectBasicClasses: c.Parser.InjectBasicClasses}
}
