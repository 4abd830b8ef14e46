// Script profile configuration for gcodescript
//
// Profiles select the framing conventions of the target controller
// link: whether lines are numbered and checksummed, whether comments
// are kept, the starting line number, and the line terminator. Loaded
// from YAML with environment-variable overrides.
//
// Copyright (C) 2026  Gcodescript Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"

	"gcodescript/pkg/errors"
	"gcodescript/pkg/log"
	"gcodescript/pkg/protocol"
	"gcodescript/pkg/sequencer"
)

// EnvConfigPath names the environment variable that points at a
// profile file.
const EnvConfigPath = "GCODESCRIPT_CONFIG"

// Config is the complete profile for one script build.
type Config struct {
	Script  ScriptConfig  `yaml:"script"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScriptConfig holds sequencer framing settings.
type ScriptConfig struct {
	// Checksum enables line numbering and XOR checksums.
	Checksum bool `yaml:"checksum"`

	// StripComments drops command comments from the output.
	StripComments bool `yaml:"stripComments"`

	// StartLine is the first line number to assign.
	StartLine int `yaml:"startLine"`

	// MaxLine caps the line counter; 0 means the protocol maximum.
	MaxLine int `yaml:"maxLine"`

	// LineEnding selects the terminator: "lf" or "crlf".
	LineEnding string `yaml:"lineEnding"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the default profile: checksummed framing from line
// 0, comments kept, LF terminators.
func Default() *Config {
	return &Config{
		Script: ScriptConfig{
			Checksum:   true,
			LineEnding: "lf",
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

// Load builds a profile from defaults, an optional YAML file, and
// environment overrides. With an empty path the GCODESCRIPT_CONFIG
// variable is consulted; if that is unset too, defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ConfigLoadError(path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.ConfigLoadError(path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GCODESCRIPT_CHECKSUM"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Script.Checksum = b
		}
	}
	if v := os.Getenv("GCODESCRIPT_START_LINE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Script.StartLine = n
		}
	}
	if v := os.Getenv("GCODESCRIPT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func validate(cfg *Config) error {
	if cfg.Script.StartLine < 0 {
		return errors.ConfigValidationError("script.startLine", "must be non-negative")
	}
	if cfg.Script.MaxLine < 0 || cfg.Script.MaxLine > protocol.MaxLineno {
		return errors.ConfigValidationError("script.maxLine", fmt.Sprintf("must be in [0, %d]", protocol.MaxLineno))
	}
	if cfg.Script.MaxLine != 0 && cfg.Script.MaxLine < cfg.Script.StartLine {
		return errors.ConfigValidationError("script.maxLine", "must be >= script.startLine")
	}
	switch cfg.Script.LineEnding {
	case "", "lf", "crlf":
	default:
		return errors.ConfigValidationError("script.lineEnding", fmt.Sprintf("unknown line ending %q (want lf or crlf)", cfg.Script.LineEnding))
	}
	switch cfg.Logging.Level {
	case "", "DEBUG", "INFO", "WARN", "WARNING", "ERROR",
		"debug", "info", "warn", "warning", "error":
	default:
		return errors.ConfigValidationError("logging.level", fmt.Sprintf("unknown level %q", cfg.Logging.Level))
	}
	return nil
}

// Terminator returns the configured line terminator string.
func (c *Config) Terminator() string {
	if c.Script.LineEnding == "crlf" {
		return protocol.TerminatorCRLF
	}
	return protocol.TerminatorLF
}

// Options maps the profile onto sequencer options. Sink and Logger
// stay with the caller.
func (c *Config) Options() sequencer.Options {
	return sequencer.Options{
		Checksum:      c.Script.Checksum,
		StripComments: c.Script.StripComments,
		StartLine:     c.Script.StartLine,
		MaxLine:       c.Script.MaxLine,
		Terminator:    c.Terminator(),
	}
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() log.LogLevel {
	return log.ParseLevel(c.Logging.Level)
}
