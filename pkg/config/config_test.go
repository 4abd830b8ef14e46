// Tests for script profile configuration
//
// Copyright (C) 2026  Gcodescript Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"gcodescript/pkg/errors"
	"gcodescript/pkg/log"
	"gcodescript/pkg/protocol"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvConfigPath, "")
	t.Setenv("GCODESCRIPT_CHECKSUM", "")
	t.Setenv("GCODESCRIPT_START_LINE", "")
	t.Setenv("GCODESCRIPT_LOG_LEVEL", "")
}

func writeProfile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Script.Checksum {
		t.Error("default checksum should be on")
	}
	if cfg.Script.StartLine != 0 {
		t.Errorf("startLine=%d want 0", cfg.Script.StartLine)
	}
	if cfg.Terminator() != protocol.TerminatorLF {
		t.Errorf("terminator=%q want LF", cfg.Terminator())
	}
	if cfg.LogLevel() != log.INFO {
		t.Errorf("level=%v want INFO", cfg.LogLevel())
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeProfile(t, `
script:
  checksum: false
  stripComments: true
  startLine: 1
  maxLine: 1000
  lineEnding: crlf
logging:
  level: DEBUG
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Script.Checksum {
		t.Error("checksum should be off")
	}
	if !cfg.Script.StripComments {
		t.Error("stripComments should be on")
	}
	if cfg.Script.StartLine != 1 || cfg.Script.MaxLine != 1000 {
		t.Errorf("startLine=%d maxLine=%d", cfg.Script.StartLine, cfg.Script.MaxLine)
	}
	if cfg.Terminator() != protocol.TerminatorCRLF {
		t.Errorf("terminator=%q want CRLF", cfg.Terminator())
	}
	if cfg.LogLevel() != log.DEBUG {
		t.Errorf("level=%v want DEBUG", cfg.LogLevel())
	}
}

func TestLoadFromEnvPath(t *testing.T) {
	clearEnv(t)
	path := writeProfile(t, "script:\n  startLine: 7\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Script.StartLine != 7 {
		t.Errorf("startLine=%d want 7", cfg.Script.StartLine)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GCODESCRIPT_CHECKSUM", "false")
	t.Setenv("GCODESCRIPT_START_LINE", "42")
	t.Setenv("GCODESCRIPT_LOG_LEVEL", "ERROR")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Script.Checksum {
		t.Error("env override did not disable checksum")
	}
	if cfg.Script.StartLine != 42 {
		t.Errorf("startLine=%d want 42", cfg.Script.StartLine)
	}
	if cfg.LogLevel() != log.ERROR {
		t.Errorf("level=%v want ERROR", cfg.LogLevel())
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, errors.ErrConfigLoad) {
		t.Fatalf("err=%v want CONFIG_LOAD", err)
	}
}

func TestValidation(t *testing.T) {
	clearEnv(t)
	cases := []struct {
		name string
		data string
	}{
		{"negative start", "script:\n  startLine: -1\n"},
		{"max below start", "script:\n  startLine: 10\n  maxLine: 5\n"},
		{"bad line ending", "script:\n  lineEnding: cr\n"},
		{"bad level", "logging:\n  level: chatty\n"},
	}
	for _, c := range cases {
		path := writeProfile(t, c.data)
		if _, err := Load(path); !errors.Is(err, errors.ErrConfigValidation) {
			t.Errorf("%s: err=%v want CONFIG_VALIDATION", c.name, err)
		}
	}
}

func TestOptionsMapping(t *testing.T) {
	clearEnv(t)
	path := writeProfile(t, `
script:
  checksum: true
  startLine: 5
  maxLine: 99
  lineEnding: crlf
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	opts := cfg.Options()
	if !opts.Checksum || opts.StartLine != 5 || opts.MaxLine != 99 {
		t.Errorf("opts=%+v", opts)
	}
	if opts.Terminator != protocol.TerminatorCRLF {
		t.Errorf("terminator=%q", opts.Terminator)
	}
}
