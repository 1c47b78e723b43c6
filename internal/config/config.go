/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

// Package config holds the user-editable configuration, persisted as YAML
// in the user scope. Environment variables act as read-only overrides at
// runtime; CLI flags override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConvertConfig carries the defaults for the convert command.
type ConvertConfig struct {
	// Language selects the stylesheet variant (e.g. "ja"). It never
	// affects the filter output.
	Language string `yaml:"language"`
	// ThemeDir is an optional directory of theme packs searched before
	// the embedded themes.
	ThemeDir string `yaml:"theme_dir"`
	// Standalone wraps output in a full HTML document by default.
	Standalone bool `yaml:"standalone"`
}

// LoggingConfig mirrors internal/log.Options.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Convert       ConvertConfig `yaml:"convert"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Convert:       ConvertConfig{Language: "", ThemeDir: "", Standalone: false},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Environment override names.
const (
	EnvLanguage = "MDPS_LANGUAGE"
	EnvThemeDir = "MDPS_THEME_DIR"

	EnvLogLevel  = "MDPS_LOG_LEVEL"
	EnvLogFormat = "MDPS_LOG_FORMAT"
	EnvLogSource = "MDPS_LOG_SOURCE"
	EnvLogFile   = "MDPS_LOG_FILE"
)

// DefaultPath returns the user-scope config file location.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "mdplayscript", "config.yaml"), nil
}

// Load reads the config at path, fills in defaults, and applies environment
// overrides. A missing file is not an error; defaults plus environment are
// returned.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// fall through to env overrides
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories as needed.
func Save(path string, cfg AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvLanguage)); v != "" {
		cfg.Convert.Language = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvThemeDir)); v != "" {
		cfg.Convert.ThemeDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = strings.EqualFold(v, "true") || v == "1"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}
