// Package config manages persistent icmd settings.
package config

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/icmd-sh/icmd/internal/paths"
)

// Config holds all configurable icmd settings.
type Config struct {
	MaxResults       int    `json:"max_results"`        // search result cap
	TUIMaxResults    int    `json:"tui_max_results"`    // rows shown in the TUI
	ShellHistoryPath string `json:"shell_history_path"` // import: override auto-detect
}

// Bounds for the numeric settings, enforced by the config command.
const (
	MaxResultsLimit    = 100
	TUIMaxResultsLimit = 20
)

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		MaxResults:    10,
		TUIMaxResults: 5,
	}
}

// Load reads the config file, returning defaults if it is absent.
func Load() (Config, error) {
	path, err := paths.ConfigFile()
	if err != nil {
		return Defaults(), err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Defaults(), err
	}

	cfg := Defaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Defaults(), &ParseError{Path: path, Err: err}
	}
	if cfg.MaxResults < 1 {
		cfg.MaxResults = Defaults().MaxResults
	}
	if cfg.TUIMaxResults < 1 {
		cfg.TUIMaxResults = Defaults().TUIMaxResults
	}
	return cfg, nil
}

// Exists reports whether a config file is present on disk.
func Exists() bool {
	path, err := paths.ConfigFile()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Save writes cfg to the config file.
func Save(cfg Config) error {
	path, err := paths.ConfigFile()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
