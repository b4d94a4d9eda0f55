package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Output formats.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// Pattern error policies.
const (
	PatternErrorsAbort = "abort"
	PatternErrorsPlain = "plain"
)

// Settings holds presentation and collaborator defaults loaded from the
// settings file. None of it affects the case-sensitivity rule.
type Settings struct {
	Color         string          `yaml:"color"`
	LineNumbers   bool            `yaml:"line_numbers"`
	Format        string          `yaml:"format"`
	Regexp        bool            `yaml:"regexp"`
	PatternErrors string          `yaml:"pattern_errors"`
	Markers       MarkerSettings  `yaml:"markers"`
	History       HistorySettings `yaml:"history"`
	MaxFileSize   int64           `yaml:"max_file_size"`
	IncludeHidden bool            `yaml:"include_hidden"`
	Extract       string          `yaml:"extract"`
}

// MarkerSettings overrides the coloured emphasis markers with literal text.
type MarkerSettings struct {
	Begin string `yaml:"begin"`
	End   string `yaml:"end"`
}

// Custom reports whether both markers are set.
func (m MarkerSettings) Custom() bool {
	return m.Begin != "" && m.End != ""
}

// HistorySettings configures the search history store.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		Color:         ColorAuto,
		Format:        FormatHuman,
		PatternErrors: PatternErrorsAbort,
		MaxFileSize:   10 * 1024 * 1024,
	}
}

// LoadSettings reads a YAML settings file on top of DefaultSettings.
// A missing file yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return s, nil
}

// Validate checks enumerated fields.
func (s *Settings) Validate() error {
	switch s.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color: unknown mode %q (want auto, always or never)", s.Color)
	}

	switch s.Format {
	case FormatHuman, FormatJSON, FormatSARIF:
	default:
		return fmt.Errorf("format: unknown format %q (want human, json or sarif)", s.Format)
	}

	switch s.PatternErrors {
	case PatternErrorsAbort, PatternErrorsPlain:
	default:
		return fmt.Errorf("pattern_errors: unknown policy %q (want abort or plain)", s.PatternErrors)
	}

	if (s.Markers.Begin == "") != (s.Markers.End == "") {
		return fmt.Errorf("markers: begin and end must be set together")
	}

	if s.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size: must not be negative")
	}
	return nil
}

// SettingsPath determines the settings file using a tiered approach:
// 1. The --config flag takes the highest precedence.
// 2. Environment variable MINIGREP_CONFIG if the flag is not set.
// 3. XDG_CONFIG_HOME/minigrep/config.yaml or $HOME/.config/minigrep/config.yaml.
func SettingsPath(flagValue string, env EnvSource) string {
	if flagValue != "" {
		return flagValue
	}
	if env == nil {
		env = MapEnv{}
	}

	if p, ok := env.Lookup("MINIGREP_CONFIG"); ok && p != "" {
		return p
	}

	base, ok := env.Lookup("XDG_CONFIG_HOME")
	if !ok || base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "minigrep", "config.yaml")
}

// HistoryPath returns the history database path, falling back to
// XDG_DATA_HOME/minigrep/history.db or $HOME/.local/share/minigrep/history.db.
func (s *Settings) HistoryPath(env EnvSource) (string, error) {
	if s.History.Path != "" {
		return s.History.Path, nil
	}
	if env == nil {
		env = MapEnv{}
	}

	base, ok := env.Lookup("XDG_DATA_HOME")
	if !ok || base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "minigrep", "history.db"), nil
}
