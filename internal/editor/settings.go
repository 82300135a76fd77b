package editor

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SettingsFile is the settings file looked up in the working directory when
// no explicit path is configured.
const SettingsFile = "image-editor.yaml"

// Settings is the optional YAML settings file.
//
//	defaults:
//	  resolution: FULL HD
//	  format: JPEG
//	  quality: 0.8
//	debounce_ms: 250
type Settings struct {
	Defaults   Config `yaml:"defaults"`
	DebounceMS int    `yaml:"debounce_ms"`
}

// DefaultSettings returns settings equivalent to having no file.
func DefaultSettings() *Settings {
	return &Settings{
		Defaults:   DefaultConfig(),
		DebounceMS: int(DefaultDebounce / time.Millisecond),
	}
}

// LoadSettings reads the settings file at path if it exists. A missing file
// yields DefaultSettings. Fields absent from the file keep their defaults.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg, err := settings.Defaults.Normalize()
	if err != nil {
		return nil, fmt.Errorf("invalid defaults in %s: %w", path, err)
	}
	settings.Defaults = cfg
	if settings.DebounceMS <= 0 {
		settings.DebounceMS = int(DefaultDebounce / time.Millisecond)
	}

	return settings, nil
}

// Debounce returns the configured quiet window.
func (s *Settings) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// Options converts the settings into session options.
func (s *Settings) Options() []Option {
	return []Option{
		WithDefaults(s.Defaults),
		WithDebounce(s.Debounce()),
	}
}
