// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package settings persists per-user UI preferences. The only setting
// today is the theme; it follows the storage-then-system-preference
// lifecycle: an explicit saved choice wins, otherwise the terminal's
// background decides, otherwise light. Components never read the file
// directly — they hold a Store and call Theme/SetTheme.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// ThemeName is a persisted theme choice.
type ThemeName string

const (
	ThemeLight ThemeName = "light"
	ThemeDark  ThemeName = "dark"
)

// fileSettings is the on-disk shape.
type fileSettings struct {
	Theme ThemeName `yaml:"theme,omitempty"`
}

// Store reads and writes the settings file. The zero value is not
// usable; construct with Open.
type Store struct {
	path  string
	saved fileSettings
}

// DefaultPath returns the settings file location under the user's
// config directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("settings: resolving config dir: %w", err)
	}
	return filepath.Join(configDir, "dealdesk", "settings.yaml"), nil
}

// Open loads the settings file at path. A missing file is not an
// error — it means no preference has been saved yet.
func Open(path string) (*Store, error) {
	store := &Store{path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &store.saved); err != nil {
		return nil, fmt.Errorf("settings: parsing %s: %w", path, err)
	}
	return store, nil
}

// Theme resolves the effective theme: the saved preference when one
// exists, otherwise the terminal background (dark terminals get the
// dark theme), otherwise light.
func (store *Store) Theme() ThemeName {
	switch store.saved.Theme {
	case ThemeLight, ThemeDark:
		return store.saved.Theme
	}
	if termenv.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// SavedTheme returns the persisted preference, or "" when the user
// has never chosen one.
func (store *Store) SavedTheme() ThemeName {
	switch store.saved.Theme {
	case ThemeLight, ThemeDark:
		return store.saved.Theme
	}
	return ""
}

// SetTheme records and persists an explicit theme choice.
func (store *Store) SetTheme(theme ThemeName) error {
	store.saved.Theme = theme
	return store.save()
}

// Toggle flips the effective theme and persists the result, so a
// toggle from an OS-derived default becomes an explicit preference.
func (store *Store) Toggle() (ThemeName, error) {
	next := ThemeDark
	if store.Theme() == ThemeDark {
		next = ThemeLight
	}
	return next, store.SetTheme(next)
}

func (store *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("settings: creating %s: %w", filepath.Dir(store.path), err)
	}
	data, err := yaml.Marshal(store.saved)
	if err != nil {
		return fmt.Errorf("settings: encoding: %w", err)
	}
	if err := os.WriteFile(store.path, data, 0o644); err != nil {
		return fmt.Errorf("settings: writing %s: %w", store.path, err)
	}
	return nil
}
