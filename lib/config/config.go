// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the dashboard client's configuration.
//
// Configuration comes from a single YAML file located by the
// DEALDESK_CONFIG environment variable or the --config flag; there is
// no discovery or fallback chain, so where a value came from is never
// ambiguous. The two environment overrides (DEALDESK_BASE_URL,
// DEALDESK_TOKEN) exist so the bearer credential can stay out of the
// file entirely.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the environment variable holding the config
// file path, checked when --config is not passed.
const EnvConfigFile = "DEALDESK_CONFIG"

// Config is the client configuration.
type Config struct {
	// BaseURL is the root URL of the deals backend. Required.
	BaseURL string `yaml:"base_url"`

	// Token is the static bearer credential. Required unless
	// provided via DEALDESK_TOKEN.
	Token string `yaml:"token"`
}

// Load reads the config file at path, applies environment overrides,
// and validates the result. An empty path falls back to the
// DEALDESK_CONFIG environment variable; if neither is set, the
// configuration is built from environment overrides alone.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	if override := os.Getenv("DEALDESK_BASE_URL"); override != "" {
		cfg.BaseURL = override
	}
	if override := os.Getenv("DEALDESK_TOKEN"); override != "" {
		cfg.Token = override
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("config: base_url is required (config file or DEALDESK_BASE_URL)")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("config: token is required (config file or DEALDESK_TOKEN)")
	}
	return &cfg, nil
}
