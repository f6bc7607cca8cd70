// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dealdesk.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, "base_url: http://localhost:8000\ntoken: demo\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" || cfg.Token != "demo" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "base_url: http://localhost:8000\ntoken: from-file\n")
	t.Setenv("DEALDESK_TOKEN", "from-env")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "from-env" {
		t.Errorf("Token = %q, want the environment override", cfg.Token)
	}
}

func TestEnvOnlyConfiguration(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("DEALDESK_BASE_URL", "https://deals.example.com")
	t.Setenv("DEALDESK_TOKEN", "tok")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://deals.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestMissingRequiredFields(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("DEALDESK_BASE_URL", "")
	t.Setenv("DEALDESK_TOKEN", "")

	if _, err := Load(""); err == nil {
		t.Error("expected error with no base URL")
	}

	path := writeConfig(t, "base_url: http://localhost:8000\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error with no token")
	}
}

func TestMissingFileIsAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for a nonexistent config file")
	}
}
