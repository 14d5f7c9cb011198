// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFrom_FirstRunCreatesDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q, want the default", cfg.Backend.BaseURL)
	}
	if cfg.Backend.ProbeInterval.Std() != 30*time.Second {
		t.Errorf("ProbeInterval = %v, want 30s", cfg.Backend.ProbeInterval)
	}
	if cfg.Session.MaxAge.Std() != 24*time.Hour {
		t.Errorf("MaxAge = %v, want 24h", cfg.Session.MaxAge)
	}
	if _, err := os.Stat(filepath.Join(dir, "studio.yaml")); err != nil {
		t.Errorf("first run should write the config file: %v", err)
	}
}

func TestLoadFrom_ReadsExisting(t *testing.T) {
	dir := t.TempDir()
	content := "backend:\n  base_url: http://ml.internal:9000\n  probe_interval: 10s\n"
	if err := os.WriteFile(filepath.Join(dir, "studio.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Backend.BaseURL != "http://ml.internal:9000" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.ProbeInterval.Std() != 10*time.Second {
		t.Errorf("ProbeInterval = %v, want 10s", cfg.Backend.ProbeInterval)
	}
	// Unset fields keep their defaults.
	if cfg.Session.MaxAge.Std() != 24*time.Hour {
		t.Errorf("MaxAge = %v, want the default", cfg.Session.MaxAge)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := "backend:\n  base_url: http://ml.internal:9000\n"
	if err := os.WriteFile(filepath.Join(dir, "studio.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(EnvBaseURL, "http://override:8080")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Backend.BaseURL != "http://override:8080" {
		t.Errorf("BaseURL = %q, want the env override", cfg.Backend.BaseURL)
	}
}

func TestLoadFrom_RejectsInvalidURL(t *testing.T) {
	dir := t.TempDir()
	content := "backend:\n  base_url: not a url\n"
	if err := os.WriteFile(filepath.Join(dir, "studio.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadFrom(dir); err == nil {
		t.Fatal("a malformed base_url should fail validation")
	}
}

func TestLoadFrom_RejectsBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	content := "backend:\n  base_url: http://localhost:8000\nlogging:\n  level: loud\n"
	if err := os.WriteFile(filepath.Join(dir, "studio.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadFrom(dir); err == nil {
		t.Fatal("an unknown log level should fail validation")
	}
}
