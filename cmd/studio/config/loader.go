// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvBaseURL overrides backend.base_url when set.
const EnvBaseURL = "MLSTUDIO_API_URL"

var (
	// Global is a singleton instance
	Global StudioConfig
	once   sync.Once

	validate = validator.New()
)

// Load ensures the config is loaded into the Global variable
func Load() error {
	var err error
	once.Do(func() {
		err = loadInternal("")
	})
	return err
}

// LoadFrom reads a config from an explicit directory, bypassing the
// singleton, for callers that own the directory choice.
func LoadFrom(dir string) (StudioConfig, error) {
	var cfg StudioConfig
	if err := loadPath(filepath.Join(dir, "studio.yaml"), &cfg); err != nil {
		return StudioConfig{}, err
	}
	return cfg, nil
}

func loadInternal(dir string) error {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not find the user's home directory: %w", err)
		}
		dir = filepath.Join(home, ".mlstudio")
	}
	return loadPath(filepath.Join(dir, "studio.yaml"), &Global)
}

func loadPath(configPath string, out *StudioConfig) error {
	// create it if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf(" First run detected, creating the config at %s\n", configPath)
		if err := createDefault(configPath); err != nil {
			return err
		}
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read the config file: %w", err)
	}

	*out = DefaultConfig()
	if err = yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse the config file: %w", err)
	}

	// Environment wins over the file for the backend address.
	if env := os.Getenv(EnvBaseURL); env != "" {
		out.Backend.BaseURL = env
	}

	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return nil
}

func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	defaultCfg := DefaultConfig()
	data, err := yaml.Marshal(defaultCfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
