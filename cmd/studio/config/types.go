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
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so the yaml file can say "30s" or "24h".
type Duration time.Duration

// UnmarshalYAML parses Go duration strings.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration back in string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// StudioConfig is the persisted client configuration, read from
// ~/.mlstudio/studio.yaml and created with defaults on first run.
type StudioConfig struct {
	// Backend: where the ML Studio API lives
	Backend BackendConfig `yaml:"backend" validate:"required"`

	// Session: local session persistence
	Session SessionConfig `yaml:"session"`

	// Logging: client log output
	Logging LoggingConfig `yaml:"logging"`
}

type BackendConfig struct {
	// BaseURL is the API root, e.g. http://localhost:8000
	BaseURL string `yaml:"base_url" validate:"required,url"`

	// ProbeInterval is how often connectivity is re-checked.
	ProbeInterval Duration `yaml:"probe_interval" validate:"gte=0"`
}

type SessionConfig struct {
	// MaxAge is how long a persisted dataset stays restorable.
	MaxAge Duration `yaml:"max_age" validate:"gte=0"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

func DefaultConfig() StudioConfig {
	return StudioConfig{
		Backend: BackendConfig{
			BaseURL:       "http://localhost:8000",
			ProbeInterval: Duration(30 * time.Second),
		},
		Session: SessionConfig{
			MaxAge: Duration(24 * time.Hour),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
