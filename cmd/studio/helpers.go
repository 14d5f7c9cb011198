// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AleutianAI/MLStudio/cmd/studio/config"
	"github.com/AleutianAI/MLStudio/pkg/api"
	"github.com/AleutianAI/MLStudio/pkg/app"
	"github.com/AleutianAI/MLStudio/pkg/logging"
	"github.com/AleutianAI/MLStudio/pkg/session"
)

// algorithmChoice pairs a wire identifier with its display label.
type algorithmChoice struct {
	Name  string
	Label string
}

// algorithmCatalog lists the algorithms the backend knows how to run.
var algorithmCatalog = []algorithmChoice{
	{"random_forest", "Random Forest"},
	{"decision_tree", "Decision Tree"},
	{"logistic_regression", "Logistic Regression"},
	{"linear_regression", "Linear Regression"},
	{"svm", "Support Vector Machine"},
	{"knn", "K-Nearest Neighbors"},
	{"clustering", "K-Means Clustering"},
}

// defaultAlgorithms is the set run when none are requested explicitly.
var defaultAlgorithms = []string{
	"random_forest",
	"decision_tree",
	"linear_regression",
	"clustering",
}

// algorithmLabel returns the display label for a wire identifier, or the
// identifier itself for algorithms outside the catalog.
func algorithmLabel(name string) string {
	for _, choice := range algorithmCatalog {
		if choice.Name == name {
			return choice.Label
		}
	}
	return name
}

// --- Shared Command State ---
//
// Populated once by bootstrap in the root PersistentPreRunE, used by
// every command Run function.
var (
	logger *logging.Logger
	studio *app.Studio
)

// bootstrap loads the config and wires the client, session store, and
// orchestration context every command depends on.
func bootstrap() error {
	if err := config.Load(); err != nil {
		return err
	}

	stateDir := ""
	if home, err := os.UserHomeDir(); err == nil {
		stateDir = filepath.Join(home, ".mlstudio")
	}
	return buildStudio(config.Global, stateDir)
}

// buildStudio constructs the shared command state from a resolved config
// and starts the background connectivity probe. The probe runs for the
// life of the process; teardown stops it.
func buildStudio(cfg config.StudioConfig, stateDir string) error {
	level := logging.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}

	logDir := ""
	if stateDir != "" {
		logDir = filepath.Join(stateDir, "logs")
	}
	logger = logging.New(logging.Config{Level: level, LogDir: logDir})

	baseURL := cfg.Backend.BaseURL
	if backendURL != "" {
		baseURL = backendURL
	}

	store, err := session.NewStore(stateDir, logger)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	store.WithMaxAge(cfg.Session.MaxAge.Std())

	studio = app.New(api.NewClient(baseURL, logger), store, logger)

	interval := cfg.Backend.ProbeInterval.Std()
	if interval <= 0 {
		interval = app.DefaultProbeInterval
	}
	studio.StartProbing(interval)
	return nil
}

// teardown stops the probe loop and flushes the log file. Safe before
// bootstrap has run, and idempotent.
func teardown() {
	if studio != nil {
		studio.Stop()
	}
	if logger != nil {
		logger.Close()
	}
}

// exitFailure flushes logs and exits non-zero. Used by commands whose
// failure is an outcome rather than an error return.
func exitFailure() {
	teardown()
	os.Exit(1)
}

// activeOrArg resolves the dataset a lookup command should target: the
// explicit argument when given, else the active dataset.
func activeOrArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if dataset := studio.Dataset(); dataset != "" {
		return dataset, nil
	}
	return "", fmt.Errorf("no dataset is active; upload one or name a dataset")
}
