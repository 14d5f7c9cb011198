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
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/MLStudio/pkg/ux"
)

// runAnalyzeCommand runs a batch of algorithms against the active dataset
// and renders per-model metrics plus the winner.
func runAnalyzeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	studio.Init(ctx)

	algorithms, err := resolveAlgorithms()
	if err != nil {
		return err
	}

	label := fmt.Sprintf("Running %d algorithms against %s",
		len(algorithms), studio.Dataset())
	if studio.Dataset() == "" {
		label = "Running analysis"
	}
	spin := ux.NewSpinner(label)
	spin.Start()

	outcome, err := studio.Analyze(ctx, algorithms)
	if err != nil {
		spin.Stop()
		return err
	}
	if !outcome.Success {
		spin.StopWithError(outcome.Message)
		exitFailure()
	}

	spin.StopWithSuccess(fmt.Sprintf("Analysis complete (%d models)",
		len(outcome.Summary.Models)))
	renderSummary(outcome.Summary)
	return nil
}

// resolveAlgorithms picks the algorithm set: explicit flags win, then the
// interactive form, then the default set.
func resolveAlgorithms() ([]string, error) {
	if len(algorithmFlags) > 0 {
		return algorithmFlags, nil
	}
	if !interactiveSelect {
		return defaultAlgorithms, nil
	}

	options := make([]huh.Option[string], 0, len(algorithmCatalog))
	for _, choice := range algorithmCatalog {
		options = append(options, huh.NewOption(choice.Label, choice.Name))
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Algorithms").
				Description("Space to toggle, enter to run").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("algorithm selection aborted: %w", err)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no algorithms selected (available: %s)",
			strings.Join(defaultAlgorithms, ", "))
	}
	return selected, nil
}
