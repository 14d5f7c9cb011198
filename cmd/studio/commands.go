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
	"github.com/spf13/cobra"

	"github.com/AleutianAI/MLStudio/pkg/ux"
)

// --- Global Command Variables ---
var (
	backendURL  string // CLI override for backend.base_url
	plainOutput bool   // Disable styled terminal output

	interactiveSelect bool     // Pick algorithms from a terminal form
	algorithmFlags    []string // Algorithms passed on the command line

	rootCmd = &cobra.Command{
		Use:   "studio",
		Short: "A cli for the Aleutian ML Studio analysis backend",
		Long: `ML Studio is a client for uploading tabular datasets and running
batch machine learning analysis against the ML Studio backend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if plainOutput {
				ux.SetPlain(true)
			}
			return bootstrap()
		},
	}

	// --- Upload / Analyze ---
	uploadCmd = &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload a dataset file (.csv, .xlsx, .xls) and make it active",
		Args:  cobra.ExactArgs(1),
		RunE:  runUploadCommand, // Defined in cmd_upload.go
	}
	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Run ML algorithms against the active dataset",
		Long: `Runs a batch of ML algorithms against the active dataset and
reports per-model metrics plus the best-scoring model.

Examples:
  studio analyze                             # Default algorithm set
  studio analyze -a random_forest -a svm     # Explicit algorithms
  studio analyze --interactive               # Pick from a terminal form`,
		RunE: runAnalyzeCommand, // Defined in cmd_analyze.go
	}

	// --- State / Status ---
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the active dataset and backend connectivity",
		RunE:  runStatusCommand, // Defined in cmd_status.go
	}
	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Check whether the ML Studio backend is reachable",
		RunE:  runHealthCommand, // Defined in cmd_health.go
	}
	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Clear the active dataset and the persisted session",
		RunE:  runResetCommand, // Defined in cmd_reset.go
	}

	// --- Dataset Lookups ---
	datasetCmd = &cobra.Command{
		Use:   "dataset",
		Short: "Inspect and manage uploaded datasets",
	}
	datasetInfoCmd = &cobra.Command{
		Use:   "info [dataset]",
		Short: "Show row, column, and memory details for a dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDatasetInfoCommand, // Defined in cmd_dataset.go
	}
	datasetColumnsCmd = &cobra.Command{
		Use:   "columns [dataset]",
		Short: "List the column names of a dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDatasetColumnsCommand, // Defined in cmd_dataset.go
	}
	datasetListCmd = &cobra.Command{
		Use:   "list",
		Short: "List all datasets stored on the backend",
		RunE:  runDatasetListCommand, // Defined in cmd_dataset.go
	}
	datasetDeleteCmd = &cobra.Command{
		Use:   "delete [dataset]",
		Short: "Delete a dataset from the backend",
		Args:  cobra.ExactArgs(1),
		RunE:  runDatasetDeleteCommand, // Defined in cmd_dataset.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "",
		"Backend base URL (overrides config and MLSTUDIO_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false,
		"Plain output without colors or spinners")

	analyzeCmd.Flags().StringArrayVarP(&algorithmFlags, "algorithm", "a", nil,
		"Algorithm to run (repeatable); defaults to the standard set")
	analyzeCmd.Flags().BoolVarP(&interactiveSelect, "interactive", "i", false,
		"Choose algorithms interactively")

	datasetCmd.AddCommand(datasetInfoCmd, datasetColumnsCmd, datasetListCmd, datasetDeleteCmd)
	rootCmd.AddCommand(uploadCmd, analyzeCmd, statusCmd, healthCmd, resetCmd, datasetCmd)
}
