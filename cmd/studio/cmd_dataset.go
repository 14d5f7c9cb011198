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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/MLStudio/pkg/ux"
)

// runDatasetInfoCommand shows row, column, and memory details for a
// dataset, defaulting to the active one.
func runDatasetInfoCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	studio.Init(ctx)

	dataset, err := activeOrArg(args)
	if err != nil {
		return err
	}

	info, err := studio.Client().GetDatasetInfo(ctx, dataset)
	if err != nil {
		return err
	}
	renderDatasetCard(dataset, info)
	return nil
}

// runDatasetColumnsCommand lists the column names of a dataset,
// defaulting to the active one.
func runDatasetColumnsCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	studio.Init(ctx)

	dataset, err := activeOrArg(args)
	if err != nil {
		return err
	}

	columns, err := studio.Client().GetColumns(ctx, dataset)
	if err != nil {
		return err
	}

	ux.Title(fmt.Sprintf("Columns of %s (%d)", dataset, len(columns)))
	for _, column := range columns {
		ux.Info(column)
	}
	return nil
}

// runDatasetListCommand lists every dataset stored on the backend,
// marking the active one.
func runDatasetListCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	studio.Init(ctx)

	datasets, err := studio.Client().ListDatasets(ctx)
	if err != nil {
		return err
	}
	if len(datasets) == 0 {
		ux.Info("No datasets stored on the backend")
		return nil
	}

	active := studio.Dataset()
	ux.Title(fmt.Sprintf("Datasets (%d)", len(datasets)))
	for _, dataset := range datasets {
		if dataset == active {
			fmt.Printf("%s %s %s\n", ux.IconArrow.Render(), dataset,
				ux.Styles.Highlight.Render("(active)"))
			continue
		}
		ux.Info(dataset)
	}
	return nil
}

// runDatasetDeleteCommand removes a dataset from the backend. Deleting
// the active dataset also clears the local session.
func runDatasetDeleteCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	studio.Init(ctx)

	dataset := args[0]
	if err := studio.Client().DeleteDataset(ctx, dataset); err != nil {
		return err
	}

	if dataset == studio.Dataset() {
		studio.Reset()
		ux.Muted("The deleted dataset was active; session cleared")
	}
	ux.Success(fmt.Sprintf("Deleted %s", dataset))
	return nil
}
