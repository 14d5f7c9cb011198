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

// runStatusCommand restores the persisted session if fresh, probes the
// backend, and projects the current state.
func runStatusCommand(cmd *cobra.Command, args []string) error {
	restored := studio.Init(cmd.Context())

	if studio.Connected() {
		ux.Success("Backend connected")
	} else {
		ux.Warning("Backend not reachable")
	}

	dataset := studio.Dataset()
	if dataset == "" {
		ux.Info("No active dataset. Upload one with: studio upload <file>")
		return nil
	}

	if restored {
		ux.Muted(fmt.Sprintf("Restored session for %s", dataset))
	}
	renderDatasetCard(dataset, studio.Info())
	return nil
}
