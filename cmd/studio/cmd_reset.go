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

// runResetCommand clears the active dataset and removes the persisted
// session. The dataset on the backend is left untouched; use
// "studio dataset delete" for that.
func runResetCommand(cmd *cobra.Command, args []string) error {
	studio.Reset()
	ux.Success("Cleared the active dataset and session")
	return nil
}
