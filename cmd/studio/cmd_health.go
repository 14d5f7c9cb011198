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

// runHealthCommand probes the backend once and reports the result.
// Exit code 1 means unreachable, for scripting.
func runHealthCommand(cmd *cobra.Command, args []string) error {
	if studio.ProbeConnectivity(cmd.Context()) {
		ux.Success("ML Studio backend is connected")
		return nil
	}
	ux.Error("ML Studio backend is not reachable")
	exitFailure()
	return nil
}
