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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/MLStudio/pkg/app"
	"github.com/AleutianAI/MLStudio/pkg/ux"
)

// runUploadCommand uploads a local dataset file and makes it the active
// dataset on success. Client-side validation (extension, size) rejects
// the file before any bytes move.
func runUploadCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("%s is a directory, expected a dataset file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer file.Close()

	studio.Init(ctx)

	name := filepath.Base(path)
	spin := ux.NewSpinner(fmt.Sprintf("Uploading %s (%s)", name, app.FormatBytes(stat.Size())))
	spin.Start()

	outcome, err := studio.Upload(ctx, app.UploadRequest{
		Name: name,
		Size: stat.Size(),
		Data: file,
	})
	if err != nil {
		spin.Stop()
		return err
	}
	if outcome == nil {
		spin.StopWithError("upload was not started")
		exitFailure()
	}
	if !outcome.Success {
		spin.StopWithError(outcome.Message)
		exitFailure()
	}

	spin.StopWithSuccess(fmt.Sprintf("Uploaded %s", outcome.OriginalName))
	renderDatasetCard(outcome.Dataset, outcome.Info)
	return nil
}
