// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/MLStudio/pkg/api"
	"github.com/AleutianAI/MLStudio/pkg/validation"
)

// ValidationError rejects an upload before any network call: bad
// extension, oversized file, or no backend connection.
type ValidationError struct {
	// Field is the failed check: "extension", "size", or "connection".
	Field string

	// Message is a human-readable description of the failure.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// UploadRequest describes a candidate file. Size is taken from the
// request rather than measured from Data so validation never consumes
// the reader.
type UploadRequest struct {
	// Name is the filename presented to the backend; its extension is
	// validated client-side.
	Name string

	// Size is the file size in bytes.
	Size int64

	// Data is the file content. Read exactly once, on a validated upload.
	Data io.Reader
}

// UploadOutcome is the terminal result of one upload attempt. Exactly one
// of the success or failure halves is populated.
type UploadOutcome struct {
	// ID correlates this outcome across log lines.
	ID string

	// Timestamp is when the outcome was produced.
	Timestamp time.Time

	// Success reports whether the dataset is now active.
	Success bool

	// Dataset is the server-assigned reference (success only).
	Dataset string

	// OriginalName is the client-side filename as echoed by the server.
	OriginalName string

	// Info is the ingested dataset's metadata (success only).
	Info *api.DatasetInfo

	// Message is the failure description (failure only).
	Message string
}

// Upload validates a candidate file and, if it passes, sends it to the
// backend and activates the resulting dataset.
//
// Validation runs in order and short-circuits: extension, size, backend
// connection. A failed check returns a *ValidationError without touching
// the network or any state.
//
// If an upload is already in flight the call is a silent no-op returning
// (nil, nil): mutual exclusion rejects, it does not queue.
//
// A backend failure (network or service) is not an error return: it is a
// failure outcome carrying the user-facing message, and the previously
// active dataset is left untouched. The uploading gate is released in a
// defer on every exit path.
func (s *Studio) Upload(ctx context.Context, req UploadRequest) (*UploadOutcome, error) {
	if err := validation.DatasetFile(req.Name, req.Size); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return nil, &ValidationError{Field: verr.Field, Message: verr.Message}
		}
		return nil, &ValidationError{Field: "file", Message: err.Error()}
	}

	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return nil, &ValidationError{
			Field:   "connection",
			Message: "the ML Studio backend is not connected",
		}
	}
	if s.uploading {
		s.mu.Unlock()
		s.log.Warn("upload already in progress, ignoring", "file", req.Name)
		return nil, nil
	}
	s.uploading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.uploading = false
		s.mu.Unlock()
	}()

	outcome := &UploadOutcome{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
	}
	s.log.Info("upload started", "id", outcome.ID, "file", req.Name, "bytes", req.Size)

	result, err := s.client.Upload(ctx, req.Name, req.Data)
	if err != nil {
		outcome.Message = err.Error()
		s.log.Warn("upload failed", "id", outcome.ID, "error", err)
		return outcome, nil
	}

	s.SetDataset(result.Filename, &result.Info)

	outcome.Success = true
	outcome.Dataset = result.Filename
	outcome.OriginalName = result.OriginalFilename
	outcome.Info = &result.Info
	return outcome, nil
}

// FormatBytes renders a byte count the way the upload panel does:
// KB below one MB, MB otherwise.
func FormatBytes(size int64) string {
	const mb = 1024 * 1024
	if size < mb {
		return fmt.Sprintf("%.2f KB", float64(size)/1024)
	}
	return fmt.Sprintf("%.2f MB", float64(size)/mb)
}
