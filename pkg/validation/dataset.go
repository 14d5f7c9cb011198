// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation for user-provided values
// that cross the process boundary: candidate dataset files before upload
// and algorithm identifiers before they are sent to the backend.
//
// Validators run before any network call; a rejected input never reaches
// the wire.
package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// MaxUploadBytes is the upload size ceiling. Files larger than this are
// rejected client-side; the backend enforces the same limit.
const MaxUploadBytes = 500 * 1024 * 1024

// allowedExtensions is the set of tabular formats the backend ingests.
// Matching is a case-insensitive suffix check on the filename.
var allowedExtensions = []string{".csv", ".xlsx", ".xls"}

// algorithmPattern matches backend algorithm identifiers.
// Identifiers are lowercase snake_case (e.g. "random_forest", "clustering").
// Max length: 64 characters.
var algorithmPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// Error describes a rejected input. Field names which check failed
// ("extension", "size", "algorithm") so callers can react programmatically.
type Error struct {
	// Field is the validation rule that failed.
	Field string

	// Message is a human-readable description of the failure.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// AllowedExtensions returns the accepted dataset file extensions.
func AllowedExtensions() []string {
	out := make([]string, len(allowedExtensions))
	copy(out, allowedExtensions)
	return out
}

// DatasetFile validates a candidate upload by filename and size.
//
// Checks run in order and short-circuit on the first failure:
//
//  1. Extension must be .csv, .xlsx, or .xls (case-insensitive).
//  2. Size must not exceed MaxUploadBytes (500 MiB).
//
// Returns nil when the file is acceptable, otherwise a *Error.
//
// Example:
//
//	if err := validation.DatasetFile(info.Name(), info.Size()); err != nil {
//	    return fmt.Errorf("cannot upload: %w", err)
//	}
func DatasetFile(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	ok := false
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			ok = true
			break
		}
	}
	if !ok {
		return &Error{
			Field: "extension",
			Message: fmt.Sprintf("invalid file type %q: only %s files are supported",
				ext, strings.Join(allowedExtensions, ", ")),
		}
	}

	if size > MaxUploadBytes {
		return &Error{
			Field:   "size",
			Message: fmt.Sprintf("file size exceeds the %d MB limit", MaxUploadBytes/(1024*1024)),
		}
	}

	return nil
}

// AlgorithmName validates a single algorithm identifier.
func AlgorithmName(name string) error {
	if name == "" {
		return &Error{Field: "algorithm", Message: "algorithm name cannot be empty"}
	}
	if !algorithmPattern.MatchString(name) {
		return &Error{
			Field: "algorithm",
			Message: fmt.Sprintf("invalid algorithm name %q (must be lowercase snake_case, max 64 chars)",
				name),
		}
	}
	return nil
}

// AlgorithmNames validates multiple algorithm identifiers.
// Returns an error listing all invalid names if any fail validation.
func AlgorithmNames(names []string) error {
	var invalid []string
	for _, n := range names {
		if err := AlgorithmName(n); err != nil {
			invalid = append(invalid, n)
		}
	}
	if len(invalid) > 0 {
		return &Error{
			Field:   "algorithm",
			Message: fmt.Sprintf("invalid algorithm names: %v", invalid),
		}
	}
	return nil
}
