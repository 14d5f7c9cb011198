// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package api

import "errors"

// -----------------------------------------------------------------------------
// Error Types
// -----------------------------------------------------------------------------

// ErrorKind categorizes request failures for programmatic handling.
type ErrorKind int

const (
	// KindNetwork indicates the backend is unreachable (connection refused,
	// DNS failure, timeout before a response arrived).
	KindNetwork ErrorKind = iota

	// KindService indicates the backend responded with a non-success status.
	KindService

	// KindProtocol indicates the backend responded with success but the
	// payload did not match the contract (bad JSON, violated invariants).
	KindProtocol
)

// String returns the error kind as a string for logging.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "NETWORK_ERROR"
	case KindService:
		return "SERVICE_ERROR"
	case KindProtocol:
		return "PROTOCOL_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Error provides structured error information for backend requests.
//
// Message is always safe to surface to the user: for service errors it is
// the server-supplied message when one was present, otherwise a fixed
// per-operation default. Detail carries technical context for logs.
type Error struct {
	// Kind categorizes the failure.
	Kind ErrorKind

	// Op is the operation that failed ("upload", "analyze", "columns",
	// "dataset_info", "list", "delete").
	Op string

	// Message is the human-readable description shown to the user.
	Message string

	// Detail provides technical information for debugging.
	Detail string

	// StatusCode is the HTTP status for service errors, 0 otherwise.
	StatusCode int

	// Err is the underlying transport or decoding error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is a backend-unreachable failure.
func IsNetworkError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}

// IsServiceError reports whether err is a non-success backend response.
func IsServiceError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindService
}
