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
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/MLStudio/pkg/analysis"
	"github.com/AleutianAI/MLStudio/pkg/validation"
)

// PreconditionError rejects an analysis request before any network call.
// The checks run in a fixed order and the first failure wins.
type PreconditionError struct {
	// Precondition is the failed check: "dataset", "connection", "busy",
	// or "algorithms".
	Precondition string

	// Message is a human-readable description of the failure.
	Message string
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return e.Message
}

// AnalyzeOutcome is the terminal result of one analysis run. On success
// Summary carries the reduced batch; on failure Message carries the
// user-facing description and Summary is nil.
type AnalyzeOutcome struct {
	// ID correlates this outcome across log lines.
	ID string

	// Timestamp is when the outcome was produced.
	Timestamp time.Time

	// Success reports whether the batch was produced and reduced.
	Success bool

	// Message is the failure description (failure only).
	Message string

	// Summary is the reduced result batch (success only).
	Summary *analysis.Summary
}

// Analyze runs the requested algorithms against the active dataset and
// reduces the returned batch into a Summary.
//
// Preconditions run in order and short-circuit: an active dataset must
// exist, the backend must be connected, no analysis may already be in
// flight, and the algorithm list must be non-empty with well-formed
// names. Each failure returns a *PreconditionError without touching the
// network.
//
// A backend failure (network, service, or malformed batch) is not an
// error return: it is a failure outcome carrying the user-facing
// message. The analyzing gate is released in a defer on every exit path,
// including a panic inside the reducer.
func (s *Studio) Analyze(ctx context.Context, algorithms []string) (*AnalyzeOutcome, error) {
	s.mu.Lock()
	dataset := s.dataset
	connected := s.connected
	busy := s.analyzing
	s.mu.Unlock()

	if dataset == "" {
		return nil, &PreconditionError{
			Precondition: "dataset",
			Message:      "no dataset is active; upload one first",
		}
	}
	if !connected {
		return nil, &PreconditionError{
			Precondition: "connection",
			Message:      "the ML Studio backend is not connected",
		}
	}
	if busy {
		return nil, &PreconditionError{
			Precondition: "busy",
			Message:      "an analysis is already running",
		}
	}
	if len(algorithms) == 0 {
		return nil, &PreconditionError{
			Precondition: "algorithms",
			Message:      "select at least one algorithm",
		}
	}
	if err := validation.AlgorithmNames(algorithms); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return nil, &PreconditionError{Precondition: verr.Field, Message: verr.Message}
		}
		return nil, &PreconditionError{Precondition: "algorithms", Message: err.Error()}
	}

	// Re-check the gate under the lock: the snapshot above can go stale
	// between the read and here.
	s.mu.Lock()
	if s.analyzing {
		s.mu.Unlock()
		return nil, &PreconditionError{
			Precondition: "busy",
			Message:      "an analysis is already running",
		}
	}
	s.analyzing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.analyzing = false
		s.mu.Unlock()
	}()

	outcome := &AnalyzeOutcome{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
	}
	s.log.Info("analysis started",
		"id", outcome.ID, "dataset", dataset, "algorithms", algorithms)

	batch, err := s.client.Analyze(ctx, dataset, algorithms)
	if err != nil {
		outcome.Message = err.Error()
		s.log.Warn("analysis failed", "id", outcome.ID, "error", err)
		return outcome, nil
	}

	outcome.Success = true
	outcome.Summary = analysis.Reduce(batch)

	if w := outcome.Summary.Winner; w != nil {
		s.log.Info("analysis complete",
			"id", outcome.ID, "models", len(batch),
			"winner", w.Algorithm, "score", w.Score)
	} else {
		s.log.Info("analysis complete, no successful model",
			"id", outcome.ID, "models", len(batch))
	}
	return outcome, nil
}
