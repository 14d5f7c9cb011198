// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AleutianAI/MLStudio/pkg/api"
	"github.com/AleutianAI/MLStudio/pkg/session"
)

func analyzeOK(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		writeJSON(t, w, map[string]any{
			"success": true,
			"results": []map[string]any{
				{
					"algorithm":  "random_forest",
					"model_type": "classification",
					"accuracy":   0.92, "f1_score": 0.91,
					"precision": 0.90, "recall": 0.93,
				},
				{
					"algorithm":  "linear_regression",
					"model_type": "regression",
					"r2_score":   0.81, "mae": 0.2, "mse": 0.1,
				},
			},
		})
	})
}

func activeStudio(t *testing.T, handler http.Handler) *Studio {
	t.Helper()
	st, _ := newTestStudio(t, handler)
	markConnected(t, st)
	st.SetDataset("abc_iris.csv", nil)
	return st
}

func TestAnalyze_PreconditionOrder(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, st *Studio)
		algos   []string
		want    string
	}{
		{
			name:    "no dataset wins over disconnect",
			prepare: func(t *testing.T, st *Studio) {},
			algos:   nil,
			want:    "dataset",
		},
		{
			name: "disconnected",
			prepare: func(t *testing.T, st *Studio) {
				markConnected(t, st)
				st.SetDataset("abc_iris.csv", nil)
				st.mu.Lock()
				st.connected = false
				st.mu.Unlock()
			},
			algos: nil,
			want:  "connection",
		},
		{
			name: "empty algorithm list",
			prepare: func(t *testing.T, st *Studio) {
				markConnected(t, st)
				st.SetDataset("abc_iris.csv", nil)
			},
			algos: nil,
			want:  "algorithms",
		},
		{
			name: "malformed algorithm name",
			prepare: func(t *testing.T, st *Studio) {
				markConnected(t, st)
				st.SetDataset("abc_iris.csv", nil)
			},
			algos: []string{"Random Forest"},
			want:  "algorithm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := newTestStudio(t, analyzeOK(t))
			tt.prepare(t, st)

			_, err := st.Analyze(context.Background(), tt.algos)
			var perr *PreconditionError
			if !errors.As(err, &perr) {
				t.Fatalf("want *PreconditionError, got %v", err)
			}
			if perr.Precondition != tt.want {
				t.Errorf("Precondition = %q, want %q", perr.Precondition, tt.want)
			}
		})
	}
}

func TestAnalyze_Success(t *testing.T) {
	st := activeStudio(t, analyzeOK(t))

	outcome, err := st.Analyze(context.Background(), []string{"random_forest", "linear_regression"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !outcome.Success || outcome.Summary == nil {
		t.Fatalf("outcome = %+v, want success with summary", outcome)
	}
	if len(outcome.Summary.Models) != 2 {
		t.Fatalf("got %d model views, want 2", len(outcome.Summary.Models))
	}
	w := outcome.Summary.Winner
	if w == nil || w.Algorithm != "random_forest" {
		t.Errorf("winner = %+v, want random_forest", w)
	}
	if st.Analyzing() {
		t.Error("analyzing gate should be released")
	}
}

func TestAnalyze_BackendFailureIsOutcome(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(t, w, map[string]any{"error": "dataset not found"})
	})
	st := activeStudio(t, handler)

	outcome, err := st.Analyze(context.Background(), []string{"random_forest"})
	if err != nil {
		t.Fatalf("backend failure should not be an error return: %v", err)
	}
	if outcome.Success || outcome.Summary != nil {
		t.Fatalf("outcome = %+v, want failure", outcome)
	}
	if !strings.Contains(outcome.Message, "dataset not found") {
		t.Errorf("Message = %q, want the server error surfaced", outcome.Message)
	}
	if st.Analyzing() {
		t.Error("analyzing gate should be released after a failure")
	}
}

func TestAnalyze_NetworkFailureIsOutcome(t *testing.T) {
	server := httptest.NewServer(analyzeOK(t))
	store, err := session.NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	st := New(api.NewClient(server.URL, nil), store, nil)
	markConnected(t, st)
	st.SetDataset("abc_iris.csv", nil)

	// The backend goes away between the probe and the request.
	server.Close()

	outcome, err := st.Analyze(context.Background(), []string{"random_forest"})
	if err != nil {
		t.Fatalf("network failure should not be an error return: %v", err)
	}
	if outcome.Success {
		t.Fatalf("outcome = %+v, want failure", outcome)
	}
	if !strings.Contains(outcome.Message, "Cannot reach") {
		t.Errorf("Message = %q, want the connectivity message", outcome.Message)
	}
}

func TestAnalyze_ConcurrentSecondCallRejected(t *testing.T) {
	release := make(chan struct{})
	var runs atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		runs.Add(1)
		<-release
		writeJSON(t, w, map[string]any{
			"success": true,
			"results": []map[string]any{
				{"algorithm": "clustering", "model_type": "clustering",
					"silhouette_score": 0.65, "clusters_created": 3},
			},
		})
	})
	st := activeStudio(t, handler)

	first := make(chan struct{})
	go func() {
		defer close(first)
		st.Analyze(context.Background(), []string{"clustering"})
	}()

	deadline := time.After(2 * time.Second)
	for runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("first analysis never reached the backend")
		case <-time.After(time.Millisecond):
		}
	}

	_, err := st.Analyze(context.Background(), []string{"random_forest"})
	var perr *PreconditionError
	if !errors.As(err, &perr) {
		t.Fatalf("want *PreconditionError, got %v", err)
	}
	if perr.Precondition != "busy" {
		t.Errorf("Precondition = %q, want busy", perr.Precondition)
	}

	close(release)
	<-first

	if got := runs.Load(); got != 1 {
		t.Errorf("backend saw %d analysis runs, want 1", got)
	}
}
