// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AleutianAI/MLStudio/pkg/api"
	"github.com/AleutianAI/MLStudio/pkg/session"
)

// newTestStudio wires a Studio against an httptest backend and a session
// store rooted in a temp dir.
func newTestStudio(t *testing.T, handler http.Handler) (*Studio, *session.Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, err := session.NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	client := api.NewClient(server.URL, nil)
	return New(client, store, nil), store
}

func healthyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestStudio_Init_RestoresSession(t *testing.T) {
	st, store := newTestStudio(t, healthyHandler())

	info := &api.DatasetInfo{Rows: 10, Columns: 2, ColumnsList: []string{"a", "b"}}
	store.Save("abc123_data.csv", info)

	if !st.Init(context.Background()) {
		t.Fatal("Init should report a restored, connected session")
	}
	if got := st.Dataset(); got != "abc123_data.csv" {
		t.Errorf("Dataset = %q, want abc123_data.csv", got)
	}
	if st.Info() == nil || st.Info().Rows != 10 {
		t.Errorf("Info = %+v, want rows=10", st.Info())
	}
	if !st.Connected() {
		t.Error("Connected should be true after a healthy probe")
	}
}

func TestStudio_Init_NoSession(t *testing.T) {
	st, _ := newTestStudio(t, healthyHandler())

	if st.Init(context.Background()) {
		t.Fatal("Init should report false with nothing to restore")
	}
	if st.Dataset() != "" {
		t.Errorf("Dataset = %q, want empty", st.Dataset())
	}
	if !st.Connected() {
		t.Error("probe should still have run and succeeded")
	}
}

func TestStudio_Init_RestoredButDisconnected(t *testing.T) {
	server := httptest.NewServer(healthyHandler())
	server.Close()

	dir := t.TempDir()
	store, err := session.NewStore(dir, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	store.Save("abc123_data.csv", &api.DatasetInfo{Rows: 1, Columns: 1, ColumnsList: []string{"a"}})

	st := New(api.NewClient(server.URL, nil), store, nil)
	if st.Init(context.Background()) {
		t.Fatal("Init should report false when the backend is unreachable")
	}
	// The dataset is still restored locally, just not projected.
	if st.Dataset() != "abc123_data.csv" {
		t.Errorf("Dataset = %q, want abc123_data.csv", st.Dataset())
	}
}

func TestStudio_SetDataset_Persists(t *testing.T) {
	st, store := newTestStudio(t, healthyHandler())

	info := &api.DatasetInfo{Rows: 5, Columns: 1, ColumnsList: []string{"x"}}
	st.SetDataset("xyz_data.csv", info)

	snapshot, ok := store.Load()
	if !ok {
		t.Fatal("snapshot should be persisted")
	}
	if snapshot.Dataset != "xyz_data.csv" {
		t.Errorf("persisted dataset = %q, want xyz_data.csv", snapshot.Dataset)
	}
	if snapshot.Info == nil || snapshot.Info.Rows != 5 {
		t.Errorf("persisted info = %+v, want rows=5", snapshot.Info)
	}
}

func TestStudio_Reset(t *testing.T) {
	st, store := newTestStudio(t, healthyHandler())

	st.SetDataset("xyz_data.csv", &api.DatasetInfo{Rows: 1, Columns: 1, ColumnsList: []string{"x"}})
	st.Reset()

	if st.Dataset() != "" || st.Info() != nil {
		t.Error("Reset should clear the active dataset")
	}
	if _, ok := store.Load(); ok {
		t.Error("Reset should remove the persisted snapshot")
	}
}

func TestStudio_Reset_RemovesSessionFile(t *testing.T) {
	dir := t.TempDir()
	store, err := session.NewStore(dir, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	server := httptest.NewServer(healthyHandler())
	t.Cleanup(server.Close)
	st := New(api.NewClient(server.URL, nil), store, nil)

	st.SetDataset("abc_data.csv", &api.DatasetInfo{Rows: 1, Columns: 1, ColumnsList: []string{"x"}})
	path := filepath.Join(dir, "session.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("session file should exist: %v", err)
	}

	st.Reset()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file should be removed, stat err = %v", err)
	}
}

func TestStudio_ProbeConnectivity_TracksHealth(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if healthy.Load() {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	st, _ := newTestStudio(t, handler)

	if !st.ProbeConnectivity(context.Background()) {
		t.Fatal("probe should succeed while the backend is healthy")
	}
	if !st.Connected() {
		t.Error("Connected should reflect the probe")
	}

	healthy.Store(false)
	if st.ProbeConnectivity(context.Background()) {
		t.Fatal("probe should fail once the backend degrades")
	}
	if st.Connected() {
		t.Error("Connected should flip to false")
	}
}

func TestStudio_StartProbing_UpdatesConnected(t *testing.T) {
	var calls atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	st, _ := newTestStudio(t, handler)

	st.StartProbing(10 * time.Millisecond)
	defer st.Stop()

	deadline := time.After(2 * time.Second)
	for !st.Connected() {
		select {
		case <-deadline:
			t.Fatal("probe loop never marked the backend connected")
		case <-time.After(5 * time.Millisecond):
		}
	}
	if calls.Load() == 0 {
		t.Error("probe loop should have hit the health endpoint")
	}
}

func TestStudio_Stop_HaltsProbing(t *testing.T) {
	var calls atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	st, _ := newTestStudio(t, handler)

	st.StartProbing(5 * time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	st.Stop()

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	if calls.Load() != after {
		t.Errorf("probes continued after Stop: %d -> %d", after, calls.Load())
	}

	// Idempotent.
	st.Stop()
}

func TestStudio_StartProbing_SecondCallNoOp(t *testing.T) {
	st, _ := newTestStudio(t, healthyHandler())

	st.StartProbing(time.Hour)
	st.StartProbing(time.Hour)
	st.Stop()
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "0.50 KB"},
		{1024, "1.00 KB"},
		{1024 * 1024, "1.00 MB"},
		{5*1024*1024 + 512*1024, "5.50 MB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.size); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

// writeJSON is shared by the upload and analyze tests.
func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}
