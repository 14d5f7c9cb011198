// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

/*
Package app is the orchestration core of the ML Studio client.

# Problem Statement

Upload and analysis are long asynchronous operations against one backend,
sharing one piece of state: the active dataset. Without a single owner,
three failure patterns appear: duplicate in-flight uploads, analysis
against a dataset that was just replaced, and a "busy" flag stuck after
an unexpected error permanently locking the workflow out.

# Solution

Studio is an explicit context object constructed once at startup and
passed by reference to everything that needs it. It owns:

	┌────────────────────────────────────────────────────────────┐
	│                        app.Studio                          │
	├────────────────────────────────────────────────────────────┤
	│  dataset + info     active dataset pair (replaced, never   │
	│                     mutated; persisted via session.Store)  │
	│  uploading          gate: one upload in flight             │
	│  analyzing          gate: one analysis in flight           │
	│  connected          last health probe result (advisory)    │
	│  probe loop         periodic CheckHealth, stopped by Stop  │
	└────────────────────────────────────────────────────────────┘

The gates reject, never queue: a second same-kind operation while one is
in flight returns immediately. Both gates are released in a defer so no
exit path, including a panic in the reducer, can leave the gate closed.

# Concurrency

One mutex guards all fields. It is held only across field access, never
across a network call, so a slow upload does not block connectivity
probes or reads. connected is advisory: it reflects the most recent
probe, and a request issued while connected may still fail on its own.

# Usage

	st := app.New(client, store, logger)
	restored := st.Init(ctx)
	st.StartProbing(app.DefaultProbeInterval)
	defer st.Stop()

	outcome, err := st.Upload(ctx, app.UploadRequest{...})

# Related Files

  - upload.go: Upload flow and its validation gate
  - analyze.go: Analysis flow and the result reduction hand-off
*/
package app

import (
	"context"
	"sync"
	"time"

	"github.com/AleutianAI/MLStudio/pkg/api"
	"github.com/AleutianAI/MLStudio/pkg/logging"
	"github.com/AleutianAI/MLStudio/pkg/session"
)

// DefaultProbeInterval is how often the background loop re-checks backend
// connectivity.
const DefaultProbeInterval = 30 * time.Second

// Studio is the single owner of orchestration state. Construct it with
// New; the zero value is not usable.
type Studio struct {
	client *api.Client
	store  *session.Store
	log    *logging.Logger

	mu        sync.Mutex
	dataset   string
	info      *api.DatasetInfo
	uploading bool
	analyzing bool
	connected bool

	probeCancel context.CancelFunc
	probeDone   chan struct{}
}

// New creates a Studio bound to a backend client and a session store.
// A nil logger falls back to the package default.
func New(client *api.Client, store *session.Store, log *logging.Logger) *Studio {
	if log == nil {
		log = logging.Default()
	}
	return &Studio{
		client: client,
		store:  store,
		log:    log,
	}
}

// Init restores a persisted session if one is fresh and complete, then
// issues a single connectivity probe. It reports true when a dataset was
// restored and the backend answered the probe, i.e. when the caller
// should project the restored dataset to the user.
func (s *Studio) Init(ctx context.Context) bool {
	restored := false
	if snapshot, ok := s.store.Load(); ok {
		s.mu.Lock()
		s.dataset = snapshot.Dataset
		s.info = snapshot.Info
		s.mu.Unlock()
		restored = true
		s.log.Info("restored dataset from session", "dataset", snapshot.Dataset)
	}

	connected := s.ProbeConnectivity(ctx)
	return restored && connected
}

// SetDataset replaces the active dataset pair atomically and persists the
// new snapshot. The reference and its metadata always travel together;
// there is no way to set one without the other.
func (s *Studio) SetDataset(dataset string, info *api.DatasetInfo) {
	s.mu.Lock()
	s.dataset = dataset
	s.info = info
	s.mu.Unlock()

	s.store.Save(dataset, info)
	s.log.Info("active dataset changed", "dataset", dataset)
}

// Reset clears the active dataset and removes the persisted session.
func (s *Studio) Reset() {
	s.mu.Lock()
	s.dataset = ""
	s.info = nil
	s.mu.Unlock()

	s.store.Clear()
	s.log.Info("state cleared")
}

// ProbeConnectivity checks backend health, records the result in the
// connected flag, and returns it. Safe to call concurrently with itself;
// last write wins.
func (s *Studio) ProbeConnectivity(ctx context.Context) bool {
	connected := s.client.CheckHealth(ctx)

	s.mu.Lock()
	changed := s.connected != connected
	s.connected = connected
	s.mu.Unlock()

	if changed {
		s.log.Info("backend connectivity changed", "connected", connected)
	}
	return connected
}

// StartProbing launches the periodic connectivity probe. Calling it while
// a probe loop is already running is a no-op. The loop runs until Stop.
func (s *Studio) StartProbing(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.probeCancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.probeCancel = cancel
	s.probeDone = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.ProbeConnectivity(ctx)
			}
		}
	}()
}

// Stop cancels the probe loop and waits for it to exit. Idempotent.
func (s *Studio) Stop() {
	s.mu.Lock()
	cancel := s.probeCancel
	done := s.probeDone
	s.probeCancel = nil
	s.probeDone = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// Dataset returns the active dataset reference, empty when none is set.
func (s *Studio) Dataset() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset
}

// Info returns the active dataset's metadata, nil when none is set.
func (s *Studio) Info() *api.DatasetInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// Connected reports the most recent health probe result.
func (s *Studio) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Uploading reports whether an upload is in flight.
func (s *Studio) Uploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}

// Analyzing reports whether an analysis is in flight.
func (s *Studio) Analyzing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzing
}

// Client exposes the backend client for read-only lookups (columns,
// dataset info, listing) that do not touch orchestration state.
func (s *Studio) Client() *api.Client {
	return s.client
}
