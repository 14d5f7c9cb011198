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
Package session persists the active dataset across CLI invocations.

A single JSON file under ~/.mlstudio holds the current dataset reference,
its metadata, and a timestamp. The snapshot is written on every dataset
change, read once at startup, and treated as absent when it is older than
24 hours or structurally incomplete. Stale and corrupt files are deleted
on read so they cannot resurface.

Save intentionally returns nothing: losing a session snapshot degrades
convenience, not correctness, so write failures are logged and swallowed
rather than failing the upload that triggered them.
*/
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/AleutianAI/MLStudio/pkg/api"
	"github.com/AleutianAI/MLStudio/pkg/logging"
)

// sessionFileName is the fixed name of the snapshot file inside the
// store directory. One file per store; a new save overwrites it.
const sessionFileName = "session.json"

// DefaultMaxAge is the freshness window. Snapshots older than this are
// discarded on load.
const DefaultMaxAge = 24 * time.Hour

// Snapshot is the persisted record: the dataset reference, its metadata,
// and the time the pair was saved.
type Snapshot struct {
	Dataset   string           `json:"currentDataset"`
	Info      *api.DatasetInfo `json:"datasetInfo"`
	Timestamp time.Time        `json:"timestamp"`
}

// valid reports whether the snapshot is structurally complete: a dataset
// reference and its metadata are only ever meaningful together.
func (s *Snapshot) valid() bool {
	return s.Dataset != "" && s.Info != nil
}

// Store reads and writes session snapshots in a directory.
//
// # Thread Safety
//
// Store uses a mutex so concurrent Save/Load/Clear calls do not interleave
// partial file operations.
type Store struct {
	// path is the full path of the snapshot file.
	path string

	// maxAge is the freshness window applied on Load.
	maxAge time.Duration

	// now is the clock, injectable for expiry tests.
	now func() time.Time

	mu  sync.Mutex
	log *logging.Logger
}

// NewStore creates a session store rooted at dir, creating the directory
// if needed. An empty dir selects the default ~/.mlstudio.
func NewStore(dir string, log *logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Default()
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".mlstudio")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{
		path:   filepath.Join(dir, sessionFileName),
		maxAge: DefaultMaxAge,
		now:    time.Now,
		log:    log,
	}, nil
}

// WithMaxAge overrides the freshness window applied on Load. Zero or
// negative values keep the default. Returns the store for chaining.
func (s *Store) WithMaxAge(maxAge time.Duration) *Store {
	if maxAge > 0 {
		s.maxAge = maxAge
	}
	return s
}

// Save writes a snapshot for the given dataset pair, overwriting any prior
// snapshot. It never fails the caller: serialization or filesystem errors
// are logged and dropped.
func (s *Store) Save(dataset string, info *api.DatasetInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := Snapshot{
		Dataset:   dataset,
		Info:      info,
		Timestamp: s.now(),
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		s.log.Warn("failed to serialize session snapshot", "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.log.Warn("failed to save session snapshot", "path", s.path, "error", err)
		return
	}
	s.log.Debug("session saved", "dataset", dataset)
}

// Load returns the stored snapshot, or (nil, false) when no usable
// snapshot exists. A snapshot past the freshness window, unparseable, or
// missing its dataset/metadata pair is deleted and reported absent.
func (s *Store) Load() (*Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.log.Warn("discarding corrupt session snapshot", "path", s.path, "error", err)
		s.removeLocked()
		return nil, false
	}

	if age := s.now().Sub(snapshot.Timestamp); age > s.maxAge {
		s.log.Info("discarding expired session snapshot", "age", age.Round(time.Minute))
		s.removeLocked()
		return nil, false
	}

	if !snapshot.valid() {
		s.log.Warn("discarding incomplete session snapshot")
		s.removeLocked()
		return nil, false
	}

	s.log.Debug("session restored", "dataset", snapshot.Dataset)
	return &snapshot, true
}

// Clear removes the snapshot file. It is idempotent; clearing an absent
// session is not an error.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked()
}

// removeLocked deletes the backing file. Caller holds s.mu.
func (s *Store) removeLocked() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to remove session snapshot", "path", s.path, "error", err)
	}
}
