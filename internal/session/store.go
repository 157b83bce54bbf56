// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds processed spectra and peak tables for the lifetime
// of one analysis session. The store is owned by the caller and passed by
// handle into the pipeline; the processing and detection stages themselves
// stay stateless. Entries are immutable snapshots, so concurrent readers
// need no coordination beyond the store's own lock.
package session

import (
	"sort"
	"sync"

	"github.com/pdiddy/ftir-engine/pkg/types"
)

// Entry is the session record for one input file: either a processed
// spectrum with its peak table, or the error that stopped processing.
// Failed files keep their entry so listings show an error state instead of
// silently dropping the item.
type Entry struct {
	Name     string
	Spectrum *types.Spectrum
	Peaks    types.PeakTable
	Err      error
}

// Failed reports whether this entry is an error placeholder.
func (e Entry) Failed() bool { return e.Err != nil }

// Store maps input names to their session entries.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New returns an empty session store.
func New() *Store {
	return &Store{entries: make(map[string]Entry)}
}

// Put records a successfully processed file, replacing any prior entry
// (including an error entry from an earlier attempt).
func (s *Store) Put(name string, spec *types.Spectrum, table types.PeakTable) {
	s.mu.Lock()
	s.entries[name] = Entry{Name: name, Spectrum: spec, Peaks: table}
	s.mu.Unlock()
}

// Fail records a processing failure for a file.
func (s *Store) Fail(name string, err error) {
	s.mu.Lock()
	s.entries[name] = Entry{Name: name, Err: err}
	s.mu.Unlock()
}

// Get returns the entry for name.
func (s *Store) Get(name string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[name]
	return e, ok
}

// Names returns all entry names in sorted order, error entries included.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.entries))
	for n := range s.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Tables returns the labelled peak tables of all successful entries in
// name order, ready for a combined interpretation request.
func (s *Store) Tables() []types.LabelledTable {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.entries))
	for n, e := range s.entries {
		if !e.Failed() {
			names = append(names, n)
		}
	}
	sort.Strings(names)

	out := make([]types.LabelledTable, 0, len(names))
	for _, n := range names {
		out = append(out, types.LabelledTable{Sample: n, Table: s.entries[n].Peaks})
	}
	return out
}

// Len returns the number of entries, error entries included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
