// Package state persists the mapping from issue IDs to their remote tracker
// counterparts, scoped per source document. The store is a single JSON file
// that is read fully, mutated in memory, and rewritten fully; it is meant to
// be committed alongside the documents so sync identity survives across
// machines and runs.
package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/danielolaszy/tracksync/pkg/models"
)

// DefaultPath is the store file location relative to the working directory.
const DefaultPath = ".sync-state.json"

// Store reads and writes sync state for all documents in one state file.
type Store struct {
	path string
}

// NewStore returns a store backed by the given file path.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Load returns the sync state for one document. A missing store file or a
// document with no prior sync yields an empty, usable state.
func (s *Store) Load(docPath string) (models.SyncState, error) {
	all, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	// A hand-edited store can hold an explicit null for a document; treat it
	// like a document with no prior sync so callers always get a usable map.
	st := all[docPath]
	if st == nil {
		return models.SyncState{}, nil
	}
	return st, nil
}

// Save persists the sync state for one document, preserving entries for other
// documents already present in the store. The file is rewritten as a whole
// with a stable serialization, so re-saving unchanged state is a no-op diff.
func (s *Store) Save(docPath string, st models.SyncState) error {
	all, err := s.loadAll()
	if err != nil {
		return err
	}

	all[docPath] = st

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sync state: %w", err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write sync state %s: %w", s.path, err)
	}
	return nil
}

// loadAll reads the whole store file. A missing file is an empty store.
func (s *Store) loadAll() (map[string]models.SyncState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]models.SyncState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sync state %s: %w", s.path, err)
	}

	var all map[string]models.SyncState
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to parse sync state %s: %w", s.path, err)
	}
	if all == nil {
		all = map[string]models.SyncState{}
	}
	return all, nil
}
