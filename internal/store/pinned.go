// Package store persists the launcher's two owned state files: the
// pinned-paths list and the recent-open log. Both are small JSON files
// mutated read-modify-write. A per-store mutex serializes writers inside
// this process; concurrent writers from other processes can still race
// (accepted for the single-user deployment, see the tests).
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// PinnedStore owns the pinned-paths file: a JSON array of absolute
// project paths, each present at most once, in insertion order.
type PinnedStore struct {
	path string
	mu   sync.Mutex
}

// NewPinnedStore creates a store around the given file. The file is
// created on first mutation.
func NewPinnedStore(path string) *PinnedStore {
	return &PinnedStore{path: path}
}

// Paths returns the pinned paths. A missing or unreadable file is an
// empty list, never an error.
func (s *PinnedStore) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Contains reports whether path is pinned.
func (s *PinnedStore) Contains(path string) bool {
	for _, p := range s.Paths() {
		if p == path {
			return true
		}
	}
	return false
}

// Toggle flips membership of path and reports the new pinned state.
func (s *PinnedStore) Toggle(path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pinned := s.load()
	kept := pinned[:0]
	removed := false
	for _, p := range pinned {
		if p == path {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		kept = append(kept, path)
	}

	if err := writeJSON(s.path, kept); err != nil {
		return false, fmt.Errorf("saving pinned list: %w", err)
	}
	return !removed, nil
}

func (s *PinnedStore) load() []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []string{}
	}
	var pinned []string
	if err := json.Unmarshal(data, &pinned); err != nil {
		return []string{}
	}
	return pinned
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
