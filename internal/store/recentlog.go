package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// OpenEntry is one recorded project open, newest entries first on disk.
type OpenEntry struct {
	Path     string    `json:"path"`
	OpenedAt time.Time `json:"opened_at"`
}

// RecentLog owns the recent-open log: a capped JSON array of OpenEntry,
// one entry per path, most recent first. It is written by the record-open
// endpoint; the renderer does not consume it.
type RecentLog struct {
	path string
	cap  int
	mu   sync.Mutex
	now  func() time.Time
}

// NewRecentLog creates a log around the given file with the given cap.
func NewRecentLog(path string, capacity int) *RecentLog {
	return &RecentLog{path: path, cap: capacity, now: time.Now}
}

// Record moves path to the front of the log, stamping it with the current
// time. Any prior entry for the same path is dropped first; the log is
// then truncated to its cap.
func (l *RecentLog) Record(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.load()
	kept := entries[:0]
	for _, e := range entries {
		if e.Path != path {
			kept = append(kept, e)
		}
	}
	entries = append([]OpenEntry{{Path: path, OpenedAt: l.now()}}, kept...)
	if len(entries) > l.cap {
		entries = entries[:l.cap]
	}

	if err := writeJSON(l.path, entries); err != nil {
		return fmt.Errorf("saving recent log: %w", err)
	}
	return nil
}

// Entries returns the logged opens, newest first. A missing or unreadable
// file is an empty log.
func (l *RecentLog) Entries() []OpenEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *RecentLog) load() []OpenEntry {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil
	}
	var entries []OpenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}
