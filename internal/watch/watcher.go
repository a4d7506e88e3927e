// Package watch regenerates the dashboard when the tracked root changes.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kylemath/cursor-launcher/internal/dashboard"
)

// Watcher observes the tracked root and its category directories and
// triggers a debounced regeneration after changes settle.
type Watcher struct {
	watcher  *fsnotify.Watcher
	gen      *dashboard.Generator
	root     string
	dirs     []string
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	dirtyAt time.Time
	running bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates a watcher over root and the named category directories.
func New(root string, categories []string, debounce time.Duration, gen *dashboard.Generator, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	dirs := []string{root}
	for _, c := range categories {
		dirs = append(dirs, filepath.Join(root, c))
	}
	return &Watcher{
		watcher:  fsw,
		gen:      gen,
		root:     root,
		dirs:     dirs,
		debounce: debounce,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching; non-blocking. Directories that don't exist yet
// are skipped.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	for _, dir := range w.dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("could not watch directory", "path", dir, "error", err)
			continue
		}
	}
	w.logger.Info("watching for project changes", "root", w.root)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.dirtyAt = time.Now()
			w.mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		case <-ticker.C:
			if w.settled() {
				if _, err := w.gen.Generate(ctx); err != nil {
					w.logger.Warn("regeneration failed", "error", err)
				}
			}
		}
	}
}

// settled reports whether changes were seen and have been quiet for the
// debounce window, clearing the dirty mark when so.
func (w *Watcher) settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dirtyAt.IsZero() || time.Since(w.dirtyAt) < w.debounce {
		return false
	}
	w.dirtyAt = time.Time{}
	return true
}
