package project

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// CategoryOther is the catch-all category for first-level folders that
// sit directly under the root without belonging to a named category.
const CategoryOther = "OTHER"

// DefaultSignalFiles are checked inside each project folder to raise its
// activity timestamp beyond the bare directory mtime.
var DefaultSignalFiles = []string{
	".git/HEAD",
	".git/index",
	"package.json",
	"Cargo.toml",
	"pyproject.toml",
	"requirements.txt",
	"go.mod",
	"main.py",
	"index.js",
}

// ScanConfig describes one tracked root. It is passed in explicitly so
// scans can run against synthetic roots in tests.
type ScanConfig struct {
	Root           string
	Categories     []string
	IgnoreDirs     []string
	CatalogueFile  string
	ScreenshotFile string
	SignalFiles    []string
}

func (c ScanConfig) withDefaults() ScanConfig {
	if c.CatalogueFile == "" {
		c.CatalogueFile = "catalogue.json"
	}
	if c.ScreenshotFile == "" {
		c.ScreenshotFile = "screenshot.png"
	}
	if c.SignalFiles == nil {
		c.SignalFiles = DefaultSignalFiles
	}
	return c
}

// Scanner discovers projects under a tracked root.
type Scanner struct {
	cfg    ScanConfig
	logger *slog.Logger
}

// NewScanner creates a scanner for the given root configuration.
func NewScanner(cfg ScanConfig, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{cfg: cfg.withDefaults(), logger: logger}
}

// Scan walks the named category directories one level deep, then sweeps
// the root itself for catch-all projects. Each first-level folder becomes
// exactly one project; a path is never classified twice. Unreadable
// directories contribute nothing.
func (s *Scanner) Scan(ctx context.Context) ([]Project, error) {
	var projects []Project
	seen := make(map[string]bool)

	for _, category := range s.cfg.Categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		catPath := filepath.Join(s.cfg.Root, category)
		entries, err := os.ReadDir(catPath)
		if err != nil {
			if !os.IsNotExist(err) {
				s.logger.Warn("skipping unreadable category", "path", catPath, "error", err)
			}
			continue
		}
		for _, entry := range entries {
			dir := filepath.Join(catPath, entry.Name())
			if !s.eligible(entry, seen[dir]) {
				continue
			}
			seen[dir] = true
			projects = append(projects, s.newProject(dir, category))
		}
	}

	// Root sweep: anything that is not a named category becomes OTHER.
	entries, err := os.ReadDir(s.cfg.Root)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("skipping unreadable root", "path", s.cfg.Root, "error", err)
		}
		return projects, nil
	}
	for _, entry := range entries {
		if s.isCategory(entry.Name()) {
			continue
		}
		dir := filepath.Join(s.cfg.Root, entry.Name())
		if !s.eligible(entry, seen[dir]) {
			continue
		}
		seen[dir] = true
		projects = append(projects, s.newProject(dir, CategoryOther))
	}

	return projects, nil
}

func (s *Scanner) eligible(entry os.DirEntry, seen bool) bool {
	if !entry.IsDir() || seen {
		return false
	}
	for _, name := range s.cfg.IgnoreDirs {
		if entry.Name() == name {
			return false
		}
	}
	return true
}

func (s *Scanner) isCategory(name string) bool {
	for _, category := range s.cfg.Categories {
		if name == category {
			return true
		}
	}
	return false
}

func (s *Scanner) newProject(dir, category string) Project {
	meta, source := LoadMetadata(dir, s.cfg.CatalogueFile)
	if source == MetadataMalformed {
		s.logger.Warn("malformed catalogue, using defaults", "path", dir)
	}
	meta = meta.applyDefaults(filepath.Base(dir))

	relPath := dir
	if rel, err := filepath.Rel(s.cfg.Root, dir); err == nil {
		relPath = rel
	}

	screenshot := filepath.Join(dir, s.cfg.ScreenshotFile)
	if _, err := os.Stat(screenshot); err != nil {
		screenshot = ""
	}

	return Project{
		ID:             meta.ID,
		Title:          meta.Title,
		OneLiner:       meta.OneLiner,
		Labels:         meta.Categories,
		Tags:           meta.Tags,
		Kind:           meta.Kind,
		Status:         meta.Status,
		Path:           dir,
		RelPath:        relPath,
		Category:       category,
		ModTime:        s.activityTime(dir),
		HasCatalogue:   source == MetadataFile || source == MetadataMalformed,
		ScreenshotPath: screenshot,
		EditorRank:     -1,
	}
}

// activityTime is the folder's own mtime raised to the newest signal file
// found directly inside it. Missing signal files are skipped.
func (s *Scanner) activityTime(dir string) time.Time {
	var latest time.Time
	if info, err := os.Stat(dir); err == nil {
		latest = info.ModTime()
	}
	for _, name := range s.cfg.SignalFiles {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return latest
}
