// Package dashboard wires scan, ranking and rendering into one
// generation step.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/kylemath/cursor-launcher/internal/config"
	"github.com/kylemath/cursor-launcher/internal/domain/project"
	"github.com/kylemath/cursor-launcher/internal/domain/rank"
	"github.com/kylemath/cursor-launcher/internal/editor"
	"github.com/kylemath/cursor-launcher/internal/render"
	"github.com/kylemath/cursor-launcher/internal/store"
)

// Stats summarizes one generation.
type Stats struct {
	Total         int
	Pinned        int
	WithCatalogue int
	EditorRecent  int
	ByCategory    map[string]int

	// Written is false when no projects were found and the output file
	// was intentionally left untouched.
	Written bool
}

// Generator produces the static dashboard document from the current
// state of the tracked root.
type Generator struct {
	cfg      config.Config
	scanner  *project.Scanner
	pinned   *store.PinnedStore
	editors  editor.Source
	renderer *render.Renderer
	logger   *slog.Logger

	// One generation at a time; the watcher and toggle-pin handler both
	// trigger regeneration.
	mu sync.Mutex
}

// New creates a generator. The pinned store is shared with the server so
// both observe the same file.
func New(cfg config.Config, pinned *store.PinnedStore, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		cfg: cfg,
		scanner: project.NewScanner(project.ScanConfig{
			Root:           cfg.Root,
			Categories:     cfg.Categories,
			IgnoreDirs:     cfg.IgnoreDirs,
			CatalogueFile:  cfg.CatalogueFile,
			ScreenshotFile: cfg.ScreenshotFile,
		}, logger),
		pinned: pinned,
		editors: editor.Source{
			StoragePath: cfg.Editor.StoragePath,
			StateDBPath: cfg.Editor.StateDBPath,
			Root:        cfg.Root,
			Logger:      logger,
		},
		renderer: render.New(logger),
		logger:   logger,
	}
}

// Projects scans the root and annotates each project with pin state and
// editor recency rank.
func (g *Generator) Projects(ctx context.Context) ([]project.Project, error) {
	projects, err := g.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	pinnedSet := make(map[string]bool)
	for _, path := range g.pinned.Paths() {
		pinnedSet[path] = true
	}
	rankByPath := make(map[string]int)
	for i, path := range g.editors.Recent() {
		rankByPath[path] = i
	}

	for i := range projects {
		projects[i].Pinned = pinnedSet[projects[i].Path]
		if r, ok := rankByPath[projects[i].Path]; ok {
			projects[i].EditorRank = r
		}
	}
	return projects, nil
}

// Generate scans, ranks, renders and atomically replaces the dashboard
// document. Finding zero projects is not an error: the step logs and
// leaves any previous output in place.
func (g *Generator) Generate(ctx context.Context) (Stats, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	projects, err := g.Projects(ctx)
	if err != nil {
		return Stats{}, err
	}
	if len(projects) == 0 {
		g.logger.Info("no projects found, skipping dashboard generation", "root", g.cfg.Root)
		return Stats{}, nil
	}

	stats := Stats{Total: len(projects), ByCategory: make(map[string]int), Written: true}
	for _, p := range projects {
		stats.ByCategory[p.Category]++
		if p.Pinned {
			stats.Pinned++
		}
		if p.HasCatalogue {
			stats.WithCatalogue++
		}
		if p.InEditorRecent() {
			stats.EditorRecent++
		}
	}

	groups := rank.Build(projects, g.cfg.MaxRecentRow)
	page, err := g.renderer.Render(groups, time.Now())
	if err != nil {
		return Stats{}, err
	}

	if err := g.writeOutput(page); err != nil {
		return Stats{}, err
	}
	g.logger.Info("dashboard generated",
		"path", g.cfg.OutputPath(),
		"projects", stats.Total,
		"pinned", stats.Pinned,
		"editor_recent", stats.EditorRecent)
	return stats, nil
}

// writeOutput writes via a temp file and rename so readers never see a
// half-written page.
func (g *Generator) writeOutput(page []byte) error {
	out := g.cfg.OutputPath()
	if err := os.MkdirAll(g.cfg.DashboardDir, 0o755); err != nil {
		return fmt.Errorf("preparing dashboard dir: %w", err)
	}
	tmp := out + ".tmp"
	if err := os.WriteFile(tmp, page, 0o644); err != nil {
		return fmt.Errorf("writing dashboard: %w", err)
	}
	if err := os.Rename(tmp, out); err != nil {
		return fmt.Errorf("replacing dashboard: %w", err)
	}
	return nil
}
