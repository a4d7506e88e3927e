package render_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kylemath/cursor-launcher/internal/domain/project"
	"github.com/kylemath/cursor-launcher/internal/domain/rank"
	"github.com/kylemath/cursor-launcher/internal/render"
	"github.com/stretchr/testify/require"
)

func renderGroups(t *testing.T, groups rank.Groups) string {
	t.Helper()
	out, err := render.New(nil).Render(groups, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return string(out)
}

func TestRenderBasicPage(t *testing.T) {
	groups := rank.Groups{
		Categories: []rank.CategoryGroup{{
			Name: "RESEARCH",
			Projects: []project.Project{
				{ID: "foo", Title: "foo", Path: "/r/RESEARCH/foo", RelPath: "RESEARCH/foo", Category: "RESEARCH"},
				{ID: "bar", Title: "Bar Project", Path: "/r/RESEARCH/bar", RelPath: "RESEARCH/bar", Category: "RESEARCH", HasCatalogue: true},
			},
		}},
	}

	html := renderGroups(t, groups)
	require.Contains(t, html, "Bar Project")
	require.Contains(t, html, `data-path="/r/RESEARCH/foo"`)
	require.Contains(t, html, "2 Projects")
	require.Contains(t, html, "1 with catalogue")
	require.Contains(t, html, "Generated June 1, 2025 at 12:00")
	require.Contains(t, html, "no-screenshot")
}

func TestRenderPinnedAndRecentRows(t *testing.T) {
	p := project.Project{ID: "x", Title: "X", Path: "/r/x", Category: "TOOLS", Pinned: true}
	groups := rank.Groups{
		Pinned:     []project.Project{p},
		Recent:     []project.Project{p},
		Categories: []rank.CategoryGroup{{Name: "TOOLS", Projects: []project.Project{p}}},
	}

	html := renderGroups(t, groups)
	require.Contains(t, html, `id="category-pinned"`)
	require.Contains(t, html, `id="category-recent"`)
	require.Contains(t, html, `id="category-TOOLS"`)
}

func TestRenderOmitsEmptyRows(t *testing.T) {
	groups := rank.Groups{
		Categories: []rank.CategoryGroup{{
			Name:     "TOOLS",
			Projects: []project.Project{{ID: "x", Title: "X", Path: "/r/x", Category: "TOOLS"}},
		}},
	}

	html := renderGroups(t, groups)
	require.NotContains(t, html, `id="category-pinned"`)
	require.NotContains(t, html, `id="category-recent"`)
}

func TestRenderEscapesTitles(t *testing.T) {
	groups := rank.Groups{
		Categories: []rank.CategoryGroup{{
			Name: "TOOLS",
			Projects: []project.Project{
				{ID: "x", Title: `<script>alert("x")</script>`, Path: "/r/x", Category: "TOOLS"},
			},
		}},
	}

	html := renderGroups(t, groups)
	require.NotContains(t, html, `<script>alert`)
}

func TestRenderInlinesScreenshot(t *testing.T) {
	dir := t.TempDir()
	shot := filepath.Join(dir, "screenshot.png")
	require.NoError(t, os.WriteFile(shot, []byte("fake-png-bytes"), 0o644))

	groups := rank.Groups{
		Categories: []rank.CategoryGroup{{
			Name: "TOOLS",
			Projects: []project.Project{
				{ID: "x", Title: "X", Path: "/r/x", Category: "TOOLS", ScreenshotPath: shot},
			},
		}},
	}

	html := renderGroups(t, groups)
	require.Contains(t, html, "data:image/png;base64,")
}

func TestRenderUnreadableScreenshotFallsBack(t *testing.T) {
	groups := rank.Groups{
		Categories: []rank.CategoryGroup{{
			Name: "TOOLS",
			Projects: []project.Project{
				{ID: "x", Title: "X", Path: "/r/x", Category: "TOOLS",
					ScreenshotPath: filepath.Join(t.TempDir(), "gone.png")},
			},
		}},
	}

	html := renderGroups(t, groups)
	require.NotContains(t, html, "data:image/png")
	require.Contains(t, html, "no-screenshot")
}
