package rank_test

import (
	"testing"
	"time"

	"github.com/kylemath/cursor-launcher/internal/domain/project"
	"github.com/kylemath/cursor-launcher/internal/domain/rank"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func proj(path, category string, age time.Duration) project.Project {
	return project.Project{
		Path:       path,
		Category:   category,
		ModTime:    base.Add(-age),
		EditorRank: -1,
	}
}

func paths(projects []project.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Path
	}
	return out
}

func TestBuildPinnedIgnoresRecency(t *testing.T) {
	old := proj("/r/RESEARCH/bar", "RESEARCH", 1000*time.Hour)
	old.Pinned = true
	projects := []project.Project{
		proj("/r/RESEARCH/foo", "RESEARCH", time.Hour),
		old,
	}

	groups := rank.Build(projects, 10)
	require.Equal(t, []string{"/r/RESEARCH/bar"}, paths(groups.Pinned))
}

func TestBuildPinnedSortedByActivity(t *testing.T) {
	a := proj("/r/a", "TOOLS", 5*time.Hour)
	b := proj("/r/b", "TOOLS", time.Hour)
	a.Pinned = true
	b.Pinned = true

	groups := rank.Build([]project.Project{a, b}, 10)
	require.Equal(t, []string{"/r/b", "/r/a"}, paths(groups.Pinned))
}

func TestBuildRecentEditorOrderWins(t *testing.T) {
	fresh := proj("/r/fresh", "TOOLS", time.Minute)
	second := proj("/r/second", "TOOLS", 99*time.Hour)
	first := proj("/r/first", "TOOLS", 98*time.Hour)
	second.EditorRank = 1
	first.EditorRank = 0

	groups := rank.Build([]project.Project{fresh, second, first}, 10)
	require.Equal(t, []string{"/r/first", "/r/second", "/r/fresh"}, paths(groups.Recent))
}

func TestBuildRecentCapAndDedup(t *testing.T) {
	var projects []project.Project
	for i := 0; i < 15; i++ {
		p := proj("/r/p"+string(rune('a'+i)), "TOOLS", time.Duration(i)*time.Hour)
		if i < 3 {
			// Both editor-recent and filesystem-recent.
			p.EditorRank = i
		}
		projects = append(projects, p)
	}

	groups := rank.Build(projects, 10)
	require.Len(t, groups.Recent, 10)

	seen := make(map[string]bool)
	for _, p := range groups.Recent {
		require.False(t, seen[p.Path], "duplicate path %s", p.Path)
		seen[p.Path] = true
	}
}

func TestBuildRecentDisabled(t *testing.T) {
	groups := rank.Build([]project.Project{proj("/r/x", "TOOLS", 0)}, 0)
	require.Empty(t, groups.Recent)
}

func TestBuildCategoryOrdering(t *testing.T) {
	projects := []project.Project{
		proj("/r/RESEARCH/old", "RESEARCH", 100*time.Hour),
		proj("/r/RESEARCH/older", "RESEARCH", 200*time.Hour),
		proj("/r/TOOLS/new", "TOOLS", time.Hour),
	}

	groups := rank.Build(projects, 10)
	require.Len(t, groups.Categories, 2)
	require.Equal(t, "TOOLS", groups.Categories[0].Name)
	require.Equal(t, "RESEARCH", groups.Categories[1].Name)
	require.Equal(t, []string{"/r/RESEARCH/old", "/r/RESEARCH/older"},
		paths(groups.Categories[1].Projects))
}

func TestBuildEmptyGroupsOmitted(t *testing.T) {
	groups := rank.Build([]project.Project{proj("/r/x", "TOOLS", 0)}, 10)
	require.Len(t, groups.Categories, 1)
	require.Equal(t, "TOOLS", groups.Categories[0].Name)
}

func TestBuildMembershipNonExclusive(t *testing.T) {
	p := proj("/r/TOOLS/x", "TOOLS", time.Hour)
	p.Pinned = true
	p.EditorRank = 0

	groups := rank.Build([]project.Project{p}, 10)
	require.Equal(t, []string{"/r/TOOLS/x"}, paths(groups.Pinned))
	require.Equal(t, []string{"/r/TOOLS/x"}, paths(groups.Recent))
	require.Equal(t, []string{"/r/TOOLS/x"}, paths(groups.Categories[0].Projects))
}
