// Package rank turns a flat project list into the three dashboard views:
// pinned, recent, and per-category rows. The views are independent
// projections, not a partition; one project may appear in all three.
package rank

import (
	"sort"
	"time"

	"github.com/kylemath/cursor-launcher/internal/domain/project"
)

// CategoryGroup is one category row, sorted by activity descending.
type CategoryGroup struct {
	Name     string
	Projects []project.Project
}

// Groups is the fully ranked view of one scan.
type Groups struct {
	Pinned     []project.Project
	Recent     []project.Project
	Categories []CategoryGroup
}

// Build ranks projects using their Pinned and EditorRank annotations.
// maxRecent caps the recent row; zero or negative means no recent row.
func Build(projects []project.Project, maxRecent int) Groups {
	return Groups{
		Pinned:     pinnedGroup(projects),
		Recent:     recentGroup(projects, maxRecent),
		Categories: categoryGroups(projects),
	}
}

func pinnedGroup(projects []project.Project) []project.Project {
	var pinned []project.Project
	for _, p := range projects {
		if p.Pinned {
			pinned = append(pinned, p)
		}
	}
	sortByActivity(pinned)
	return pinned
}

// recentGroup places editor-reported projects first, in the editor's own
// order, then fills with the rest by activity. Paths already placed by
// the editor pass are excluded from the fallback pass.
func recentGroup(projects []project.Project, maxRecent int) []project.Project {
	if maxRecent <= 0 {
		return nil
	}

	var fromEditor, fallback []project.Project
	for _, p := range projects {
		if p.InEditorRecent() {
			fromEditor = append(fromEditor, p)
		} else {
			fallback = append(fallback, p)
		}
	}
	sort.SliceStable(fromEditor, func(i, j int) bool {
		return fromEditor[i].EditorRank < fromEditor[j].EditorRank
	})
	sortByActivity(fallback)

	recent := append(fromEditor, fallback...)
	if len(recent) > maxRecent {
		recent = recent[:maxRecent]
	}
	return recent
}

// categoryGroups buckets every project by structural category. Groups are
// ordered by their own newest activity; empty groups are omitted.
func categoryGroups(projects []project.Project) []CategoryGroup {
	byName := make(map[string][]project.Project)
	var order []string
	for _, p := range projects {
		if _, ok := byName[p.Category]; !ok {
			order = append(order, p.Category)
		}
		byName[p.Category] = append(byName[p.Category], p)
	}

	groups := make([]CategoryGroup, 0, len(order))
	for _, name := range order {
		members := byName[name]
		sortByActivity(members)
		groups = append(groups, CategoryGroup{Name: name, Projects: members})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return maxActivity(groups[i]).After(maxActivity(groups[j]))
	})
	return groups
}

func sortByActivity(projects []project.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].ModTime.After(projects[j].ModTime)
	})
}

func maxActivity(g CategoryGroup) time.Time {
	// Members are already sorted newest-first.
	if len(g.Projects) == 0 {
		return time.Time{}
	}
	return g.Projects[0].ModTime
}
