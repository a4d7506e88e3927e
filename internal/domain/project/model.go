package project

import "time"

// Project is one first-level folder under a tracked root. Path is the
// identity key: no two projects in one scan share a path.
type Project struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	OneLiner string   `json:"one_liner,omitempty"`
	Labels   []string `json:"labels,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Kind     string   `json:"kind"`
	Status   string   `json:"status"`

	Path     string `json:"path"`
	RelPath  string `json:"rel_path"`
	Category string `json:"category"`

	// ModTime approximates last activity: the folder mtime raised by the
	// newest signal file inside it.
	ModTime time.Time `json:"mod_time"`

	HasCatalogue   bool   `json:"has_catalogue"`
	ScreenshotPath string `json:"screenshot_path,omitempty"`

	Pinned bool `json:"pinned"`

	// EditorRank is the project's position in the editor's own
	// recently-opened list, or -1 when absent. Index 0 is most recent.
	EditorRank int `json:"editor_rank"`
}

// InEditorRecent reports whether the editor lists this project as
// recently opened.
func (p Project) InEditorRecent() bool {
	return p.EditorRank >= 0
}
