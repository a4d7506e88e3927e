// Package render turns ranked project groups into the static dashboard
// document. Rendering is pure string construction except for reading
// screenshot files to inline them.
package render

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kylemath/cursor-launcher/internal/domain/project"
	"github.com/kylemath/cursor-launcher/internal/domain/rank"
)

//go:embed dashboard.tmpl
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "dashboard.tmpl"))

var categoryEmoji = map[string]string{
	"RESEARCH": "🔬",
	"TEACHING": "📚",
	"TOOLS":    "🛠️",
	"PUZZLES":  "🧩",
	"HARDWARE": "🔧",
	"OTHER":    "📂",
}

const maxCardTags = 3

type pageData struct {
	GeneratedAt   string
	Total         int
	WithCatalogue int
	PinnedCount   int
	Rows          []rowData
}

type rowData struct {
	ID           string
	Emoji        string
	Name         string
	HeadClass    string
	RowClass     string
	ShowCategory bool
	Cards        []cardData
}

type cardData struct {
	ID            string
	Title         string
	OneLiner      string
	RelPath       string
	Path          string
	Category      string
	CategoryClass string
	Pinned        bool
	HasCatalogue  bool
	Screenshot    template.URL
	Tags          []string
}

// Renderer builds the dashboard page.
type Renderer struct {
	logger *slog.Logger
}

// New creates a renderer.
func New(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// Render produces the dashboard document for the given groups. Output is
// deterministic for identical inputs apart from the generatedAt stamp.
func (r *Renderer) Render(groups rank.Groups, generatedAt time.Time) ([]byte, error) {
	data := pageData{
		GeneratedAt: generatedAt.Format("January 2, 2006 at 15:04"),
		PinnedCount: len(groups.Pinned),
	}
	for _, g := range groups.Categories {
		data.Total += len(g.Projects)
		for _, p := range g.Projects {
			if p.HasCatalogue {
				data.WithCatalogue++
			}
		}
	}

	if len(groups.Pinned) > 0 {
		data.Rows = append(data.Rows, rowData{
			ID:           "pinned",
			Emoji:        "📌",
			Name:         "Pinned",
			HeadClass:    "cat-pinned",
			RowClass:     "row-pinned",
			ShowCategory: true,
			Cards:        r.cards(groups.Pinned),
		})
	}
	if len(groups.Recent) > 0 {
		data.Rows = append(data.Rows, rowData{
			ID:           "recent",
			Emoji:        "🕐",
			Name:         "Recent",
			HeadClass:    "cat-recent",
			RowClass:     "row-recent",
			ShowCategory: true,
			Cards:        r.cards(groups.Recent),
		})
	}
	for i, g := range groups.Categories {
		emoji, ok := categoryEmoji[g.Name]
		if !ok {
			emoji = "📁"
		}
		rowClass := "row-even"
		if i%2 == 1 {
			rowClass = "row-odd"
		}
		data.Rows = append(data.Rows, rowData{
			ID:        g.Name,
			Emoji:     emoji,
			Name:      g.Name,
			HeadClass: "cat-" + strings.ToLower(g.Name),
			RowClass:  rowClass,
			Cards:     r.cards(g.Projects),
		})
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering dashboard: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) cards(projects []project.Project) []cardData {
	cards := make([]cardData, 0, len(projects))
	for _, p := range projects {
		oneLiner := p.OneLiner
		if oneLiner == "" {
			oneLiner = "No description"
		}
		tags := p.Tags
		if len(tags) > maxCardTags {
			tags = tags[:maxCardTags]
		}
		cards = append(cards, cardData{
			ID:            p.ID,
			Title:         p.Title,
			OneLiner:      oneLiner,
			RelPath:       p.RelPath,
			Path:          p.Path,
			Category:      p.Category,
			CategoryClass: "cat-" + strings.ToLower(p.Category),
			Pinned:        p.Pinned,
			HasCatalogue:  p.HasCatalogue,
			Screenshot:    r.inlineScreenshot(p.ScreenshotPath),
			Tags:          tags,
		})
	}
	return cards
}

// inlineScreenshot returns the screenshot as a data URI, or "" when the
// file is absent or unreadable (the template falls back to a glyph).
func (r *Renderer) inlineScreenshot(path string) template.URL {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Debug("screenshot unreadable", "path", path, "error", err)
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
}
