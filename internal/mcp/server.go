// Package mcp exposes the launcher over the Model Context Protocol so
// agents can browse, open and pin projects with the same collaborators
// the HTTP server uses.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kylemath/cursor-launcher/internal/dashboard"
	"github.com/kylemath/cursor-launcher/internal/domain/project"
	"github.com/kylemath/cursor-launcher/internal/editor"
	"github.com/kylemath/cursor-launcher/internal/store"
)

const serverInstructions = `Local project launcher. Use list_projects to
browse the tracked coding root, open_project to open one in the editor,
toggle_pin to pin or unpin a project, and regenerate to rebuild the
static dashboard.`

// Config contains server configuration.
type Config struct {
	Generator *dashboard.Generator
	Pinned    *store.PinnedStore
	RecentLog *store.RecentLog
	Launcher  editor.Launcher
	Logger    *slog.Logger
	Version   string
}

// NewServer creates and configures an MCP server with all tools.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "cursor-launcher",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerTools(server, cfg)
	return server
}

type listProjectsInput struct{}

type listProjectsOutput struct {
	Projects       []project.Project `json:"projects"`
	RecentlyOpened []store.OpenEntry `json:"recently_opened,omitempty"`
}

type openProjectInput struct {
	Path      string `json:"path" jsonschema:"absolute path of the project to open"`
	NewWindow bool   `json:"new_window,omitempty" jsonschema:"open in a separate editor window"`
}

type openProjectOutput struct {
	Status string `json:"status"`
}

type togglePinInput struct {
	Path string `json:"path" jsonschema:"absolute path of the project to pin or unpin"`
}

type togglePinOutput struct {
	Pinned bool `json:"pinned"`
}

type regenerateInput struct{}

type regenerateOutput struct {
	Total   int  `json:"total"`
	Pinned  int  `json:"pinned"`
	Written bool `json:"written"`
}

func registerTools(server *sdkmcp.Server, cfg Config) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects under the tracked root with pin state and editor recency",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ listProjectsInput) (*sdkmcp.CallToolResult, listProjectsOutput, error) {
		projects, err := cfg.Generator.Projects(ctx)
		if err != nil {
			return nil, listProjectsOutput{}, err
		}
		return nil, listProjectsOutput{
			Projects:       projects,
			RecentlyOpened: cfg.RecentLog.Entries(),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "open_project",
		Description: "Open a project folder in the editor (best-effort launch)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in openProjectInput) (*sdkmcp.CallToolResult, openProjectOutput, error) {
		if _, err := os.Stat(in.Path); err != nil {
			return nil, openProjectOutput{}, fmt.Errorf("invalid path: %s", in.Path)
		}
		if err := cfg.Launcher.Open(in.Path, in.NewWindow); err != nil {
			cfg.Logger.Warn("editor launch failed", "path", in.Path, "error", err)
		}
		if err := cfg.RecentLog.Record(in.Path); err != nil {
			cfg.Logger.Warn("could not record open", "path", in.Path, "error", err)
		}
		return nil, openProjectOutput{Status: "ok"}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_pin",
		Description: "Flip a project's membership in the pinned list",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in togglePinInput) (*sdkmcp.CallToolResult, togglePinOutput, error) {
		if in.Path == "" {
			return nil, togglePinOutput{}, fmt.Errorf("no path provided")
		}
		pinned, err := cfg.Pinned.Toggle(in.Path)
		if err != nil {
			return nil, togglePinOutput{}, err
		}
		return nil, togglePinOutput{Pinned: pinned}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "regenerate",
		Description: "Rescan the root and rebuild the static dashboard document",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ regenerateInput) (*sdkmcp.CallToolResult, regenerateOutput, error) {
		stats, err := cfg.Generator.Generate(ctx)
		if err != nil {
			return nil, regenerateOutput{}, err
		}
		return nil, regenerateOutput{
			Total:   stats.Total,
			Pinned:  stats.Pinned,
			Written: stats.Written,
		}, nil
	})
}
