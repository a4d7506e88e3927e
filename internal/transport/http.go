// Package transport exposes the launcher's local HTTP surface: the
// generated dashboard, the two mutating endpoints, and plain static file
// serving for everything else.
package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/kylemath/cursor-launcher/internal/dashboard"
	"github.com/kylemath/cursor-launcher/internal/editor"
	"github.com/kylemath/cursor-launcher/internal/store"
)

// Deps carries the collaborators the handlers operate on. Requests are
// stateless: each one reads current file state, mutates, and responds.
type Deps struct {
	Generator    *dashboard.Generator
	Pinned       *store.PinnedStore
	RecentLog    *store.RecentLog
	Launcher     editor.Launcher
	DashboardDir string
	OutputPath   string
	Logger       *slog.Logger
}

// NewRouter builds the dashboard router.
func NewRouter(d Deps) *mux.Router {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	s := &server{d}

	r := mux.NewRouter()
	r.Use(requestLogging(d.Logger))
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/open-in-cursor", s.handleOpen).Methods(http.MethodGet)
	r.HandleFunc("/toggle-pin", s.handleTogglePin).Methods(http.MethodGet)

	// Traversal outside the dashboard dir is rejected by http.FileServer.
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(d.DashboardDir))).Methods(http.MethodGet)
	return r
}

type server struct {
	Deps
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, s.OutputPath)
}

// handleOpen validates the target, launches the editor best-effort, and
// records the open. Launch failures are logged but never fail the
// response; the contract is "best-effort launch, always acknowledge".
func (s *server) handleOpen(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "message": "no path provided"})
		return
	}
	if _, err := os.Stat(path); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "message": "invalid path"})
		return
	}

	newWindow := r.URL.Query().Get("new") == "true"
	if err := s.Launcher.Open(path, newWindow); err != nil {
		s.Logger.Warn("editor launch failed", "path", path, "error", err)
	}
	if err := s.RecentLog.Record(path); err != nil {
		s.Logger.Warn("could not record open", "path", path, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// handleTogglePin flips pin membership and kicks off a background
// regeneration so the next page load reflects the change.
func (s *server) handleTogglePin(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "message": "no path provided"})
		return
	}

	pinned, err := s.Pinned.Toggle(path)
	if err != nil {
		s.Logger.Error("toggle pin failed", "path", path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": "error", "message": "could not update pinned list"})
		return
	}

	if s.Generator != nil {
		go func() {
			if _, err := s.Generator.Generate(context.Background()); err != nil {
				s.Logger.Warn("regeneration after pin toggle failed", "error", err)
			}
		}()
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "pinned": pinned})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
