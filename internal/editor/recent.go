// Package editor adapts the external editor's persisted state (read-only,
// best-effort) and shells out to its CLI. Any shape mismatch or I/O
// failure degrades to an empty result; nothing here is fatal.
package editor

import (
	"encoding/json"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// storageFile is the slice of the editor's storage.json we rely on. The
// extraction contract is deliberately narrow: an ordered list of
// file:// workspace URIs, newest first.
type storageFile struct {
	BackupWorkspaces struct {
		Folders []struct {
			FolderURI string `json:"folderUri"`
		} `json:"folders"`
	} `json:"backupWorkspaces"`
}

// RecentWorkspaces extracts the editor's recent workspace paths from its
// storage.json, filtered to paths under root. Missing file, bad JSON or
// an unexpected shape all yield nil.
func RecentWorkspaces(storagePath, root string, logger *slog.Logger) []string {
	data, err := os.ReadFile(storagePath)
	if err != nil {
		if !os.IsNotExist(err) && logger != nil {
			logger.Warn("could not read editor storage", "path", storagePath, "error", err)
		}
		return nil
	}

	var storage storageFile
	if err := json.Unmarshal(data, &storage); err != nil {
		if logger != nil {
			logger.Warn("could not parse editor storage", "path", storagePath, "error", err)
		}
		return nil
	}

	var recent []string
	for _, folder := range storage.BackupWorkspaces.Folders {
		if path, ok := fileURIPath(folder.FolderURI); ok && underRoot(path, root) {
			recent = append(recent, path)
		}
	}
	return recent
}

// Source merges the editor's recency signals: storage.json first, then
// the state database, deduplicated by path.
type Source struct {
	StoragePath string
	StateDBPath string
	Root        string
	Logger      *slog.Logger
}

// Recent returns the merged recent-workspace list, most recent first.
func (s Source) Recent() []string {
	var merged []string
	seen := make(map[string]bool)
	for _, list := range [][]string{
		RecentWorkspaces(s.StoragePath, s.Root, s.Logger),
		RecentFromStateDB(s.StateDBPath, s.Root, s.Logger),
	} {
		for _, path := range list {
			if !seen[path] {
				seen[path] = true
				merged = append(merged, path)
			}
		}
	}
	return merged
}

func fileURIPath(uri string) (string, bool) {
	if !strings.HasPrefix(uri, "file://") {
		return "", false
	}
	path := strings.TrimPrefix(uri, "file://")
	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}
	return path, true
}

func underRoot(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
