package editor

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"
)

// recentlyOpenedKey is where VS Code forks keep the File > Open Recent
// list inside state.vscdb.
const recentlyOpenedKey = "history.recentlyOpenedPathsList"

// recentlyOpenedValue mirrors the JSON stored under recentlyOpenedKey.
// Entries without a folderUri (files, workspaces) are skipped.
type recentlyOpenedValue struct {
	Entries []struct {
		FolderURI string `json:"folderUri"`
	} `json:"entries"`
}

// RecentFromStateDB reads the editor's recently-opened folders from its
// sqlite state database, filtered to paths under root. The database is
// opened read-only and any failure yields nil.
func RecentFromStateDB(dbPath, root string, logger *slog.Logger) []string {
	if _, err := os.Stat(dbPath); err != nil {
		return nil
	}

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		if logger != nil {
			logger.Warn("could not open editor state db", "path", dbPath, "error", err)
		}
		return nil
	}
	defer db.Close()

	var raw []byte
	err = db.QueryRow(`SELECT value FROM ItemTable WHERE key = ?`, recentlyOpenedKey).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows && logger != nil {
			logger.Warn("could not query editor state db", "path", dbPath, "error", err)
		}
		return nil
	}

	var value recentlyOpenedValue
	if err := json.Unmarshal(raw, &value); err != nil {
		if logger != nil {
			logger.Warn("unexpected recently-opened shape in state db", "path", dbPath, "error", err)
		}
		return nil
	}

	var recent []string
	for _, entry := range value.Entries {
		if path, ok := fileURIPath(entry.FolderURI); ok && underRoot(path, root) {
			recent = append(recent, path)
		}
	}
	return recent
}
