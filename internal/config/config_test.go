package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kylemath/cursor-launcher/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, 8847, cfg.Server.Port)
	require.Equal(t, "cursor", cfg.Editor.Command)
	require.Equal(t, "catalogue.json", cfg.CatalogueFile)
	require.Equal(t, 10, cfg.MaxRecentRow)
	require.Equal(t, 20, cfg.RecentLogCap)
	require.Contains(t, cfg.Categories, "RESEARCH")
	require.Contains(t, cfg.IgnoreDirs, "node_modules")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LAUNCHER_ROOT", "/srv/code")
	t.Setenv("LAUNCHER_SERVER_PORT", "9999")
	t.Setenv("LAUNCHER_EDITOR_COMMAND", "code")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "/srv/code", cfg.Root)
	require.Equal(t, 9999, cfg.Server.Port)
	require.Equal(t, "code", cfg.Editor.Command)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("LAUNCHER_SERVER_PORT", "not-a-port")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "launcher.yaml")
	data := []byte("root: /data/projects\nserver:\n  port: 8080\nwatch:\n  enabled: true\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("LAUNCHER_CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "/data/projects", cfg.Root)
	require.Equal(t, 8080, cfg.Server.Port)
	require.True(t, cfg.Watch.Enabled)
}

func TestDerivedPaths(t *testing.T) {
	cfg := config.Config{DashboardDir: "/tmp/dash"}
	require.Equal(t, "/tmp/dash/dashboard.html", cfg.OutputPath())
	require.Equal(t, "/tmp/dash/pinned.json", cfg.PinnedPath())
	require.Equal(t, "/tmp/dash/recent.json", cfg.RecentLogPath())
}
