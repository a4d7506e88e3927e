package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines launcher configuration. Everything the scanner, renderer
// and server touch on disk is configurable so tests can run against
// synthetic roots.
type Config struct {
	Root         string   `yaml:"root"`
	Categories   []string `yaml:"categories"`
	IgnoreDirs   []string `yaml:"ignore_dirs"`
	DashboardDir string   `yaml:"dashboard_dir"`

	CatalogueFile  string `yaml:"catalogue_file"`
	ScreenshotFile string `yaml:"screenshot_file"`

	MaxRecentRow int `yaml:"max_recent_row"`
	RecentLogCap int `yaml:"recent_log_cap"`

	Server ServerConfig `yaml:"server"`
	Editor EditorConfig `yaml:"editor"`
	Watch  WatchConfig  `yaml:"watch"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// EditorConfig points at the external editor. StoragePath and StateDBPath
// are the editor's own persisted state; both are read best-effort and
// never written.
type EditorConfig struct {
	Command     string `yaml:"command"`
	StoragePath string `yaml:"storage_path"`
	StateDBPath string `yaml:"state_db_path"`
}

type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	home, _ := os.UserHomeDir()
	globalStorage := editorGlobalStorageDir(home)

	cfg := Config{
		Root:           filepath.Join(home, "Coding"),
		Categories:     []string{"RESEARCH", "TEACHING", "TOOLS", "PUZZLES", "HARDWARE"},
		IgnoreDirs:     []string{".git", "node_modules", "venv", "__pycache__", ".vscode", ".cursor", "build", "dist", ".DS_Store", "env", ".env"},
		DashboardDir:   filepath.Join(home, ".cursor-launcher"),
		CatalogueFile:  "catalogue.json",
		ScreenshotFile: "screenshot.png",
		MaxRecentRow:   10,
		RecentLogCap:   20,
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8847,
		},
		Editor: EditorConfig{
			Command:     "cursor",
			StoragePath: filepath.Join(globalStorage, "storage.json"),
			StateDBPath: filepath.Join(globalStorage, "state.vscdb"),
		},
		Watch: WatchConfig{
			Enabled:  false,
			Debounce: 2 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("LAUNCHER_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if root := os.Getenv("LAUNCHER_ROOT"); root != "" {
		cfg.Root = root
	}
	if dir := os.Getenv("LAUNCHER_DASHBOARD_DIR"); dir != "" {
		cfg.DashboardDir = dir
	}
	if host := os.Getenv("LAUNCHER_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("LAUNCHER_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LAUNCHER_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if command := os.Getenv("LAUNCHER_EDITOR_COMMAND"); command != "" {
		cfg.Editor.Command = command
	}
	if level := os.Getenv("LAUNCHER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

// OutputPath is the generated dashboard document.
func (c Config) OutputPath() string {
	return filepath.Join(c.DashboardDir, "dashboard.html")
}

// PinnedPath is the persisted pinned-paths file.
func (c Config) PinnedPath() string {
	return filepath.Join(c.DashboardDir, "pinned.json")
}

// RecentLogPath is the persisted recent-open log.
func (c Config) RecentLogPath() string {
	return filepath.Join(c.DashboardDir, "recent.json")
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// editorGlobalStorageDir locates Cursor's globalStorage directory for the
// current platform. The editor is a VS Code fork and follows its layout.
func editorGlobalStorageDir(home string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Cursor", "User", "globalStorage")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Cursor", "User", "globalStorage")
	default:
		return filepath.Join(home, ".config", "Cursor", "User", "globalStorage")
	}
}
