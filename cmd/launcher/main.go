package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kylemath/cursor-launcher/internal/config"
	"github.com/kylemath/cursor-launcher/internal/dashboard"
	"github.com/kylemath/cursor-launcher/internal/editor"
	"github.com/kylemath/cursor-launcher/internal/store"
)

var version = "0.3.0"

var (
	flagRoot     string
	flagPort     int
	flagLogLevel string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "launcher",
	Short: "Project launcher dashboard for a local coding root",
	Long: `launcher scans a coding root for projects, merges per-project
catalogue metadata with pin state and editor recency, and produces a
static HTML dashboard with a small local server for opening projects
in the editor.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		if flagRoot != "" {
			cfg.Root = flagRoot
		}
		if flagPort != 0 {
			cfg.Server.Port = flagPort
		}
		if flagLogLevel != "" {
			cfg.Log.Level = flagLogLevel
		}

		// Keep stdout clean for JSON-RPC when running as an MCP server.
		logWriter := io.Writer(os.Stdout)
		if cmd.Name() == "mcp" {
			logWriter = os.Stderr
		}
		logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
			Level: parseLogLevel(cfg.Log.Level),
		}))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the launcher version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

// services bundles the collaborators every command operates on.
type services struct {
	generator *dashboard.Generator
	pinned    *store.PinnedStore
	recentLog *store.RecentLog
	launcher  editor.Launcher
}

func buildServices() services {
	pinned := store.NewPinnedStore(cfg.PinnedPath())
	return services{
		generator: dashboard.New(cfg, pinned, logger),
		pinned:    pinned,
		recentLog: store.NewRecentLog(cfg.RecentLogPath(), cfg.RecentLogCap),
		launcher:  editor.CLILauncher{Command: cfg.Editor.Command},
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "coding root to scan (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagPort, "port", 0, "server port (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
