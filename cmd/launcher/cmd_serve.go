package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kylemath/cursor-launcher/internal/transport"
	"github.com/kylemath/cursor-launcher/internal/watch"
)

var flagOpenBrowser bool

func init() {
	serveCmd.Flags().BoolVar(&flagOpenBrowser, "open", false, "open the dashboard in the default browser after starting")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Regenerate the dashboard and serve it locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := buildServices()
		ctx := cmd.Context()

		// An initial generation failure is not fatal: a stale dashboard
		// is still worth serving.
		if _, err := svc.generator.Generate(ctx); err != nil {
			logger.Warn("initial dashboard generation failed", "error", err)
		}

		if cfg.Watch.Enabled {
			watcher, err := watch.New(cfg.Root, cfg.Categories, cfg.Watch.Debounce, svc.generator, logger)
			if err != nil {
				logger.Warn("could not create watcher", "error", err)
			} else {
				if err := watcher.Start(ctx); err != nil {
					logger.Warn("could not start watcher", "error", err)
				} else {
					defer watcher.Stop()
				}
			}
		}

		router := transport.NewRouter(transport.Deps{
			Generator:    svc.generator,
			Pinned:       svc.pinned,
			RecentLog:    svc.recentLog,
			Launcher:     svc.launcher,
			DashboardDir: cfg.DashboardDir,
			OutputPath:   cfg.OutputPath(),
			Logger:       logger,
		})

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("cannot bind %s (is another launcher running?): %w", addr, err)
		}

		httpServer := &http.Server{Handler: router}
		go func() {
			logger.Info("server listening", "addr", addr)
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				logger.Error("server error", "error", err)
			}
		}()

		if flagOpenBrowser {
			url := "http://" + addr + "/"
			if err := openBrowser(url); err != nil {
				logger.Warn("could not open browser", "url", url, "error", err)
			}
		}

		waitForShutdown(httpServer)
		return nil
	},
}

func waitForShutdown(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
