package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/kylemath/cursor-launcher/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve launcher tools over MCP stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := buildServices()
		server := mcp.NewServer(mcp.Config{
			Generator: svc.generator,
			Pinned:    svc.pinned,
			RecentLog: svc.recentLog,
			Launcher:  svc.launcher,
			Logger:    logger,
			Version:   version,
		})

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-stop
			logger.Info("shutting down")
			cancel()
		}()

		logger.Info("starting stdio transport")
		// Run blocks until stdin closes or the context is cancelled.
		return server.Run(ctx, &sdkmcp.StdioTransport{})
	},
}
