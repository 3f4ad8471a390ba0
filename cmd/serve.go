package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/api"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/logger"
)

const serverShutdownTimeout = 15 * time.Second

// serveCmd starts the ops HTTP server: lead queries, batch triggering,
// health checks, and Prometheus metrics.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP server exposing lead queries, manual batch
triggering, health and readiness checks, and Prometheus metrics.
Stops gracefully on SIGINT/SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	deps, err := buildDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer deps.Close()

	handler := api.NewHandler(
		deps.Store,
		deps.Orchestrator,
		deps.DB,
		deps.Log,
		deps.Cfg.Service.Name,
		deps.Cfg.Service.Version,
	)

	server := api.NewServer(handler, deps.Telemetry.Handler(), api.ServerConfig{
		Port:  deps.Cfg.Service.Port,
		Debug: deps.Cfg.Service.Debug,
	}, deps.Log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		deps.Log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		deps.Log.Error("Server shutdown failed", logger.Error(err))
		return err
	}

	deps.Log.Info("Server stopped")
	return nil
}
