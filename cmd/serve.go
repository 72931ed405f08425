package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akashtjohn/boundbox/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start an HTTP server exposing the box operations as a JSON API.

The server provides the following endpoints:
  POST /api/canonicalize       - Put box corners in canonical order
  POST /api/transform          - Rotate and rescale boxes
  POST /api/merge              - Merge boxes into lines or a single box
  POST /api/convert/{adapter}  - Convert raw engine output into boxes
  GET  /healthz                - Health check endpoint
  GET  /metrics                - Prometheus metrics

Examples:
  boundbox serve
  boundbox serve --port 8080
  boundbox serve --host 0.0.0.0 --port 3000`,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "Interface to listen on (default from config, localhost)")
	serveCmd.Flags().Int("port", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().Int("max-upload-size", 0, "Largest request body in MB (default from config, 20)")
}

func runServe(cmd *cobra.Command, args []string) error {
	sc := cfg.Server
	if cmd.Flags().Changed("host") {
		sc.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		sc.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("max-upload-size") {
		sc.MaxUploadMB, _ = cmd.Flags().GetInt("max-upload-size")
	}

	serverCfg := *cfg
	serverCfg.Server = sc
	if err := serverCfg.Validate(); err != nil {
		return err
	}

	api := server.NewServer(serverCfg, newRegistry())
	httpServer := &http.Server{
		Addr:              sc.Addr(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting boundbox server", "host", sc.Host, "port", sc.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case <-cmd.Context().Done():
		slog.Info("Server context cancelled")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), sc.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}
