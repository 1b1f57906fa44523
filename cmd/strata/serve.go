package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/strataforge/strata"
	"github.com/strataforge/strata/internal/adapters/file"
	httpadapter "github.com/strataforge/strata/internal/adapters/http"
	"github.com/strataforge/strata/internal/observability"
	"github.com/strataforge/strata/internal/presentation/tui"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the editing session over HTTP",
	Long: `Load the scene directory and expose the editing session over HTTP:
rename, undo, redo, stage inspection, Prometheus metrics at /metrics,
and the OpenAPI document at /openapi.yaml.

Edits are held in memory; the scene directory is written back on
shutdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := file.LoadStage(ctx, dir)
		if err != nil {
			return err
		}

		session := strata.NewSession(st, strata.WithLogger(slog.Default()))
		metrics := observability.New()
		handler := httpadapter.NewHandler(session, metrics, slog.Default())

		tui.PrintBanner()
		server := &http.Server{Addr: serveAddr, Handler: handler}

		serverErrors := make(chan error, 1)
		go func() {
			slog.Info("strata listening", "address", serveAddr, "dir", dir)
			serverErrors <- server.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			fmt.Println("\nShutdown signal received, shutting down server...")
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("could not stop server gracefully: %w", err)
			}
			if err := file.SaveStage(context.Background(), dir, st); err != nil {
				return fmt.Errorf("failed to save scene on shutdown: %w", err)
			}
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8464", "Listen address")
	rootCmd.AddCommand(serveCmd)
}
