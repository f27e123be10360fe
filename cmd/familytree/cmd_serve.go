package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shoresh/familytree-api/internal/platform/postgres"
)

func newServeCmd(opts *cliOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return opts.withApplication(ctx, func(app *application) error {
				if migrate && app.db != nil {
					if err := postgres.Migrate(ctx, app.db, postgres.MigrateUp, app.logger); err != nil {
						return err
					}
				}
				return app.serve(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests within the configured shutdown timeout.
func (app *application) serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
	}
	app.logger.Info("Starting server", slog.Int("port", app.config.Server.Port))

	timeout := time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
	if err := runServer(ctx, server, ln, timeout, app.logger); err != nil {
		app.logger.Error("server stopped with error", slog.String("error", err.Error()))
		return err
	}
	app.logger.Info("Server shutdown completed")
	return nil
}

// runServer serves on ln until ctx is done and then calls Shutdown. Request
// contexts do not derive from ctx, so a signal stops new connections without
// cancelling requests already running.
func runServer(
	ctx context.Context,
	server *http.Server,
	ln net.Listener,
	shutdownTimeout time.Duration,
	log *slog.Logger,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}
