package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/internal/cli"
	"github.com/aretw0/easel/internal/presentation/tui"
	httpAdapter "github.com/aretw0/easel/pkg/adapters/http"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/session"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		seed      string
		sessionID string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serves editing sessions from the configured snapshot store as a JSON API,
with a websocket change stream per session and Prometheus metrics on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := cli.OpenBackend(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer backend.Close()

			metrics := httpAdapter.NewMetrics()
			mgr := backend.Manager(
				session.WithLogger(a.logger),
				session.WithHooks(metrics.Hooks()),
			)

			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			if seed != "" {
				if err := seedSession(ctx, a, mgr, seed, sessionID); err != nil {
					return err
				}
			}

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
				Handler:           httpAdapter.NewHandler(mgr, httpAdapter.WithLogger(a.logger), httpAdapter.WithMetrics(metrics)),
				ReadHeaderTimeout: 10 * time.Second,
			}

			if f, ok := cmd.ErrOrStderr().(*os.File); ok && tui.IsTerminal(f) {
				tui.PrintBanner(f)
			}

			serverErrors := make(chan error, 1)
			go func() {
				a.logger.Info("easel server listening", "addr", srv.Addr, "store", a.cfg.Store.Driver)
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)
			case <-ctx.Done():
				a.logger.Info("shutting down", "signal", ctx.Signal())

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					_ = srv.Close()
					return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
				}
				return nil
			}
		},
	}

	cmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	cmd.Flags().StringVar(&seed, "seed", "", "Deck to create a session from on startup")
	cmd.Flags().StringVar(&sessionID, "session", "", "Session id for --seed (default: the deck title)")
	return cmd
}

// seedSession creates a session from the deck at path unless it already exists.
func seedSession(ctx context.Context, a *app, mgr *session.Manager, path, id string) error {
	loader, err := easel.LoaderFor(path)
	if err != nil {
		return err
	}
	d, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		id = d.Title
	}

	_, err = mgr.Create(ctx, id, d.Collection())
	if errors.Is(err, domain.ErrSnapshotExists) {
		a.logger.Info("seed session already exists, keeping it", "session_id", id)
		return nil
	}
	return err
}
