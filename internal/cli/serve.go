// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/scrapbook/internal/api"
	"github.com/taibuivan/scrapbook/internal/auth"
	"github.com/taibuivan/scrapbook/internal/feed"
	"github.com/taibuivan/scrapbook/internal/platform/config"
	"github.com/taibuivan/scrapbook/internal/platform/constants"
	"github.com/taibuivan/scrapbook/internal/platform/live"
	"github.com/taibuivan/scrapbook/internal/platform/middleware"
	"github.com/taibuivan/scrapbook/internal/platform/sec"
	"github.com/taibuivan/scrapbook/internal/scrapbook"
	"github.com/taibuivan/scrapbook/internal/web"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scrapbook HTTP server",
		Long: `Run the scrapbook HTTP server.

Startup sequence:
  1. Load configuration from the environment (and .env).
  2. Connect and migrate the item store; attach the Redis list cache.
  3. Seed an empty store when SEED_ON_START is set.
  4. Wire handlers and serve until SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load configuration", err)
			}
			return runServe(cmd.Context(), cfg, newLogger(os.Stdout, cfg.Debug || rootOpts.Verbose))
		},
	}
}

// runServe wires every component and blocks until ctx is cancelled or a
// signal arrives.
func runServe(parent context.Context, cfg *config.Config, log *slog.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	slog.SetDefault(log)

	log.Info("service_initializing",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
	)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// # Store
	startupCtx, startupCancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer startupCancel()

	store, err := openBackend(startupCtx, cfg, log)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to open item store", err)
	}
	defer store.Close()

	// # Domain
	hub := live.NewHub(log)
	service := scrapbook.NewService(store.repository, hub, log)

	if cfg.SeedOnStart {
		items, err := seedItems(cfg)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read seed items", err)
		}
		if _, err := scrapbook.Seed(startupCtx, service, items, log); err != nil {
			return WrapExitError(ExitFailure, "failed to seed item store", err)
		}
	}

	// # Capabilities
	policy := sec.PolicyOpen
	if cfg.RequireAdmin {
		policy = sec.PolicyAdmin
	}

	var (
		verifier     middleware.TokenVerifier
		adminService *auth.Service
	)
	if cfg.AdminEnabled() {
		tokens, err := sec.NewTokenService(cfg.AdminTokenSecret, constants.AuthIssuer)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to initialize admin tokens", err)
		}
		verifier = tokens
		adminService = auth.NewService(tokens, cfg.AdminPassphraseHash, cfg.AdminTokenTTL, log)
	}

	// # HTTP
	items := scrapbook.NewHandler(service, policy)

	page, err := web.NewHandler(service, items, web.DefaultScrollSettings())
	if err != nil {
		return WrapExitError(ExitFailure, "failed to parse page template", err)
	}

	liveness, readiness := api.NewHealthHandlers(store.health, log)

	server := api.NewServer(ctx, cfg, log, verifier, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Items:     items,
		Feed:      feed.NewHandler(service),
		Admin:     auth.NewHandler(adminService),
		Events:    hub,
		Page:      page,
	})

	// # Run
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		hub.Run(groupCtx)
		return nil
	})

	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		return WrapExitError(ExitFailure, "server stopped with error", err)
	}

	log.Info("server_stopped")
	return nil
}
