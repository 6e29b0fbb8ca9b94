// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/scrapbook/internal/platform/config"
	"github.com/taibuivan/scrapbook/internal/platform/constants"
	"github.com/taibuivan/scrapbook/internal/scrapbook"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations to the configured store",
		Long: `Apply pending migrations to the store selected by STORE_DRIVER.

Migrations are idempotent; the memory driver has nothing to migrate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadForCommand(cmd, rootOpts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(commandContext(cmd), constants.StartupTimeout)
			defer cancel()

			// Opening a relational backend migrates it.
			store, err := openBackend(ctx, withoutCache(cfg), logger)
			if err != nil {
				return WrapExitError(ExitFailure, "migration failed", err)
			}
			store.Close()

			result := map[string]string{"driver": cfg.StoreDriver, "status": "migrated"}
			if cfg.StoreDriver == config.DriverMemory {
				result["status"] = "skipped"
			}
			return rootOpts.formatter(cmd).Success(result,
				fmt.Sprintf("%s store %s", cfg.StoreDriver, result["status"]))
		},
	}
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the seed items into an empty store",
		Long: `Insert the seed items into the configured store when it holds no items.

The embedded default set is used unless --file or SEED_FILE names a YAML file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadForCommand(cmd, rootOpts)
			if err != nil {
				return err
			}
			if file != "" {
				cfg.SeedFile = file
			}

			items, err := seedItems(cfg)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read seed items", err)
			}

			ctx, cancel := context.WithTimeout(commandContext(cmd), constants.StartupTimeout)
			defer cancel()

			store, err := openBackend(ctx, cfg, logger)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to open item store", err)
			}
			defer store.Close()

			service := scrapbook.NewService(store.repository, nil, logger)
			inserted, err := scrapbook.Seed(ctx, service, items, logger)
			if err != nil {
				return WrapExitError(ExitFailure, "seeding failed", err)
			}

			return rootOpts.formatter(cmd).Success(map[string]int{"inserted": inserted},
				fmt.Sprintf("inserted %d items", inserted))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file (overrides SEED_FILE)")
	return cmd
}

// loadForCommand loads configuration for a one-shot server-side command,
// logging to stderr so stdout stays parseable.
func loadForCommand(cmd *cobra.Command, rootOpts *RootOptions) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	return cfg, newLogger(cmd.ErrOrStderr(), cfg.Debug || rootOpts.Verbose), nil
}

// withoutCache returns a copy of cfg with the list cache disabled.
func withoutCache(cfg *config.Config) *config.Config {
	clone := *cfg
	clone.RedisURL = ""
	return &clone
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
