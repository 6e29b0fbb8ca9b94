// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli builds the scrapbook command tree.

Commands:

  - serve: runs the HTTP server with the configured store, cache and hub.
  - migrate / seed: prepare the configured store.
  - items list|add|rm: curate a running server over its HTTP API.
  - token / hash-passphrase: admin credential helpers.
  - simulate: drives the scroll controller on virtual time.

Server-side commands read their settings from the environment (see
internal/platform/config); client commands take flags.
*/
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/taibuivan/scrapbook/internal/platform/constants"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the scrapbook CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Scrapbook - an endlessly scrolling photo collage",
		Long:    "Serve and curate a scrapbook: an ordered collection of photos rendered as a seamless, looping collage.",
		Version: constants.AppVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewItemsCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))
	cmd.AddCommand(NewHashPassphraseCommand(opts))
	cmd.AddCommand(NewSimulateCommand(opts))

	return cmd
}

// formatter builds the output formatter for cmd.
func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
