// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/scrapbook/internal/platform/sec"
)

// NewTokenCommand creates the token command.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClientOptions{RootOptions: rootOpts}
	var passphrase string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Exchange the admin passphrase for a bearer token",
		Long: `Exchange the admin passphrase for a bearer token.

Export the printed token as SCRAPBOOK_TOKEN for the items commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return NewExitError(ExitCommandError, "--passphrase is required")
			}

			token, err := opts.client().RequestAdminToken(commandContext(cmd), passphrase)
			if err != nil {
				return clientFailure("failed to obtain admin token", err)
			}
			return opts.formatter(cmd).Success(token, token.Token)
		},
	}

	addClientFlags(cmd, opts)
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "admin passphrase")

	return cmd
}

// NewHashPassphraseCommand creates the hash-passphrase command.
func NewHashPassphraseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-passphrase",
		Short: "Print the bcrypt hash for ADMIN_PASSPHRASE_HASH",
		Long: `Read a passphrase from stdin and print its bcrypt hash.

Example:
  echo -n 'open sesame' | scrapbook hash-passphrase`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			passphrase := strings.TrimRight(line, "\r\n")
			if passphrase == "" {
				if err != nil {
					return WrapExitError(ExitCommandError, "no passphrase on stdin", err)
				}
				return NewExitError(ExitCommandError, "empty passphrase")
			}

			hash, err := sec.HashPassphrase(passphrase)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to hash passphrase", err)
			}
			return rootOpts.formatter(cmd).Success(map[string]string{"hash": hash}, hash)
		},
	}
}
