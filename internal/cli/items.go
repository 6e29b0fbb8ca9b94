// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/scrapbook/internal/scrapbook"
	"github.com/taibuivan/scrapbook/pkg/convert"
	"github.com/taibuivan/scrapbook/pkg/pointer"
	"github.com/taibuivan/scrapbook/pkg/slice"
)

const defaultServerURL = "http://localhost:8080"

// ClientOptions holds the flags shared by commands that call a server.
type ClientOptions struct {
	*RootOptions
	Server string
	Token  string
}

func (opts *ClientOptions) client() *scrapbook.Client {
	return scrapbook.NewClient(opts.Server, opts.Token)
}

func addClientFlags(cmd *cobra.Command, opts *ClientOptions) {
	server := os.Getenv("SCRAPBOOK_URL")
	if server == "" {
		server = defaultServerURL
	}

	cmd.PersistentFlags().StringVar(&opts.Server, "server", server, "scrapbook server URL ($SCRAPBOOK_URL)")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", os.Getenv("SCRAPBOOK_TOKEN"), "admin bearer token ($SCRAPBOOK_TOKEN)")
}

// NewItemsCommand creates the items command group.
func NewItemsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClientOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List, add and remove items on a running server",
	}
	addClientFlags(cmd, opts)

	cmd.AddCommand(newItemsListCommand(opts))
	cmd.AddCommand(newItemsAddCommand(opts))
	cmd.AddCommand(newItemsRemoveCommand(opts))

	return cmd
}

func newItemsListCommand(opts *ClientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List items in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.client().List(commandContext(cmd))
			if err != nil {
				return clientFailure("failed to list items", err)
			}
			return opts.formatter(cmd).Success(items, slice.Map(items, formatItem)...)
		},
	}
}

func newItemsAddCommand(opts *ClientOptions) *cobra.Command {
	var (
		caption   string
		width     int
		alignment string
		offset    string
	)

	cmd := &cobra.Command{
		Use:   "add <image-url>",
		Short: "Add an item",
		Long: `Add an item to the end of the scrapbook.

Example:
  scrapbook items add https://images.example/beach.jpg --caption "Golden hour" --width 450 --alignment right`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := scrapbook.NewItem{ImageURL: args[0]}
			if cmd.Flags().Changed("caption") {
				input.Caption = pointer.To(caption)
			}
			if cmd.Flags().Changed("width") {
				input.Width = pointer.To(width)
			}
			if alignment != "" {
				input.Alignment = pointer.To(alignment)
			}
			if offset != "" {
				input.Offset = pointer.To(offset)
			}

			item, err := opts.client().Create(commandContext(cmd), input)
			if err != nil {
				return clientFailure("failed to add item", err)
			}
			return opts.formatter(cmd).Success(item, formatItem(item))
		},
	}

	cmd.Flags().StringVar(&caption, "caption", "", "caption shown under the photo")
	cmd.Flags().IntVar(&width, "width", 0, "layout width in pixels")
	cmd.Flags().StringVar(&alignment, "alignment", "", "mobile alignment: "+strings.Join(scrapbook.Alignments(), "|"))
	cmd.Flags().StringVar(&offset, "offset", "", "mobile offset: "+strings.Join(scrapbook.Offsets(), "|"))

	return cmd
}

func newItemsRemoveCommand(opts *ClientOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Remove items by id",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, ok := convert.ToInt64(arg)
				if !ok {
					return NewExitError(ExitCommandError, fmt.Sprintf("invalid item id %q", arg))
				}
				ids = append(ids, id)
			}

			client := opts.client()
			for _, id := range ids {
				if err := client.Delete(commandContext(cmd), id); err != nil {
					return clientFailure(fmt.Sprintf("failed to remove item %d", id), err)
				}
			}

			return opts.formatter(cmd).Success(map[string][]int64{"removed": ids},
				slice.Map(ids, func(id int64) string { return fmt.Sprintf("removed %d", id) })...)
		},
	}
}

// formatItem renders one item as a tab-separated text line.
func formatItem(item *scrapbook.Item) string {
	alignment := "-"
	if item.Alignment != nil {
		alignment = string(*item.Alignment)
	}
	offset := "-"
	if item.Offset != nil {
		offset = string(*item.Offset)
	}

	return fmt.Sprintf("%d\t%d\t%s\t%s\t%s\t%s",
		item.ID,
		pointer.Val(item.Width),
		alignment,
		offset,
		item.ImageURL,
		pointer.Val(item.Caption),
	)
}

// clientFailure maps client errors onto exit codes: a rejected request is
// a command error, an unreachable server a runtime failure.
func clientFailure(message string, err error) error {
	var apiErr *scrapbook.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
		return WrapExitError(ExitCommandError, message, err)
	}
	return WrapExitError(ExitFailure, message, err)
}
