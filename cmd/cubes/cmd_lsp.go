package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/cubes/lsp"
)

func newLSPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewLSPServer(version, lsp.Options{
				Capacity:   opts.cfg.Bag,
				Extensions: opts.cfg.Workspace.Extensions,
			})
			return server.RunStdio()
		},
	}
}
