package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/bumpver/internal/mcp"
	"github.com/conn-castle/bumpver/internal/messages"
)

var runMcpServer = mcp.RunServer

func newMcpCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.McpUse,
		Short: messages.McpShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			typ := opts.typ
			if typ == "" {
				typ = opts.cfg.Type
			}
			return runMcpServer(cmd.Context(), Version, mcp.Defaults{Type: typ, NoLock: opts.cfg.NoLock})
		},
	}
}
