package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/bumpver/internal/bump"
	"github.com/conn-castle/bumpver/internal/messages"
)

var readVersion = bump.Read

func newReadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ReadUse,
		Short: messages.ReadShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := readVersion(cmd.Context(), opts.request("", args[0], args[1]))
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), res.Old)
			return nil
		},
	}
}
