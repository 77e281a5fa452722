package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/bumpver/internal/bump"
	"github.com/conn-castle/bumpver/internal/diffview"
	"github.com/conn-castle/bumpver/internal/messages"
)

var previewVersion = bump.Preview

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	var showDiff bool
	cmd := &cobra.Command{
		Use:   messages.PreviewUse,
		Short: messages.PreviewShort,
		Long:  messages.PreviewShort + "\n\n" + messages.BumpArgHelp,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := previewVersion(cmd.Context(), opts.request(args[0], args[1], args[2]))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !showDiff {
				writeLine(out, res.New)
				return nil
			}
			diff := diffview.Unified(res.Path, string(res.Before), string(res.After))
			_, _ = fmt.Fprint(out, diffview.Colorize(diff, colorEnabled(out)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showDiff, flagDiff, false, messages.FlagDiffUsage)
	return cmd
}
