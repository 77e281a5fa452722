package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/bumpver/internal/bump"
	"github.com/conn-castle/bumpver/internal/messages"
	"github.com/conn-castle/bumpver/internal/prompt"
)

var writeVersion = bump.Write

// newConfirmer returns the interactive approval hook used by --confirm.
var newConfirmer = func() bump.ConfirmFunc {
	return prompt.NewHuhConfirmer().ConfirmWrite
}

type writeOptions struct {
	root    *rootOptions
	confirm bool
	noLock  bool
}

func (w *writeOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&w.confirm, flagConfirm, false, messages.FlagConfirmUsage)
	cmd.Flags().BoolVar(&w.noLock, flagNoLock, false, messages.FlagNoLockUsage)
}

// run bumps args[1] in args[2] by args[0]. Nothing is printed on success.
func (w *writeOptions) run(cmd *cobra.Command, args []string) error {
	req := w.root.request(args[0], args[1], args[2])
	if w.noLock {
		req.NoLock = true
	}
	if w.confirm {
		req.Confirm = newConfirmer()
	}
	_, err := writeVersion(cmd.Context(), req)
	return err
}

func newWriteCmd(opts *rootOptions) *cobra.Command {
	w := &writeOptions{root: opts}
	cmd := &cobra.Command{
		Use:     messages.WriteUse,
		Aliases: []string{messages.WriteAlias},
		Short:   messages.WriteShort,
		Long:    messages.WriteShort + "\n\n" + messages.BumpArgHelp,
		Args:    cobra.ExactArgs(3),
		RunE:    w.run,
	}
	w.bindFlags(cmd)
	return cmd
}
