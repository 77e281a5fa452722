package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/bumpver/internal/bump"
	"github.com/conn-castle/bumpver/internal/config"
	"github.com/conn-castle/bumpver/internal/messages"
)

const (
	flagType      = "type"
	flagTypeShort = "t"
	flagDiff      = "diff"
	flagConfirm   = "confirm"
	flagNoLock    = "no-lock"
)

var loadConfig = config.FromEnv

// rootOptions carries the persistent flags and environment defaults shared by
// every subcommand.
type rootOptions struct {
	typ string
	cfg config.Config
}

// request builds a driver request, letting --type override BUMPVER_TYPE.
func (o *rootOptions) request(bumpToken, selector, file string) bump.Request {
	typ := o.typ
	if typ == "" {
		typ = o.cfg.Type
	}
	return bump.Request{
		Path:     file,
		Selector: selector,
		Bump:     bumpToken,
		Type:     typ,
		NoLock:   o.cfg.NoLock,
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	write := &writeOptions{root: opts}

	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong + "\n\n" + messages.BumpArgHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args) == 3 {
				return nil
			}
			return fmt.Errorf(messages.RootArgsFmt, len(args))
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return write.run(cmd, args)
		},
	}
	cmd.Flags().Bool("version", false, messages.RootVersionFlag)
	cmd.PersistentFlags().StringVarP(&opts.typ, flagType, flagTypeShort, "", messages.FlagTypeUsage)
	write.bindFlags(cmd)

	cmd.AddCommand(
		newReadCmd(opts),
		newPreviewCmd(opts),
		newWriteCmd(opts),
		newMcpCmd(opts),
	)
	return cmd
}

func writeLine(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, s)
}
