package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridtrace/comtrade/internal/cliconfig"
	"github.com/gridtrace/comtrade/pkg/comtrade"
)

func newInfoCommand(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "info <recording>",
		Short: "Print a summary of a recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cfg.Verbose)

			rec, err := comtrade.Load(args[0], loadOptions(cfg, log)...)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), rec.Summary())
			return nil
		},
	}
}
