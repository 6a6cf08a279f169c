package main

import (
	"errors"

	"github.com/spf13/cobra"
)

const usageLine = "Usage: musiclink <src-folder> <dest-folder>"

var errUsage = errors.New(usageLine)

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	ctx := newCommandContext(flags)

	var dryRun bool

	rootCmd := &cobra.Command{
		Use:           "musiclink <src-folder> <dest-folder>",
		Short:         "Hardlink a tagged music collection into an artist/album tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errUsage
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, ctx, args[0], args[1], dryRun)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	pf.StringVar(&flags.probe, "probe", "", "Tag reader: ffprobe or native")
	pf.StringVar(&flags.crossDevice, "cross-device", "", "Cross-filesystem policy: fail or copy")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print planned links without touching the destination")
	rootCmd.Flags().BoolVar(&flags.ledger, "ledger", false, "Record this run in the ledger database")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
