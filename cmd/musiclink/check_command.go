package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"musiclink/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <src-folder> <dest-folder>",
		Short: "Report whether a run can link src into dest",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			src, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve source: %w", err)
			}
			dest, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("resolve destination: %w", err)
			}

			results := preflight.RunAll(cfg, src, dest)
			out := cmd.OutOrStdout()
			renderPreflight(out, results, isTerminal(out))

			if failed, ok := preflight.FirstFailure(results); ok {
				return fmt.Errorf("preflight failed: %s", failed.Name)
			}
			return nil
		},
	}
}
