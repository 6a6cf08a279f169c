package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"musiclink/internal/ledger"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs recorded in the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if _, err := os.Stat(cfg.Ledger.Path); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(out, "No runs recorded (ledger %s does not exist; enable it with --ledger or ledger.enabled)\n", cfg.Ledger.Path)
				return nil
			}

			store, err := ledger.OpenPath(cfg.Ledger.Path)
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.StartedAt.Local().Format(time.DateTime),
					run.SourceRoot,
					run.DestRoot,
					strconv.Itoa(run.Found),
					strconv.Itoa(run.Linked),
					strconv.Itoa(run.Copied),
					strconv.Itoa(run.Existing),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.Failed),
					runStatus(run),
				})
			}
			fmt.Fprintln(out, renderTable(historyColumns, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Number of runs to show")
	return cmd
}

var historyColumns = []column{
	{header: "Run"},
	{header: "Started"},
	{header: "Source", maxWidth: 40},
	{header: "Destination", maxWidth: 40},
	{header: "Found", align: alignRight},
	{header: "Linked", align: alignRight},
	{header: "Copied", align: alignRight},
	{header: "Existing", align: alignRight},
	{header: "Skipped", align: alignRight},
	{header: "Failed", align: alignRight},
	{header: "Status", maxWidth: 40},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runStatus(run ledger.Run) string {
	switch {
	case !run.Finished():
		return "incomplete"
	case run.ErrorMessage != "":
		return "stopped: " + run.ErrorMessage
	case run.Failed > 0:
		return "finished with failures"
	case run.DryRun:
		return "dry run"
	default:
		return "ok"
	}
}
