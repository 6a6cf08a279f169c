package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteSummary prints the final counters as a table followed by "complete!".
func WriteSummary(w io.Writer, stats Stats, dryRun bool) {
	linkedLabel := "Linked"
	copiedLabel := "Copied"
	if dryRun {
		linkedLabel = "Would link"
		copiedLabel = "Would copy"
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"Result", "Files"})
	tw.AppendRows([]table.Row{
		{"Found", humanize.Comma(int64(stats.Found))},
		{"Processed", humanize.Comma(int64(stats.Processed))},
		{linkedLabel, humanize.Comma(int64(stats.Linked))},
		{copiedLabel, humanize.Comma(int64(stats.Copied))},
		{"Already present", humanize.Comma(int64(stats.Existing))},
		{"Skipped", humanize.Comma(int64(stats.Skipped))},
		{"Probe failed", humanize.Comma(int64(stats.ProbeFailed))},
		{"Link failed", humanize.Comma(int64(stats.LinkFailed))},
		{"Warnings", humanize.Comma(int64(stats.Warnings))},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	fmt.Fprintln(w, tw.Render())

	if !dryRun {
		fmt.Fprintf(w, "Placed %s in %s\n", humanize.Bytes(uint64(max(stats.LinkedBytes, 0))), stats.Elapsed.Round(time.Millisecond))
	} else {
		fmt.Fprintf(w, "Dry run finished in %s\n", stats.Elapsed.Round(time.Millisecond))
	}
	fmt.Fprintln(w, "complete!")
}
