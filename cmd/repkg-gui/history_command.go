package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/NaiHeeeee/repkg-gui/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history [job-id]",
		Short: "Show past extraction jobs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				if len(args) == 1 {
					record, err := store.Job(cmd.Context(), args[0])
					if err != nil {
						return fmt.Errorf("job %s: %w", args[0], err)
					}
					printJobDetail(cmd, record)
					return nil
				}

				records, err := store.RecentJobs(cmd.Context(), limitFlag)
				if err != nil {
					return err
				}
				printJobList(cmd, records)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum number of jobs to list")

	return cmd
}

func printJobList(cmd *cobra.Command, records []history.JobRecord) {
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "no extraction jobs recorded")
		return
	}

	headers := []string{"STARTED", "ID", "STATE", "OK", "FAILED", "DESTINATION"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.StartedAt.UTC().Format(time.RFC3339),
			record.ID,
			record.State,
			fmt.Sprintf("%d", record.Success),
			fmt.Sprintf("%d", record.Failure),
			record.Destination,
		})
	}

	if writerIsTerminal(out) {
		fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{
			alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft,
		}))
		return
	}
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
}

func printJobDetail(cmd *cobra.Command, record *history.JobRecord) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "job %s (%s)\n", record.ID, record.State)
	fmt.Fprintf(out, "  destination: %s\n", record.Destination)
	fmt.Fprintf(out, "  started:     %s\n", record.StartedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(out, "  finished:    %s\n", record.FinishedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(out, "  only images: %s\n", yesNo(record.OnlyImages))
	if record.Reason != "" {
		fmt.Fprintf(out, "  reason:      %s\n", record.Reason)
	}
	fmt.Fprintf(out, "  outcome:     %d succeeded, %d failed\n", record.Success, record.Failure)
	for _, item := range record.Items {
		status := "ok"
		if !item.OK {
			status = "failed: " + item.Detail
		}
		fmt.Fprintf(out, "    %s %s\n", item.Source, status)
	}
}
