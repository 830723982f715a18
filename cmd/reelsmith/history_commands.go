package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"reelsmith/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var purgeDays int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.newStudioEnv()
			if err != nil {
				return err
			}
			defer env.close()

			if purgeDays > 0 {
				cutoff := time.Now().UTC().AddDate(0, 0, -purgeDays)
				removed, err := env.store.Purge(cmd.Context(), cutoff)
				if err != nil {
					return fmt.Errorf("purge history: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs older than %d days\n", removed, purgeDays)
			}

			runs, err := env.store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, runs)
			}
			renderRuns(cmd, runs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().IntVar(&purgeDays, "purge-older-than", 0, "Delete runs older than this many days before listing")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the stored result of one run",
		Long:  `Show the stored result of one run. The ID may be abbreviated to a unique prefix.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.newStudioEnv()
			if err != nil {
				return err
			}
			defer env.close()

			run, err := env.store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, run)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:       %s\n", run.ID)
			fmt.Fprintf(out, "Operation: %s\n", run.Operation)
			fmt.Fprintf(out, "Input:     %s\n", run.Input)
			fmt.Fprintf(out, "Status:    %s\n", run.Status)
			fmt.Fprintf(out, "When:      %s (%dms)\n", run.CreatedAt.Local().Format(time.RFC3339), run.DurationMS)
			if run.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:     %s\n", run.ErrorMessage)
			}
			if run.ResultJSON != "" {
				fmt.Fprintln(out, "Result:")
				fmt.Fprintln(out, indentJSON(run.ResultJSON))
			}
			return nil
		},
	}
}

func renderRuns(cmd *cobra.Command, runs []history.Run) {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			run.Operation,
			truncate(run.Input, 40),
			string(run.Status),
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Operation", "Input", "Status", "When"}, rows))
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func indentJSON(raw string) string {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	pretty, err := json.MarshalIndent(v, "  ", "  ")
	if err != nil {
		return raw
	}
	return "  " + string(pretty)
}
