package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subweave/internal/runlog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent processing runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runlog.Open(cfg.Paths.RunLogPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.Mode,
					filepath.Base(run.Input),
					formatLanguages(run.Source, run.Target),
					string(run.Status),
					formatDuration(run.DurationSeconds),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "STARTED", "MODE", "INPUT", "LANGUAGES", "STATUS", "DURATION"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}))
			return nil
		},
	}

	runsCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	runsCmd.AddCommand(newRunsShowCommand(ctx))

	return runsCmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one run in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runlog.Open(cfg.Paths.RunLogPath)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := findRun(cmd, store, args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %q not found", args[0])
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, run)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:        %s\n", run.ID)
			fmt.Fprintf(out, "Input:     %s\n", run.Input)
			fmt.Fprintf(out, "Mode:      %s\n", run.Mode)
			fmt.Fprintf(out, "Languages: %s\n", formatLanguages(run.Source, run.Target))
			if run.Model != "" {
				fmt.Fprintf(out, "Model:     %s\n", run.Model)
			}
			fmt.Fprintf(out, "Status:    %s\n", run.Status)
			fmt.Fprintf(out, "Started:   %s\n", run.StartedAt.Local().Format(time.RFC1123))
			fmt.Fprintf(out, "Duration:  %s\n", formatDuration(run.DurationSeconds))
			if run.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:     %s\n", run.ErrorMessage)
			}
			if len(run.Outputs) > 0 {
				fmt.Fprintln(out, "Outputs:")
				for kind, path := range run.Outputs {
					fmt.Fprintf(out, "  %-10s %s\n", kind, path)
				}
			}
			if len(run.Events) > 0 {
				fmt.Fprintln(out, "Events:")
				for _, event := range run.Events {
					fmt.Fprintf(out, "  %s\n", event)
				}
			}
			return nil
		},
	}
}

// findRun resolves a full or shortened run ID.
func findRun(cmd *cobra.Command, store *runlog.Store, id string) (*runlog.Run, error) {
	run, err := store.Get(cmd.Context(), id)
	if err != nil || run != nil {
		return run, err
	}
	runs, err := store.List(cmd.Context(), 0)
	if err != nil {
		return nil, err
	}
	var match *runlog.Run
	for _, candidate := range runs {
		if strings.HasPrefix(candidate.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("run ID %q is ambiguous", id)
			}
			match = candidate
		}
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatLanguages(source, target string) string {
	if source == "" {
		source = "?"
	}
	if target == "" {
		return source
	}
	return source + " -> " + target
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	return time.Duration(seconds * float64(time.Second)).Round(time.Second).String()
}
