package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"subweave/internal/pipeline"
)

// renderStream consumes a run's events. In --json mode every event becomes
// one NDJSON line; otherwise progress messages print as they arrive and the
// terminal event becomes a summary. Returns an error when the run failed.
func renderStream(cmd *cobra.Command, stream *pipeline.Stream, jsonMode bool) error {
	var terminal pipeline.Event
	for event := range stream.Events() {
		if jsonMode {
			if err := writeNDJSON(cmd, event); err != nil {
				return err
			}
			if event.Terminal() {
				terminal = event
			}
			continue
		}
		if event.Terminal() {
			terminal = event
			continue
		}
		if event.Message != "" {
			fmt.Fprintln(cmd.OutOrStdout(), event.Message)
		}
	}

	if terminal.Type == pipeline.EventError {
		if jsonMode {
			return errRunFailed
		}
		return fmt.Errorf("processing failed: %s", terminal.Message)
	}
	if !jsonMode && len(terminal.Files) > 0 {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Output files:")
		keys := make([]string, 0, len(terminal.Files))
		for key := range terminal.Files {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(out, "  %-10s %s\n", key, terminal.Files[key])
		}
	}
	return nil
}

// errRunFailed signals a failed run whose details already went to stdout as
// an NDJSON error event.
var errRunFailed = fmt.Errorf("run failed")
