package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"subweave/internal/pipeline"
	"subweave/internal/runlog"
	"subweave/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var (
		source       string
		target       string
		glossaryFile string
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Watch a directory and process new videos automatically",
		Long: "Monitors a directory for new video files and runs each one through the " +
			"full pipeline. Defaults to workflow.watch_dir, falling back to the video directory.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dir := cfg.Workflow.WatchDir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				dir = cfg.Paths.VideoDir
			}

			handler := func(runCtx context.Context, path string) error {
				p, runs, err := ctx.buildPipeline(pipelineOptions{
					glossaryFile: glossaryFile,
					inferName:    filepath.Base(path),
					withRunLog:   true,
				})
				if err != nil {
					return err
				}
				if runs != nil {
					defer runs.Close()
				}
				stream := p.Run(runCtx, pipeline.Request{
					Input:  path,
					Mode:   runlog.ModeVideo,
					Source: source,
					Target: target,
				})
				return renderStream(cmd, stream, ctx.jsonOutput())
			}

			w, err := watcher.New(dir, handler, ctx.ensureLogger())
			if err != nil {
				return err
			}

			signalCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if !ctx.jsonOutput() {
				fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for new videos. Press Ctrl+C to stop.\n", dir)
			}
			err = w.Start(signalCtx)
			if signalCtx.Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "auto", "Source language code for new videos")
	cmd.Flags().StringVarP(&target, "target", "t", "auto", "Target language code for new videos")
	cmd.Flags().StringVar(&glossaryFile, "glossary", "", "Extra glossary file applied to every run")

	return cmd
}
