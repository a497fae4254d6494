package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"subweave/internal/pipeline"
	"subweave/internal/runlog"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var (
		source       string
		target       string
		glossaryFile string
	)

	cmd := &cobra.Command{
		Use:   "translate <subtitles.srt>",
		Short: "Translate an existing SRT file",
		Long: "Parses an SRT file, takes the source line from bilingual cues, translates " +
			"every segment, and writes original, translated, and dual-language SRT files.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			p, runs, err := ctx.buildPipeline(pipelineOptions{
				glossaryFile: glossaryFile,
				inferName:    filepath.Base(input),
				withRunLog:   true,
			})
			if err != nil {
				return err
			}
			if runs != nil {
				defer runs.Close()
			}

			stream := p.Run(cmd.Context(), pipeline.Request{
				Input:  input,
				Mode:   runlog.ModeSubtitle,
				Source: source,
				Target: target,
			})
			return renderStream(cmd, stream, ctx.jsonOutput())
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "auto", "Source language code (auto to detect from text)")
	cmd.Flags().StringVarP(&target, "target", "t", "auto", "Target language code (auto picks English or Chinese)")
	cmd.Flags().StringVar(&glossaryFile, "glossary", "", "Extra glossary file for this run")

	return cmd
}
