package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"subweave/internal/pipeline"
	"subweave/internal/runlog"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var (
		source         string
		target         string
		prompt         string
		glossaryFile   string
		whisperModel   string
		transcribeOnly bool
	)

	cmd := &cobra.Command{
		Use:   "process <video>",
		Short: "Transcribe a video and generate subtitles",
		Long: "Extracts audio, transcribes it with whisper, and writes the original, " +
			"translated, and dual-language SRT files to the transcript directory.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			p, runs, err := ctx.buildPipeline(pipelineOptions{
				whisperModel: whisperModel,
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

			effectiveTarget := target
			if transcribeOnly {
				effectiveTarget = ""
			}
			stream := p.Run(cmd.Context(), pipeline.Request{
				Input:  input,
				Mode:   runlog.ModeVideo,
				Source: source,
				Target: effectiveTarget,
				Prompt: prompt,
			})
			return renderStream(cmd, stream, ctx.jsonOutput())
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "auto", "Source language code (auto to detect)")
	cmd.Flags().StringVarP(&target, "target", "t", "auto", "Target language code (auto picks English or Chinese)")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Initial prompt biasing transcription vocabulary")
	cmd.Flags().StringVar(&glossaryFile, "glossary", "", "Extra glossary file for this run")
	cmd.Flags().StringVar(&whisperModel, "model", "", "Whisper model override")
	cmd.Flags().BoolVar(&transcribeOnly, "transcribe-only", false, "Skip translation, emit the transcript and original SRT only")

	return cmd
}
