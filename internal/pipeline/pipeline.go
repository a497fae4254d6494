package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"subweave/internal/config"
	"subweave/internal/glossary"
	"subweave/internal/language"
	"subweave/internal/logging"
	"subweave/internal/media"
	"subweave/internal/runlog"
	"subweave/internal/services"
	"subweave/internal/services/opencc"
	"subweave/internal/services/whisper"
	"subweave/internal/subtitle"
	"subweave/internal/translate"
)

// maxPromptLength caps the initial prompt handed to whisper.
const maxPromptLength = 1000

// AudioExtractor converts a video into transcription-ready audio.
type AudioExtractor interface {
	Extract(ctx context.Context, videoPath, audioPath string) (cached bool, err error)
}

// Transcriber produces timed segments from an audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, outputDir, language, prompt string) (whisper.Result, error)
	Model() string
}

// ScriptConverter converts Chinese text between scripts.
type ScriptConverter interface {
	Available() bool
	Convert(ctx context.Context, text, mode string) (string, error)
	ConvertSegments(ctx context.Context, segments []subtitle.Segment, mode string) ([]subtitle.Segment, error)
}

// PromptExpander enriches a transcription prompt with domain keywords.
type PromptExpander interface {
	Enabled() bool
	ExpandPrompt(ctx context.Context, filename, userPrompt string, glossary map[string]string) string
}

// SegmentTranslator translates segments while preserving count and timing.
type SegmentTranslator interface {
	TranslateSegments(ctx context.Context, segments []subtitle.Segment, source, target string, progress translate.Progress) []subtitle.Segment
}

// Deps bundles the pipeline collaborators.
type Deps struct {
	Extractor   AudioExtractor
	Transcriber Transcriber
	Converter   ScriptConverter
	Expander    PromptExpander
	Translator  SegmentTranslator
	Glossary    glossary.Glossary
	Runs        *runlog.Store
}

// Pipeline coordinates one run at a time through its stages.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	deps   Deps
}

// New assembles a pipeline.
func New(cfg *config.Config, logger *slog.Logger, deps Deps) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		deps:   deps,
	}
}

// Request describes one processing job.
type Request struct {
	// Input is the video or subtitle path, depending on Mode.
	Input string
	// Mode is runlog.ModeVideo or runlog.ModeSubtitle.
	Mode string
	// Source is the source language code; empty or "auto" detects it.
	Source string
	// Target is the translation target. Empty skips translation in video
	// mode and is an error in subtitle mode; "auto" picks between English
	// and Chinese based on the source.
	Target string
	// Prompt optionally biases transcription toward domain vocabulary.
	Prompt string
}

// runResult carries the outcome of a mode handler back to the runner.
type runResult struct {
	outputs map[string]string
	source  string
	target  string
}

// Run starts the job in a goroutine and returns its event stream. The
// stream ends with exactly one result or error event.
func (p *Pipeline) Run(ctx context.Context, req Request) *Stream {
	stream := newStream()
	go p.execute(ctx, req, stream)
	return stream
}

func (p *Pipeline) execute(ctx context.Context, req Request, stream *Stream) {
	defer stream.close()

	jobID := uuid.NewString()
	ctx = services.WithJobID(ctx, jobID)
	logger := logging.WithContext(ctx, p.logger)

	if req.Mode == "" {
		req.Mode = runlog.ModeVideo
	}

	run := &runlog.Run{
		ID:        jobID,
		Input:     req.Input,
		Mode:      req.Mode,
		Source:    req.Source,
		Target:    req.Target,
		Status:    runlog.StatusProcessing,
		StartedAt: time.Now().UTC(),
	}
	if req.Mode == runlog.ModeVideo && p.deps.Transcriber != nil {
		run.Model = p.deps.Transcriber.Model()
	}
	if p.deps.Runs != nil {
		if err := p.deps.Runs.Create(ctx, run); err != nil {
			logger.Warn("failed to record run start", logging.Error(err))
		}
	}

	var events []string
	emit := func(event Event) {
		if event.Message != "" {
			events = append(events, event.Message)
		}
		stream.send(event)
	}

	var (
		result runResult
		err    error
	)
	switch req.Mode {
	case runlog.ModeSubtitle:
		result, err = p.processSubtitle(ctx, req, emit)
	default:
		result, err = p.processVideo(ctx, req, emit)
	}

	run.Source = result.source
	run.Target = result.target
	run.Events = events
	run.Outputs = result.outputs
	run.FinishedAt = time.Now().UTC()

	if err != nil {
		logger.Error("run failed", logging.String("input", req.Input), logging.Error(err))
		run.Status = runlog.StatusFailed
		run.ErrorMessage = services.Message(err)
		stream.send(Event{
			Type:    EventError,
			Message: services.Message(err),
			Log:     err.Error(),
		})
	} else {
		logger.Info("run completed",
			logging.String("input", req.Input),
			logging.Int("outputs", len(result.outputs)))
		run.Status = runlog.StatusCompleted
		stream.send(Event{
			Type:   EventResult,
			Status: "completed",
			Files:  result.outputs,
		})
	}

	if p.deps.Runs != nil {
		if finishErr := p.deps.Runs.Finish(ctx, run); finishErr != nil {
			logger.Warn("failed to record run finish", logging.Error(finishErr))
		}
	}
}

func (p *Pipeline) processVideo(ctx context.Context, req Request, emit func(Event)) (runResult, error) {
	var res runResult
	res.source = req.Source
	res.target = req.Target

	if err := media.ValidateVideoInput(req.Input); err != nil {
		return res, err
	}
	if err := os.MkdirAll(p.cfg.Paths.TranscriptDir, 0o755); err != nil {
		return res, services.Wrap(services.ErrTransient, "prepare", "", "create transcript directory", err)
	}

	videoName := filepath.Base(req.Input)
	base := baseName(req.Input)
	audioPath := media.AudioPath(p.cfg.Paths.AudioDir, req.Input)
	transcriptPath := filepath.Join(p.cfg.Paths.TranscriptDir, base+".txt")

	emit(progressEvent(fmt.Sprintf("Starting processing for %s...", videoName), ""))

	emit(progressEvent("Step 1/4: Converting video to audio...", "prepare"))
	cached, err := p.deps.Extractor.Extract(ctx, req.Input, audioPath)
	if err != nil {
		return res, err
	}
	if cached {
		emit(progressEvent("Audio file already exists, skipping conversion.", "prepare"))
	} else {
		emit(progressEvent("Audio conversion complete.", "prepare"))
	}

	prompt := p.resolvePrompt(ctx, req, videoName, emit)

	sourceDisplay := req.Source
	if sourceDisplay == "" {
		sourceDisplay = "auto"
	}
	promptNote := "no prompt"
	if prompt != "" {
		promptNote = "with prompt"
	}
	emit(progressEvent(fmt.Sprintf("Step 2/4: Transcribing audio (source: %s, model: %s, %s)...",
		sourceDisplay, p.deps.Transcriber.Model(), promptNote), "transcribe"))

	transcription, err := p.deps.Transcriber.Transcribe(ctx, audioPath, p.cfg.Paths.TranscriptDir, language.EngineHint(req.Source), prompt)
	if err != nil {
		return res, err
	}
	segments := transcription.Segments
	text := transcription.Text
	detected := transcription.Language

	emit(Event{
		Type:    EventProgress,
		Message: fmt.Sprintf("Transcription complete. %d segments.", len(segments)),
		Stage:   "transcribe",
		Current: len(segments),
		Total:   len(segments),
		Status:  "completed",
	})

	effectiveSource := req.Source
	if effectiveSource == "" || effectiveSource == "auto" {
		effectiveSource = language.ResolveAutoSource(detected)
		if language.Normalize(detected) == "zh" && language.Normalize(effectiveSource) == "zh-cn" {
			emit(progressEvent("Detected Chinese without script/region. Defaulting source to zh-CN (Simplified).", ""))
		}
	}
	sourceCode := firstNonEmpty(effectiveSource, detected)
	sourceNorm := language.Normalize(sourceCode)
	res.source = sourceCode

	segments, text = p.convertScript(ctx, segments, text, sourceNorm, emit)

	sourceTag := langTag(sourceCode)
	srtPath := filepath.Join(p.cfg.Paths.TranscriptDir, BuildSRTName(base, sourceTag, "", false))

	emit(progressEvent(fmt.Sprintf("Transcription complete. Detected language: %s", detected), ""))
	if req.Source == "" || req.Source == "auto" {
		emit(progressEvent(fmt.Sprintf("Auto source language resolved to: %s", sourceCode), ""))
	}

	emit(progressEvent("Saving transcripts...", "save"))
	if err := os.WriteFile(transcriptPath, []byte(text), 0o644); err != nil {
		return res, services.Wrap(services.ErrTransient, "save", "", "write transcript", err)
	}
	if err := subtitle.WriteFile(segments, srtPath); err != nil {
		return res, services.Wrap(services.ErrTransient, "save", "", "write original subtitles", err)
	}
	outputs := map[string]string{"original": srtPath}
	res.outputs = outputs

	var effectiveTarget string
	switch req.Target {
	case "":
		emit(progressEvent("Target language set to none (transcript only). Skipping translation.", ""))
	case "auto":
		effectiveTarget = language.ResolveAutoTarget(sourceCode)
		emit(progressEvent(fmt.Sprintf("Auto-selected target language: %s", effectiveTarget), ""))
	default:
		effectiveTarget = req.Target
	}
	res.target = effectiveTarget

	switch {
	case effectiveTarget == "":
		emit(progressEvent("Step 4/4: Translation skipped (transcript only).", ""))
	case language.Normalize(effectiveTarget) != sourceNorm:
		emit(Event{
			Type:    EventProgress,
			Message: fmt.Sprintf("Step 4/4: Translating subtitles to '%s'...", effectiveTarget),
			Stage:   "translate",
			Current: 0,
			Total:   len(segments),
		})
		translated, err := p.translateSegments(ctx, segments, sourceCode, effectiveTarget, emit)
		if err != nil {
			return res, err
		}
		targetTag := langTag(effectiveTarget)
		translatedPath := filepath.Join(p.cfg.Paths.TranscriptDir, BuildSRTName(base, sourceTag, targetTag, false))
		if err := subtitle.WriteFile(translated, translatedPath); err != nil {
			return res, services.Wrap(services.ErrTransient, "save", "", "write translated subtitles", err)
		}
		outputs["translated"] = translatedPath

		emit(progressEvent("Generating dual-language subtitles...", "save"))
		dualPath := filepath.Join(p.cfg.Paths.TranscriptDir, BuildSRTName(base, sourceTag, targetTag, true))
		if err := subtitle.WriteDualFile(segments, translated, dualPath); err != nil {
			return res, err
		}
		outputs["dual"] = dualPath
		emit(progressEvent("Translation and dual-subs generation complete.", ""))
	default:
		emit(progressEvent("Target language matches source. Skipping translation.", ""))
	}

	if p.cfg.Workflow.CleanupAfterProcess {
		if err := os.Remove(req.Input); err == nil {
			_ = os.Remove(audioPath)
			emit(progressEvent("Cleaned up source video and extracted audio.", ""))
		}
	}

	emit(progressEvent("Processing finished successfully.", ""))
	return res, nil
}

func (p *Pipeline) processSubtitle(ctx context.Context, req Request, emit func(Event)) (runResult, error) {
	var res runResult
	res.source = req.Source
	res.target = req.Target

	if err := media.ValidateSubtitleInput(req.Input); err != nil {
		return res, err
	}
	if err := os.MkdirAll(p.cfg.Paths.TranscriptDir, 0o755); err != nil {
		return res, services.Wrap(services.ErrTransient, "prepare", "", "create transcript directory", err)
	}

	base := baseName(req.Input)
	emit(progressEvent(fmt.Sprintf("Starting SRT translation for %s...", filepath.Base(req.Input)), ""))

	segments, err := subtitle.ParseFile(req.Input)
	if err != nil {
		return res, services.Wrap(services.ErrValidation, "input", "parse srt", "read subtitle file", err)
	}
	if len(segments) == 0 {
		return res, services.Wrap(services.ErrValidation, "input", "parse srt", "no subtitle segments found", nil)
	}

	bilingual := subtitle.IsBilingual(segments)
	if bilingual {
		emit(progressEvent("Detected bilingual subtitles. Extracting source lines.", ""))
	}
	sourceSegments := subtitle.ExtractSource(segments, bilingual)

	sourceLang := req.Source
	if sourceLang == "" || sourceLang == "auto" {
		combined := subtitle.JoinText(sourceSegments, " ")
		sourceLang = language.DetectFromText(combined)
		if sourceLang != "" {
			emit(progressEvent(fmt.Sprintf("Detected source language: %s", sourceLang), ""))
		}
	}
	res.source = sourceLang
	sourceTag := langTag(sourceLang)

	if req.Target == "" {
		return res, services.Wrap(services.ErrValidation, "input", "",
			"target language is required for subtitle translation", nil)
	}
	effectiveTarget := req.Target
	if effectiveTarget == "auto" {
		effectiveTarget = language.ResolveAutoTarget(sourceLang)
		emit(progressEvent(fmt.Sprintf("Auto-selected target language: %s", effectiveTarget), ""))
	}
	res.target = effectiveTarget

	emit(Event{
		Type:    EventProgress,
		Message: fmt.Sprintf("Translating SRT to '%s'...", effectiveTarget),
		Stage:   "translate",
		Current: 0,
		Total:   len(sourceSegments),
	})
	translated, err := p.translateSegments(ctx, sourceSegments, sourceLang, effectiveTarget, emit)
	if err != nil {
		return res, err
	}

	originalPath := filepath.Join(p.cfg.Paths.TranscriptDir, BuildSRTName(base, sourceTag, "", false))
	if err := subtitle.WriteFile(sourceSegments, originalPath); err != nil {
		return res, services.Wrap(services.ErrTransient, "save", "", "write original subtitles", err)
	}

	targetTag := langTag(effectiveTarget)
	translatedPath := filepath.Join(p.cfg.Paths.TranscriptDir, BuildSRTName(base, sourceTag, targetTag, false))
	if err := subtitle.WriteFile(translated, translatedPath); err != nil {
		return res, services.Wrap(services.ErrTransient, "save", "", "write translated subtitles", err)
	}

	emit(progressEvent("Generating dual-language subtitles...", "save"))
	dualPath := filepath.Join(p.cfg.Paths.TranscriptDir, BuildSRTName(base, sourceTag, targetTag, true))
	if err := subtitle.WriteDualFile(sourceSegments, translated, dualPath); err != nil {
		return res, err
	}

	res.outputs = map[string]string{
		"original":   originalPath,
		"translated": translatedPath,
		"dual":       dualPath,
	}
	emit(progressEvent("Processing finished successfully.", ""))
	return res, nil
}

// resolvePrompt expands the user prompt through the AI provider when enabled
// and enforces the length cap either way.
func (p *Pipeline) resolvePrompt(ctx context.Context, req Request, videoName string, emit func(Event)) string {
	prompt := strings.TrimSpace(req.Prompt)
	if p.deps.Expander != nil && p.deps.Expander.Enabled() && p.cfg.AI.EnableExpansion {
		emit(progressEvent("Step 2/4: Expanding prompt using AI...", "transcribe"))
		expanded := p.deps.Expander.ExpandPrompt(ctx, videoName, prompt, p.deps.Glossary)
		if expanded != "" && expanded != prompt {
			emit(progressEvent(fmt.Sprintf("AI expanded prompt: %s...", truncateRunes(expanded, 100)), "transcribe"))
			prompt = expanded
		}
	}
	return truncateRunes(prompt, maxPromptLength)
}

func (p *Pipeline) convertScript(ctx context.Context, segments []subtitle.Segment, text, sourceNorm string, emit func(Event)) ([]subtitle.Segment, string) {
	mode := opencc.ModeForSource(sourceNorm)
	if mode == "" || p.deps.Converter == nil {
		return segments, text
	}
	label := "Simplified Chinese (OpenCC t2s)"
	if mode == opencc.ModeToTraditional {
		label = "Traditional Chinese (OpenCC s2t)"
	}
	if !p.deps.Converter.Available() {
		emit(progressEvent(fmt.Sprintf("opencc not installed. Skipping %s conversion.", label), "transcribe"))
		return segments, text
	}
	converted, err := p.deps.Converter.ConvertSegments(ctx, segments, mode)
	if err != nil {
		emit(progressEvent(fmt.Sprintf("Script conversion failed: %s. Keeping transcription as-is.", services.Message(err)), "transcribe"))
		return segments, text
	}
	if newText, err := p.deps.Converter.Convert(ctx, text, mode); err == nil {
		text = newText
	}
	emit(progressEvent(fmt.Sprintf("Converted transcription to %s.", label), "transcribe"))
	return converted, text
}

func (p *Pipeline) translateSegments(ctx context.Context, segments []subtitle.Segment, source, target string, emit func(Event)) ([]subtitle.Segment, error) {
	translated := p.deps.Translator.TranslateSegments(ctx, segments, source, target, func(current, total int) {
		emit(Event{
			Type:    EventProgress,
			Message: fmt.Sprintf("Translating segments %d/%d...", current, total),
			Stage:   "translate",
			Current: current,
			Total:   total,
		})
	})
	if len(translated) != len(segments) {
		return nil, services.Wrap(services.ErrValidation, "translate", "",
			fmt.Sprintf("segment count changed during translation: %d != %d", len(translated), len(segments)), nil)
	}
	return translated, nil
}

func progressEvent(message, stage string) Event {
	return Event{Type: EventProgress, Message: message, Stage: stage}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
