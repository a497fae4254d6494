package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"subweave/internal/logging"
	"subweave/internal/services"
	"subweave/internal/subtitle"
)

// Config holds transcription settings.
type Config struct {
	Binary string
	Model  string
	// TimeoutSeconds bounds one whisper invocation. Zero disables the
	// deadline.
	TimeoutSeconds int
}

// Service provides transcription via the whisper CLI.
type Service struct {
	cfg           Config
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a whisper service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if cfg.Binary == "" {
		cfg.Binary = "whisper"
	}
	if cfg.Model == "" {
		cfg.Model = "base"
	}
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "whisper"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging and run records.
func (s *Service) Model() string {
	return s.cfg.Model
}

// Result contains the outcome of a transcription.
type Result struct {
	// Text is the full transcript, segment texts joined with spaces.
	Text string
	// Segments carry per-cue timing and text, indexed from zero.
	Segments []subtitle.Segment
	// Language is the code whisper detected (or was told to use).
	Language string
}

// Transcribe runs whisper on an audio file. language may be empty for
// auto-detect; prompt biases the model toward domain vocabulary.
func (s *Service) Transcribe(ctx context.Context, audioPath, outputDir, language, prompt string) (Result, error) {
	var result Result

	if audioPath == "" {
		return result, services.Wrap(services.ErrValidation, "transcribe", "whisper", "audio path required", nil)
	}
	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return result, services.Wrap(services.ErrTransient, "transcribe", "whisper", "ensure output dir", err)
	}

	if s.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	args := s.buildArgs(audioPath, outputDir, language, prompt)
	s.logger.Debug("running whisper",
		logging.String("audio", audioPath),
		logging.String("model", s.cfg.Model),
		logging.String("language", language))
	if err := s.run(ctx, s.cfg.Binary, args...); err != nil {
		return result, services.Wrap(services.ErrExternalTool, "transcribe", "whisper", "transcription failed", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	payload, err := loadPayload(jsonPath)
	if err != nil {
		return result, services.Wrap(services.ErrExternalTool, "transcribe", "whisper", "read transcription output", err)
	}

	return payloadToResult(payload), nil
}

func (s *Service) buildArgs(audioPath, outputDir, language, prompt string) []string {
	args := []string{
		audioPath,
		"--model", s.cfg.Model,
		"--output_format", "json",
		"--output_dir", outputDir,
	}
	if language != "" && language != "auto" {
		args = append(args, "--language", language)
	}
	if prompt != "" {
		args = append(args, "--initial_prompt", prompt)
	}
	return args
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

type payloadSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type payload struct {
	Text     string           `json:"text"`
	Language string           `json:"language"`
	Segments []payloadSegment `json:"segments"`
}

func loadPayload(jsonPath string) (payload, error) {
	var p payload
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse whisper json: %w", err)
	}
	return p, nil
}

func payloadToResult(p payload) Result {
	result := Result{Language: strings.TrimSpace(p.Language)}

	segments := make([]subtitle.Segment, 0, len(p.Segments))
	texts := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		text := strings.TrimSpace(seg.Text)
		segments = append(segments, subtitle.Segment{
			Index: len(segments),
			Start: seg.Start,
			End:   seg.End,
			Text:  text,
			Lines: []string{text},
		})
		if text != "" {
			texts = append(texts, text)
		}
	}
	result.Segments = segments

	if text := strings.TrimSpace(p.Text); text != "" {
		result.Text = text
	} else {
		result.Text = strings.Join(texts, " ")
	}
	return result
}
