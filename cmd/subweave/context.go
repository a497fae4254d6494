package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"subweave/internal/ai"
	"subweave/internal/config"
	"subweave/internal/glossary"
	"subweave/internal/logging"
	"subweave/internal/media"
	"subweave/internal/pipeline"
	"subweave/internal/runlog"
	"subweave/internal/services/opencc"
	"subweave/internal/services/whisper"
	"subweave/internal/translate"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// ensureLogger builds the process logger from the loaded config. Machine
// output mode silences it so stdout stays pure NDJSON.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil || c.jsonOutput() {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// pipelineOptions tweak assembly per command invocation.
type pipelineOptions struct {
	// whisperModel overrides the configured model when non-empty.
	whisperModel string
	// glossaryFile is an extra glossary loaded for this run only.
	glossaryFile string
	// inferName feeds filename-based glossary inference.
	inferName string
	// withRunLog controls whether the run is recorded.
	withRunLog bool
}

// buildPipeline wires the full stage chain from configuration. An invalid
// model override is rejected here, before any job or run record exists.
func (c *commandContext) buildPipeline(opts pipelineOptions) (*pipeline.Pipeline, *runlog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	if opts.whisperModel != "" && !config.IsAllowedWhisperModel(opts.whisperModel) {
		return nil, nil, fmt.Errorf("whisper model %q is not supported (%s)",
			opts.whisperModel, config.AllowedWhisperModels())
	}
	logger := c.ensureLogger()

	gloss, err := c.loadGlossary(opts.glossaryFile, opts.inferName)
	if err != nil {
		return nil, nil, err
	}

	model := cfg.Whisper.Model
	if opts.whisperModel != "" {
		model = opts.whisperModel
	}
	transcriber := whisper.NewService(whisper.Config{
		Binary:         cfg.Whisper.Binary,
		Model:          model,
		TimeoutSeconds: cfg.Whisper.TimeoutSeconds,
	}, logger)

	aiService := ai.NewService(ai.Config{
		Provider:       cfg.AI.Provider,
		Model:          cfg.AI.Model,
		APIKey:         cfg.AI.APIKey,
		BaseURL:        cfg.AI.BaseURL,
		TimeoutSeconds: cfg.AI.TimeoutSeconds,
	}, logger)

	var engines []translate.Engine
	if aiService.Enabled() {
		engines = append(engines, translate.NewAIEngine(aiService, gloss))
	}
	googleOpts := []translate.GoogleOption{}
	if cfg.Translate.BaseURL != "" {
		googleOpts = append(googleOpts, translate.WithGoogleBaseURL(cfg.Translate.BaseURL))
	}
	if cfg.Translate.TimeoutSeconds > 0 {
		googleOpts = append(googleOpts, translate.WithGoogleHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Translate.TimeoutSeconds) * time.Second,
		}))
	}
	engines = append(engines, translate.NewGoogleEngine(googleOpts...))

	var runs *runlog.Store
	if opts.withRunLog {
		runs, err = runlog.Open(cfg.Paths.RunLogPath)
		if err != nil {
			return nil, nil, err
		}
	}

	p := pipeline.New(cfg, logger, pipeline.Deps{
		Extractor:   media.NewExtractor(cfg.FFmpegBinary(), logger),
		Transcriber: transcriber,
		Converter:   opencc.NewConverter(cfg.OpenCCBinary(), logger),
		Expander:    aiService,
		Translator:  translate.New(gloss, logger, engines...),
		Glossary:    gloss,
		Runs:        runs,
	})
	return p, runs, nil
}

// loadGlossary merges, lowest precedence first: filename inference, the
// persistent store, and an explicit per-run file.
func (c *commandContext) loadGlossary(extraFile, inferName string) (glossary.Glossary, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	parts := []glossary.Glossary{}
	if inferName != "" {
		parts = append(parts, glossary.InferFromFilename(inferName))
	}

	stored, err := glossary.NewStore(cfg.Paths.GlossaryPath).Load()
	if err != nil {
		return nil, err
	}
	parts = append(parts, stored)

	if extraFile != "" {
		extra, err := glossary.ParseFile(extraFile)
		if err != nil {
			return nil, err
		}
		parts = append(parts, extra)
	}
	return glossary.Merge(parts...), nil
}

func (c *commandContext) glossaryStore() (*glossary.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return glossary.NewStore(cfg.Paths.GlossaryPath), nil
}

func (c *commandContext) aiService() (*ai.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return ai.NewService(ai.Config{
		Provider:       cfg.AI.Provider,
		Model:          cfg.AI.Model,
		APIKey:         cfg.AI.APIKey,
		BaseURL:        cfg.AI.BaseURL,
		TimeoutSeconds: cfg.AI.TimeoutSeconds,
	}, c.ensureLogger()), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
