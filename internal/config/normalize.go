package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWhisper()
	c.normalizeTranslate()
	c.normalizeAI()
	if err := c.normalizeWorkflow(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.VideoDir) == "" {
		c.Paths.VideoDir = defaultVideoDir
	}
	if c.Paths.VideoDir, err = expandPath(c.Paths.VideoDir); err != nil {
		return fmt.Errorf("paths.video_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.AudioDir) == "" {
		c.Paths.AudioDir = defaultAudioDir
	}
	if c.Paths.AudioDir, err = expandPath(c.Paths.AudioDir); err != nil {
		return fmt.Errorf("paths.audio_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TranscriptDir) == "" {
		c.Paths.TranscriptDir = defaultTranscriptDir
	}
	if c.Paths.TranscriptDir, err = expandPath(c.Paths.TranscriptDir); err != nil {
		return fmt.Errorf("paths.transcript_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.GlossaryPath) == "" {
		c.Paths.GlossaryPath = defaultGlossaryPath
	}
	if c.Paths.GlossaryPath, err = expandPath(c.Paths.GlossaryPath); err != nil {
		return fmt.Errorf("paths.glossary_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.RunLogPath) == "" {
		c.Paths.RunLogPath = defaultRunLogPath
	}
	if c.Paths.RunLogPath, err = expandPath(c.Paths.RunLogPath); err != nil {
		return fmt.Errorf("paths.run_log_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeWhisper() {
	c.Whisper.Binary = strings.TrimSpace(c.Whisper.Binary)
	if c.Whisper.Binary == "" {
		c.Whisper.Binary = defaultWhisperBinary
	}
	c.Whisper.Model = strings.ToLower(strings.TrimSpace(c.Whisper.Model))
	if c.Whisper.Model == "" {
		if value, ok := os.LookupEnv("WHISPER_MODEL"); ok {
			c.Whisper.Model = strings.ToLower(strings.TrimSpace(value))
		}
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = defaultWhisperModel
	}
	if c.Whisper.TimeoutSeconds <= 0 {
		c.Whisper.TimeoutSeconds = defaultWhisperTimeout
	}
}

func (c *Config) normalizeTranslate() {
	c.Translate.BaseURL = strings.TrimSpace(c.Translate.BaseURL)
	if c.Translate.BaseURL == "" {
		c.Translate.BaseURL = defaultTranslateBaseURL
	}
	if c.Translate.TimeoutSeconds <= 0 {
		c.Translate.TimeoutSeconds = defaultTranslateTimeout
	}
}

func (c *Config) normalizeAI() {
	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	if c.AI.Provider == "" {
		c.AI.Provider = defaultAIProvider
	}
	c.AI.Model = strings.TrimSpace(c.AI.Model)
	c.AI.BaseURL = strings.TrimSpace(c.AI.BaseURL)
	c.AI.APIKey = strings.TrimSpace(c.AI.APIKey)
	if c.AI.APIKey == "" {
		for _, env := range []string{"SUBWEAVE_AI_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY"} {
			if value, ok := os.LookupEnv(env); ok && strings.TrimSpace(value) != "" {
				c.AI.APIKey = strings.TrimSpace(value)
				break
			}
		}
	}
	if c.AI.TimeoutSeconds <= 0 {
		c.AI.TimeoutSeconds = defaultAITimeoutSeconds
	}
}

func (c *Config) normalizeWorkflow() error {
	if !c.Workflow.CleanupAfterProcess {
		switch strings.ToLower(strings.TrimSpace(os.Getenv("CLEANUP_AFTER_PROCESS"))) {
		case "1", "true", "yes":
			c.Workflow.CleanupAfterProcess = true
		}
	}
	if strings.TrimSpace(c.Workflow.WatchDir) != "" {
		expanded, err := expandPath(c.Workflow.WatchDir)
		if err != nil {
			return fmt.Errorf("workflow.watch_dir: %w", err)
		}
		c.Workflow.WatchDir = expanded
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
