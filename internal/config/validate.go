package config

import (
	"errors"
	"fmt"
)

var allowedWhisperModels = map[string]struct{}{
	"tiny":     {},
	"base":     {},
	"small":    {},
	"medium":   {},
	"large":    {},
	"large-v2": {},
	"large-v3": {},
}

var allowedAIProviders = map[string]struct{}{
	"gpt":     {},
	"openai":  {},
	"chatgpt": {},
	"gemini":  {},
	"google":  {},
}

// IsAllowedWhisperModel reports whether model is in the supported set. Used
// both for config validation and for per-run model overrides, which must be
// rejected before a job starts.
func IsAllowedWhisperModel(model string) bool {
	_, ok := allowedWhisperModels[model]
	return ok
}

// AllowedWhisperModels returns the supported model names for error messages.
func AllowedWhisperModels() string {
	return "tiny, base, small, medium, large, large-v2, large-v3"
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateTranslate(); err != nil {
		return err
	}
	if err := c.validateAI(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWhisper() error {
	if !IsAllowedWhisperModel(c.Whisper.Model) {
		return fmt.Errorf("whisper.model %q is not supported (%s)", c.Whisper.Model, AllowedWhisperModels())
	}
	if c.Whisper.TimeoutSeconds <= 0 {
		return errors.New("whisper.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateTranslate() error {
	if c.Translate.BaseURL == "" {
		return errors.New("translate.base_url must be set")
	}
	if c.Translate.TimeoutSeconds <= 0 {
		return errors.New("translate.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateAI() error {
	if _, ok := allowedAIProviders[c.AI.Provider]; !ok {
		return fmt.Errorf("ai.provider %q is not supported (gpt, openai, chatgpt, gemini, google)", c.AI.Provider)
	}
	if c.AI.TimeoutSeconds <= 0 {
		return errors.New("ai.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported (debug, info, warn, error)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (console, json)", c.Logging.Format)
	}
	return nil
}
