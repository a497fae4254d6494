package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"subweave/internal/logging"
	"subweave/internal/services"
)

// completer abstracts a provider capable of single-shot chat completion.
type completer interface {
	Complete(ctx context.Context, model, system, user string, temperature float64, maxTokens int) (string, error)
}

// Config holds provider connection settings.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	// BaseURL overrides the OpenAI-compatible endpoint. Ignored for Gemini.
	BaseURL string
	// TimeoutSeconds bounds every provider request. Zero keeps the client
	// default.
	TimeoutSeconds int
}

// Service dispatches translation, prompt expansion, and key verification to
// the configured provider.
type Service struct {
	provider string
	model    string
	apiKey   string
	logger   *slog.Logger
	client   completer
}

// Option customizes the service.
type Option func(*Service)

// WithCompleter injects a provider client (for testing).
func WithCompleter(client completer) Option {
	return func(s *Service) {
		if client != nil {
			s.client = client
		}
	}
}

// NewService builds a service for the configured provider. The returned
// service is usable even without an API key; operations then report that AI
// is unavailable and callers fall back.
func NewService(cfg Config, logger *slog.Logger, opts ...Option) *Service {
	provider := NormalizeProvider(cfg.Provider)
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel(provider)
	}
	svc := &Service{
		provider: provider,
		model:    model,
		apiKey:   strings.TrimSpace(cfg.APIKey),
		logger:   logging.NewComponentLogger(logger, "ai"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.client == nil {
		var httpClient *http.Client
		if cfg.TimeoutSeconds > 0 {
			httpClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
		}
		switch provider {
		case ProviderGemini:
			svc.client = newGeminiClient(svc.apiKey, httpClient)
		default:
			svc.client = newOpenAIClient(svc.apiKey, withBaseURL(cfg.BaseURL), withHTTPClient(httpClient))
		}
	}
	return svc
}

// Enabled reports whether an API key is configured.
func (s *Service) Enabled() bool {
	return s.apiKey != ""
}

// Provider returns the normalized provider name.
func (s *Service) Provider() string {
	return s.provider
}

// Model returns the active model name.
func (s *Service) Model() string {
	return s.model
}

// TranslateText translates a single block of text into targetLang, injecting
// the glossary as preferred renderings. Errors leave the fallback decision to
// the caller.
func (s *Service) TranslateText(ctx context.Context, text, targetLang string, glossary map[string]string) (string, error) {
	if !s.Enabled() {
		return "", services.Wrap(services.ErrConfiguration, "translate", "ai", "no api key configured", nil)
	}
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	prompt := buildTranslationPrompt(text, targetLang, glossary)
	content, err := s.client.Complete(ctx, s.model, translationSystemPrompt, prompt, 0.2, 2048)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "translate", "ai", "translation request failed", err)
	}
	return strings.TrimSpace(content), nil
}

// ExpandPrompt turns a filename plus optional user context into a keyword bag
// that biases whisper toward domain vocabulary. Any failure falls back to the
// raw user prompt.
func (s *Service) ExpandPrompt(ctx context.Context, filename, userPrompt string, glossary map[string]string) string {
	if !s.Enabled() {
		return userPrompt
	}
	prompt := buildExpansionPrompt(filename, userPrompt, glossary)
	content, err := s.client.Complete(ctx, s.model, expansionSystemPrompt, prompt, 0.2, 300)
	if err != nil {
		s.logger.Warn("prompt expansion failed, using raw prompt",
			logging.String("provider", s.provider),
			logging.Error(err))
		return userPrompt
	}
	keywords := SanitizeKeywords(content, 80)
	if keywords == "" {
		return userPrompt
	}
	if userPrompt != "" {
		return fmt.Sprintf("%s\nKeywords: %s", userPrompt, keywords)
	}
	return "Keywords: " + keywords
}

// VerifyKey makes a minimal request to check the configured API key. It
// returns ok plus a human-readable status message.
func (s *Service) VerifyKey(ctx context.Context) (bool, string) {
	if !s.Enabled() {
		return false, "API key is empty."
	}
	model := verifyModel(s.provider)
	if model == "" {
		return false, fmt.Sprintf("Unknown provider %q.", s.provider)
	}
	content, err := s.client.Complete(ctx, model, "", "Hi", 0.7, 5)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "API_KEY_INVALID") || strings.Contains(msg, "invalid_api_key") || strings.Contains(msg, "401") {
			return false, "Invalid API key."
		}
		if len(msg) > 100 {
			msg = msg[:100] + "..."
		}
		return false, "Connection failed: " + msg
	}
	if content == "" {
		return false, "No response from provider."
	}
	return true, "Success"
}
