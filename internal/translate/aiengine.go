package translate

import (
	"context"

	"subweave/internal/ai"
)

// AIEngine adapts the AI service to the Engine interface. The glossary is
// injected into the model prompt so preferred renderings influence the
// translation itself, not only the post-pass.
type AIEngine struct {
	service  *ai.Service
	glossary map[string]string
}

// NewAIEngine wraps an AI service as a translation engine.
func NewAIEngine(service *ai.Service, glossary map[string]string) *AIEngine {
	return &AIEngine{service: service, glossary: glossary}
}

// Name implements Engine.
func (e *AIEngine) Name() string { return "ai" }

// Translate implements Engine.
func (e *AIEngine) Translate(ctx context.Context, text, _ string, target string) (string, error) {
	return e.service.TranslateText(ctx, text, target, e.glossary)
}
