package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// geminiClient wraps the Gemini API for single-shot generation calls.
type geminiClient struct {
	apiKey     string
	httpClient *http.Client
}

func newGeminiClient(apiKey string, httpClient *http.Client) *geminiClient {
	return &geminiClient{
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
	}
}

// Complete sends one generation request with an optional system instruction.
func (g *geminiClient) Complete(ctx context.Context, model, system, user string, temperature float64, maxTokens int) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("gemini: api key required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     g.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
	})
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temperature)),
		MaxOutputTokens: int32(maxTokens),
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	content := strings.TrimSpace(text.String())
	if content == "" {
		return "", errors.New("gemini: empty content")
	}
	return content, nil
}
