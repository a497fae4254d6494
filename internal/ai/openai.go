package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultHTTPTimeout   = 60 * time.Second
)

// openAIClient wraps an OpenAI-compatible chat completion endpoint.
type openAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	// Models that rejected the temperature parameter; requests to these
	// skip temperature instead of failing again.
	mu                  sync.Mutex
	noTemperatureModels map[string]struct{}
}

// openAIOption customizes the OpenAI-compatible client.
type openAIOption func(*openAIClient)

// withHTTPClient overrides the default HTTP client.
func withHTTPClient(client *http.Client) openAIOption {
	return func(c *openAIClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// withBaseURL overrides the default API base (useful for tests/mocks and
// OpenAI-compatible gateways).
func withBaseURL(base string) openAIOption {
	return func(c *openAIClient) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

func newOpenAIClient(apiKey string, opts ...openAIOption) *openAIClient {
	client := &openAIClient{
		apiKey:              strings.TrimSpace(apiKey),
		baseURL:             defaultOpenAIBaseURL,
		httpClient:          &http.Client{Timeout: defaultHTTPTimeout},
		noTemperatureModels: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = defaultOpenAIBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	Temperature         *float64      `json:"temperature,omitempty"`
	MaxCompletionTokens int           `json:"max_completion_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// shouldSendTemperature applies the GPT-5 family compatibility rule: base
// GPT-5 models reject the temperature parameter, GPT-5.2 accepts it only
// without reasoning effort, and anything previously rejected stays cached.
func (c *openAIClient) shouldSendTemperature(model string) bool {
	model = strings.TrimSpace(model)

	c.mu.Lock()
	_, rejected := c.noTemperatureModels[model]
	c.mu.Unlock()
	if rejected {
		return false
	}

	if strings.HasPrefix(model, "gpt-5") && !strings.HasPrefix(model, "gpt-5.2") {
		return false
	}
	return true
}

func (c *openAIClient) rememberTemperatureRejection(model string) {
	c.mu.Lock()
	c.noTemperatureModels[strings.TrimSpace(model)] = struct{}{}
	c.mu.Unlock()
}

func isTemperatureUnsupportedError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "temperature") &&
		(strings.Contains(msg, "unsupported") || strings.Contains(msg, "only the default"))
}

// Complete sends a chat completion request, retrying once without
// temperature when the model rejects it.
func (c *openAIClient) Complete(ctx context.Context, model, system, user string, temperature float64, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("openai chat: api key required")
	}
	messages := make([]chatMessage, 0, 2)
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: user})

	request := chatRequest{
		Model:               model,
		Messages:            messages,
		MaxCompletionTokens: maxTokens,
	}
	if c.shouldSendTemperature(model) {
		request.Temperature = &temperature
	}

	content, err := c.send(ctx, request)
	if err != nil && request.Temperature != nil && isTemperatureUnsupportedError(err) {
		c.rememberTemperatureRejection(model)
		request.Temperature = nil
		content, err = c.send(ctx, request)
	}
	return content, err
}

func (c *openAIClient) send(ctx context.Context, request chatRequest) (string, error) {
	endpoint, err := url.JoinPath(c.baseURL, "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai chat: build url: %w", err)
	}
	encoded, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("openai chat: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("openai chat: request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai chat: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai chat: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("openai chat: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("openai chat: decode response: %w", err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("openai chat: api error: %s", strings.TrimSpace(completion.Error.Message))
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("openai chat: empty choices")
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("openai chat: empty content")
	}
	return content, nil
}
