package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultGoogleBaseURL = "https://translate.googleapis.com/translate_a/single"
	defaultGoogleTimeout = 15 * time.Second
)

// GoogleEngine is the baseline translator backed by the public gtx endpoint.
// It needs no API key, which makes it the always-available fallback.
type GoogleEngine struct {
	baseURL    string
	httpClient *http.Client
}

// GoogleOption customizes the baseline engine.
type GoogleOption func(*GoogleEngine)

// WithGoogleBaseURL overrides the endpoint (useful for tests/mocks).
func WithGoogleBaseURL(base string) GoogleOption {
	return func(e *GoogleEngine) {
		base = strings.TrimSpace(base)
		if base != "" {
			e.baseURL = base
		}
	}
}

// WithGoogleHTTPClient overrides the default HTTP client.
func WithGoogleHTTPClient(client *http.Client) GoogleOption {
	return func(e *GoogleEngine) {
		if client != nil {
			e.httpClient = client
		}
	}
}

// NewGoogleEngine constructs the baseline engine.
func NewGoogleEngine(opts ...GoogleOption) *GoogleEngine {
	engine := &GoogleEngine{
		baseURL:    defaultGoogleBaseURL,
		httpClient: &http.Client{Timeout: defaultGoogleTimeout},
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Name implements Engine.
func (e *GoogleEngine) Name() string { return "google" }

// Translate implements Engine. The gtx backend has no en-GB variant, so
// British English targets downgrade to plain "en".
func (e *GoogleEngine) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	target = downgradeTarget(target)
	if target == "" {
		return "", errors.New("google translate: target language required")
	}
	if source == "" {
		source = "auto"
	}

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", source)
	query.Set("tl", target)
	query.Set("dt", "t")
	query.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("google translate: request: %w", err)
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("google translate: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("google translate: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("google translate: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return decodeGTXResponse(body)
}

// decodeGTXResponse extracts the translated text from the positional array
// payload: [[["translated","original",...],...],...].
func decodeGTXResponse(body []byte) (string, error) {
	var outer []json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil {
		return "", fmt.Errorf("google translate: decode response: %w", err)
	}
	if len(outer) == 0 {
		return "", errors.New("google translate: empty response")
	}
	var chunks []json.RawMessage
	if err := json.Unmarshal(outer[0], &chunks); err != nil {
		return "", fmt.Errorf("google translate: decode chunks: %w", err)
	}

	var b strings.Builder
	for _, chunk := range chunks {
		var fields []json.RawMessage
		if err := json.Unmarshal(chunk, &fields); err != nil || len(fields) == 0 {
			continue
		}
		var piece string
		if err := json.Unmarshal(fields[0], &piece); err != nil {
			continue
		}
		b.WriteString(piece)
	}
	translated := strings.TrimSpace(b.String())
	if translated == "" {
		return "", errors.New("google translate: empty translation")
	}
	return translated, nil
}

// downgradeTarget maps British English variants onto the plain code the
// backend accepts.
func downgradeTarget(target string) string {
	switch strings.TrimSpace(target) {
	case "en-GB", "en-UK":
		return "en"
	default:
		return strings.TrimSpace(target)
	}
}
