package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"subweave/internal/logging"
)

type fakeCompleter struct {
	content string
	err     error
	system  string
	user    string
	model   string
}

func (f *fakeCompleter) Complete(_ context.Context, model, system, user string, _ float64, _ int) (string, error) {
	f.model = model
	f.system = system
	f.user = user
	return f.content, f.err
}

func TestTranslateTextInjectsGlossary(t *testing.T) {
	fake := &fakeCompleter{content: "Bonjour"}
	svc := NewService(Config{Provider: "gpt", APIKey: "key"}, logging.NewNop(), WithCompleter(fake))

	got, err := svc.TranslateText(context.Background(), "Hello", "fr", map[string]string{"cat": "chat"})
	if err != nil {
		t.Fatalf("TranslateText: %v", err)
	}
	if got != "Bonjour" {
		t.Errorf("translation = %q", got)
	}
	if !strings.Contains(fake.user, "Target language: fr") {
		t.Errorf("prompt missing target language: %q", fake.user)
	}
	if !strings.Contains(fake.user, "cat = chat") {
		t.Errorf("prompt missing glossary: %q", fake.user)
	}
	if !strings.Contains(fake.system, "British spelling") {
		t.Errorf("unexpected system prompt: %q", fake.system)
	}
	if fake.model != "gpt-5-mini" {
		t.Errorf("model = %q", fake.model)
	}
}

func TestTranslateTextWithoutKey(t *testing.T) {
	svc := NewService(Config{Provider: "gpt"}, logging.NewNop())
	if svc.Enabled() {
		t.Fatal("service should be disabled without key")
	}
	if _, err := svc.TranslateText(context.Background(), "Hello", "fr", nil); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestExpandPromptFallsBackOnError(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("quota")}
	svc := NewService(Config{Provider: "gemini", APIKey: "key"}, logging.NewNop(), WithCompleter(fake))

	got := svc.ExpandPrompt(context.Background(), "talk.mp4", "conference talk", nil)
	if got != "conference talk" {
		t.Errorf("fallback prompt = %q", got)
	}
}

func TestExpandPromptFormatsKeywords(t *testing.T) {
	fake := &fakeCompleter{content: "Kubernetes, **Docker**, etcd"}
	svc := NewService(Config{Provider: "gemini", APIKey: "key"}, logging.NewNop(), WithCompleter(fake))

	got := svc.ExpandPrompt(context.Background(), "kubecon.mp4", "keynote", map[string]string{"etcd": "etcd"})
	if got != "keynote\nKeywords: Kubernetes, Docker, etcd" {
		t.Errorf("expanded prompt = %q", got)
	}
	if !strings.Contains(fake.user, "kubecon.mp4") {
		t.Errorf("prompt missing filename: %q", fake.user)
	}
	if !strings.Contains(fake.user, "etcd") {
		t.Errorf("prompt missing glossary term: %q", fake.user)
	}

	got = svc.ExpandPrompt(context.Background(), "kubecon.mp4", "", nil)
	if got != "Keywords: Kubernetes, Docker, etcd" {
		t.Errorf("expanded prompt without user context = %q", got)
	}
}

func TestVerifyKey(t *testing.T) {
	ok, msg := NewService(Config{Provider: "gpt"}, logging.NewNop()).VerifyKey(context.Background())
	if ok || msg != "API key is empty." {
		t.Errorf("empty key: ok=%v msg=%q", ok, msg)
	}

	fake := &fakeCompleter{content: "Hello"}
	svc := NewService(Config{Provider: "gpt", APIKey: "key"}, logging.NewNop(), WithCompleter(fake))
	ok, msg = svc.VerifyKey(context.Background())
	if !ok || msg != "Success" {
		t.Errorf("valid key: ok=%v msg=%q", ok, msg)
	}
	if fake.model != "gpt-4o-mini" {
		t.Errorf("verify model = %q", fake.model)
	}

	fake.err = errors.New("http 401: invalid_api_key")
	fake.content = ""
	ok, msg = svc.VerifyKey(context.Background())
	if ok || msg != "Invalid API key." {
		t.Errorf("invalid key: ok=%v msg=%q", ok, msg)
	}
}

func TestNewServiceAppliesRequestTimeout(t *testing.T) {
	svc := NewService(Config{Provider: "gpt", APIKey: "key", TimeoutSeconds: 5}, logging.NewNop())
	openai, ok := svc.client.(*openAIClient)
	if !ok {
		t.Fatalf("client = %T", svc.client)
	}
	if openai.httpClient.Timeout != 5*time.Second {
		t.Errorf("openai timeout = %v", openai.httpClient.Timeout)
	}

	svc = NewService(Config{Provider: "gpt", APIKey: "key"}, logging.NewNop())
	openai = svc.client.(*openAIClient)
	if openai.httpClient.Timeout != defaultHTTPTimeout {
		t.Errorf("default openai timeout = %v", openai.httpClient.Timeout)
	}

	svc = NewService(Config{Provider: "gemini", APIKey: "key", TimeoutSeconds: 7}, logging.NewNop())
	gemini, ok := svc.client.(*geminiClient)
	if !ok {
		t.Fatalf("client = %T", svc.client)
	}
	if gemini.httpClient == nil || gemini.httpClient.Timeout != 7*time.Second {
		t.Errorf("gemini http client = %+v", gemini.httpClient)
	}
}

func TestOpenAIClientRetriesWithoutTemperature(t *testing.T) {
	var requests []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		requests = append(requests, body)

		if _, hasTemp := body["temperature"]; hasTemp {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "temperature is unsupported with this model"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	client := newOpenAIClient("key", withBaseURL(server.URL))
	content, err := client.Complete(context.Background(), "gpt-4o-mini", "system", "user", 0.2, 16)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != "ok" {
		t.Errorf("content = %q", content)
	}
	if len(requests) != 2 {
		t.Fatalf("expected retry, got %d requests", len(requests))
	}
	if _, hasTemp := requests[1]["temperature"]; hasTemp {
		t.Error("retry should drop temperature")
	}

	// Second call must skip temperature from the start.
	requests = nil
	if _, err := client.Complete(context.Background(), "gpt-4o-mini", "system", "user", 0.2, 16); err != nil {
		t.Fatalf("Complete after cache: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("expected single request after cache, got %d", len(requests))
	}
}
