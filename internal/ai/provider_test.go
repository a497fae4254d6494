package ai

import "testing"

func TestNormalizeProvider(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gpt", "gpt"},
		{"OpenAI", "gpt"},
		{"chatgpt", "gpt"},
		{"gpt-5", "gpt"},
		{"gemini", "gemini"},
		{"Google", "gemini"},
		{"google-gemini", "gemini"},
		{"  GPT ", "gpt"},
		{"mystery", "mystery"},
	}
	for _, tc := range tests {
		if got := NormalizeProvider(tc.in); got != tc.want {
			t.Errorf("NormalizeProvider(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDefaultModel(t *testing.T) {
	if got := DefaultModel("google"); got != "gemini-3-flash" {
		t.Errorf("gemini default = %q", got)
	}
	if got := DefaultModel("openai"); got != "gpt-5-mini" {
		t.Errorf("gpt default = %q", got)
	}
	if got := DefaultModel("other"); got != "" {
		t.Errorf("unknown default = %q", got)
	}
}

func TestSanitizeKeywords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"basic", "Kubernetes, Docker, etcd", 40, "Kubernetes, Docker, etcd"},
		{"markdown and quotes", `**Kubernetes**, "Docker", 'etcd'`, 40, "Kubernetes, Docker, etcd"},
		{"dedupe case-insensitive", "GPU, gpu, CUDA", 40, "GPU, CUDA"},
		{"newlines and semicolons", "alpha\nbeta; gamma", 40, "alpha, beta, gamma"},
		{"fullwidth comma", "甲，乙", 40, "甲, 乙"},
		{"cap", "a1, b2, c3, d4", 2, "a1, b2"},
		{"empty", "   ", 40, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeKeywords(tc.in, tc.max); got != tc.want {
				t.Errorf("SanitizeKeywords(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestShouldSendTemperature(t *testing.T) {
	client := newOpenAIClient("key")

	if client.shouldSendTemperature("gpt-5-mini") {
		t.Error("gpt-5 family should not receive temperature")
	}
	if !client.shouldSendTemperature("gpt-5.2-pro") {
		t.Error("gpt-5.2 should receive temperature")
	}
	if !client.shouldSendTemperature("gpt-4o-mini") {
		t.Error("gpt-4o should receive temperature")
	}

	client.rememberTemperatureRejection("gpt-4o-mini")
	if client.shouldSendTemperature("gpt-4o-mini") {
		t.Error("rejected model should stay cached")
	}
}
