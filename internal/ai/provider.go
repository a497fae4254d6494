package ai

import "strings"

// Provider families.
const (
	ProviderGPT    = "gpt"
	ProviderGemini = "gemini"
)

// NormalizeProvider maps provider aliases onto their canonical family name.
// Unknown values pass through lowercased so errors name what the user typed.
func NormalizeProvider(provider string) string {
	p := strings.ToLower(strings.TrimSpace(provider))
	switch p {
	case "gpt", "openai", "chatgpt", "gpt-4", "gpt-5":
		return ProviderGPT
	case "gemini", "google", "google-gemini":
		return ProviderGemini
	default:
		return p
	}
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch NormalizeProvider(provider) {
	case ProviderGemini:
		return "gemini-3-flash"
	case ProviderGPT:
		return "gpt-5-mini"
	default:
		return ""
	}
}

// verifyModel returns the cheap model used for key verification.
func verifyModel(provider string) string {
	switch NormalizeProvider(provider) {
	case ProviderGemini:
		return "gemini-1.5-flash"
	case ProviderGPT:
		return "gpt-4o-mini"
	default:
		return ""
	}
}
