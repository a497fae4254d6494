// Package ai talks to LLM providers for subtitle translation, transcription
// prompt expansion, and API key verification. Two provider families are
// supported: OpenAI-compatible chat completion endpoints and Google Gemini.
// Every operation degrades gracefully: callers fall back to the baseline
// translator (or the raw user prompt) when a request fails.
package ai
