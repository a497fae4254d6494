// Command subweave turns videos into subtitles: it extracts audio, runs
// whisper transcription, optionally translates through an AI provider with a
// public web translator fallback, applies the glossary, and writes original,
// translated, and dual-language SRT files.
package main
