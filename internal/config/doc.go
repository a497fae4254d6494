// Package config loads, normalizes, and validates subweave configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// WHISPER_MODEL and the AI provider API keys. The Config type centralizes
// every knob the CLI and pipeline need: data directories, whisper model
// selection, translation backends, and workflow toggles.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
