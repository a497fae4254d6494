// Package pipeline orchestrates the subtitle generation workflow: audio
// extraction, transcription, optional Chinese script conversion, translation,
// and SRT emission. Progress flows to the caller as an ordered event stream
// that terminates with exactly one result or error event, and every run is
// recorded in the run log.
package pipeline
