// Package whisper invokes the whisper CLI to transcribe extracted audio and
// parses its JSON output into subtitle segments.
package whisper
