// Package translate turns subtitle segments from one language into another.
//
// Translation runs through an ordered engine chain: the AI provider first
// when configured, then the baseline Google endpoint. A segment whose every
// engine fails keeps its original text, so the output always has exactly as
// many segments as the input and dual subtitles stay aligned.
package translate
