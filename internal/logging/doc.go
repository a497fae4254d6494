// Package logging configures structured slog output for the pipeline and
// CLI. It provides a compact console handler, a JSON handler, attribute
// helpers, and context-derived fields (job id, stage).
package logging
