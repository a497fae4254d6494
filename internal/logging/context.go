package logging

import (
	"context"
	"log/slog"

	"subweave/internal/services"
)

const (
	// FieldJobID identifies the pipeline run a record belongs to.
	FieldJobID = "job_id"
	// FieldStage names the pipeline stage emitting the record.
	FieldStage = "stage"
)

// ContextFields extracts job and stage attributes carried on the context.
func ContextFields(ctx context.Context) []Attr {
	if ctx == nil {
		return nil
	}
	attrs := make([]Attr, 0, 2)
	if id, ok := services.JobIDFromContext(ctx); ok {
		attrs = append(attrs, String(FieldJobID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		attrs = append(attrs, String(FieldStage, stage))
	}
	return attrs
}

// WithContext returns a logger enriched with job and stage fields from ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
