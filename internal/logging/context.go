package logging

import (
	"context"
	"log/slog"

	"jellyboxd/internal/services"
)

// Structured field keys shared by every handler.
const (
	FieldComponent = "component"
	FieldStage     = "stage"
	FieldRunID     = "run_id"
	FieldAlert     = "alert"
	FieldCategory  = "category"
	FieldError     = "error"
)

// ContextFields returns the run id and stage stamped on ctx as attributes.
func ContextFields(ctx context.Context) []slog.Attr {
	info := services.RunInfoFromContext(ctx)
	var fields []slog.Attr
	if info.RunID != "" {
		fields = append(fields, slog.String(FieldRunID, info.RunID))
	}
	if info.Stage != "" {
		fields = append(fields, slog.String(FieldStage, info.Stage))
	}
	return fields
}

// WithContext returns logger tagged with the run annotations on ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
