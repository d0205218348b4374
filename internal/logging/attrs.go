package logging

import (
	"log/slog"
	"time"

	"jellyboxd/internal/services"
)

// Attr aliases slog.Attr so callers need not import log/slog for fields.
type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Alert tags a warning with a stable identifier operators can grep for.
func Alert(value string) Attr { return slog.String(FieldAlert, value) }

// Error records err under "error". A nil err yields an empty attr, which
// handlers drop.
func Error(err error) Attr {
	if err == nil {
		return Attr{}
	}
	return slog.String(FieldError, err.Error())
}

// Category records how services.Classify buckets err.
func Category(err error) Attr { return slog.String(FieldCategory, services.Classify(err)) }

// Args converts attrs for the variadic slog methods, dropping empty ones.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Key != "" {
			args = append(args, attr)
		}
	}
	return args
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger scopes logger to component; nil discards.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return NewNop().With(String(FieldComponent, component))
	}
	return logger.With(String(FieldComponent, component))
}
