package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
	ErrPrecondition  = errors.New("precondition failed")
	ErrNotFound      = errors.New("not found")
	ErrTransport     = errors.New("transport error")
	ErrTimeout       = errors.New("timeout")
)

// Wrap tags err with marker and prefixes it with "stage: operation: message",
// skipping blank parts. A nil marker means ErrTransport; a nil err yields a
// leaf error carrying only the marker.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransport
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps an error to a short category label for the final log line.
func Classify(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrPrecondition), errors.Is(err, ErrValidation):
		return "precondition"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrTransport):
		return "transport"
	default:
		return "unknown"
	}
}

// buildDetail joins the non-blank context parts with ": ".
func buildDetail(parts ...string) string {
	kept := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	if len(kept) == 0 {
		return "unspecified failure"
	}
	return strings.Join(kept, ": ")
}
