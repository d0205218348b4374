// Package logging assembles structured slog loggers and formatting helpers used
// across jellyboxd.
//
// It owns the console/JSON handlers, centralizes level and output plumbing
// (including the optional rotated log file), and exposes context-aware helpers
// so workflow code can tag log lines with the run correlation ID and the
// current import stage. Attributes naming a credential are redacted by both
// handlers. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
package logging
