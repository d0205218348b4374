package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"

	"jellyboxd/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
	MaxSizeMB   int
	MaxBackups  int
}

// New constructs a slog logger using the provided options. Output paths are
// "stdout", "stderr", or file paths; files rotate through lumberjack.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	paths := opts.OutputPaths
	if len(paths) == 0 {
		paths = []string{"stderr"}
	}
	out, err := openWriters(paths, opts.MaxSizeMB, opts.MaxBackups)
	if err != nil {
		return nil, err
	}
	addSource := level <= slog.LevelDebug

	switch resolveFormat(opts.Format, paths) {
	case "json":
		return slog.New(newJSONHandler(out, level, addSource)), nil
	case "console":
		return slog.New(newConsoleHandler(out, level, addSource)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromConfig builds the run logger from the [logging] section: stderr,
// plus the configured file when set.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "auto"})
	}
	paths := []string{"stderr"}
	if file := strings.TrimSpace(cfg.Logging.File); file != "" {
		paths = append(paths, file)
	}
	return New(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: paths,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
	})
}

// resolveFormat picks console output only when "auto" and a standard stream
// in paths is an interactive terminal.
func resolveFormat(format string, paths []string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && format != "auto" {
		return format
	}
	for _, path := range paths {
		var f *os.File
		switch strings.TrimSpace(path) {
		case "stdout":
			f = os.Stdout
		case "stderr":
			f = os.Stderr
		default:
			continue
		}
		if fd := f.Fd(); isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return "console"
		}
	}
	return "json"
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openWriters(paths []string, maxSizeMB, maxBackups int) (io.Writer, error) {
	seen := make(map[string]bool, len(paths))
	var writers []io.Writer
	for _, raw := range paths {
		path := strings.TrimSpace(raw)
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true

		switch path {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("ensure log directory: %w", err)
				}
			}
			writers = append(writers, &lumberjack.Logger{
				Filename:   path,
				MaxSize:    maxSizeMB,
				MaxBackups: maxBackups,
			})
		}
	}
	switch len(writers) {
	case 0:
		return os.Stderr, nil
	case 1:
		return writers[0], nil
	default:
		return io.MultiWriter(writers...), nil
	}
}

func newJSONHandler(w io.Writer, level slog.Level, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			default:
				if isSensitive(attr.Key) {
					attr.Value = slog.StringValue(redacted)
				}
			}
			return attr
		},
	})
}
