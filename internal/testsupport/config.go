// Package testsupport builds throwaway configs and fixtures for tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"jellyboxd/internal/config"
)

// stubScript stands in for a browser executable; preflight only resolves it.
var stubScript = []byte("#!/bin/sh\nexit 0\n")

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a valid config whose interchange file lives in a fresh
// temp directory. Logging is JSON at error level so tests stay quiet.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	b := &configBuilder{t: t, baseDir: t.TempDir(), cfg: &cfg}
	cfg.Paths.CSVPath = filepath.Join(b.baseDir, "export", "letterboxd_import.csv")
	cfg.Logging.Format, cfg.Logging.Level = "json", "error"
	WithJellyfin("http://127.0.0.1:8096", "test-key", "alice")(b)
	b.cfg.Letterboxd.Username, b.cfg.Letterboxd.Password = "cinephile", "test-pass"

	for _, opt := range opts {
		opt(b)
	}
	return b.cfg
}

// WithJellyfin points the config at a (usually httptest) Jellyfin server.
func WithJellyfin(url, apiKey, user string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Jellyfin.URL = url
		b.cfg.Jellyfin.APIKey = apiKey
		b.cfg.Jellyfin.User = user
	}
}

// WithLetterboxdBaseURL overrides the Letterboxd site root.
func WithLetterboxdBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Letterboxd.BaseURL = url
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// makes them the only entries on PATH. If names is empty a stub
// google-chrome is written.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"google-chrome"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		for _, name := range names {
			if err := os.WriteFile(filepath.Join(binDir, name), stubScript, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		b.t.Setenv("PATH", binDir)
	}
}
