package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"jellyboxd/internal/config"
)

func TestLoadWithoutPathIgnoresDefaultLocation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	defaultPath, err := config.DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath returned error: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(defaultPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(defaultPath, []byte("[jellyfin]\nurl = \"http://implicit:8096\"\n"), 0o600); err != nil {
		t.Fatalf("write default config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists || resolved != "" {
		t.Fatalf("expected no file to be applied, got resolved=%q exists=%v", resolved, exists)
	}
	if cfg.Jellyfin.URL != "" {
		t.Fatalf("file at the default location was applied implicitly: url=%q", cfg.Jellyfin.URL)
	}
	if cfg.Paths.CSVPath != "/tmp/letterboxd_import.csv" {
		t.Fatalf("unexpected csv path: %q", cfg.Paths.CSVPath)
	}
	if cfg.Letterboxd.BaseURL != "https://letterboxd.com" {
		t.Fatalf("unexpected letterboxd base url: %q", cfg.Letterboxd.BaseURL)
	}
	if cfg.Letterboxd.Headless {
		t.Fatal("expected headed browser by default")
	}
	timeouts := cfg.Letterboxd.Timeouts
	if timeouts.Login != 60 || timeouts.Mapping != 60 || timeouts.Completion != 60 || timeouts.UploadAffordance != 10 {
		t.Fatalf("unexpected timeouts: %+v", timeouts)
	}
	if cfg.Logging.Format != "auto" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadDecodesFileAndNormalizes(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfgVal := config.Default()
	cfgVal.Paths.CSVPath = "~/exports/watched.csv"
	cfgVal.Jellyfin.URL = "http://jellyfin.local:8096/ "
	cfgVal.Jellyfin.User = "alice"
	cfgVal.Jellyfin.APIKey = " key-1 "
	cfgVal.Letterboxd.Username = "alice"
	cfgVal.Letterboxd.Password = "secret"
	cfgVal.Letterboxd.Timeouts.Mapping = 120
	cfgVal.Logging.Format = "JSON"

	data, err := toml.Marshal(cfgVal)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(home, "jellyboxd.toml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected file %q to be used, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Paths.CSVPath != filepath.Join(home, "exports", "watched.csv") {
		t.Fatalf("expected tilde expansion, got %q", cfg.Paths.CSVPath)
	}
	if cfg.Jellyfin.URL != "http://jellyfin.local:8096" {
		t.Fatalf("expected trimmed url, got %q", cfg.Jellyfin.URL)
	}
	if cfg.Jellyfin.APIKey != "key-1" {
		t.Fatalf("expected trimmed api key, got %q", cfg.Jellyfin.APIKey)
	}
	if cfg.Letterboxd.Timeouts.MappingTimeout().Seconds() != 120 {
		t.Fatalf("unexpected mapping timeout: %v", cfg.Letterboxd.Timeouts.MappingTimeout())
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected lowercased format, got %q", cfg.Logging.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestLoadRejectsMissingExplicitFile(t *testing.T) {
	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[jellyfin]\ntoken = \"x\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestValidateReportsMissingCredentialsByTOMLKey(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		check   func(*config.Config) error
		wantKey string
	}{
		{
			name:    "jellyfin url",
			mutate:  func(c *config.Config) { c.Jellyfin.URL = "" },
			check:   (*config.Config).ValidateExport,
			wantKey: "jellyfin.url",
		},
		{
			name:    "jellyfin api key",
			mutate:  func(c *config.Config) { c.Jellyfin.APIKey = "" },
			check:   (*config.Config).ValidateExport,
			wantKey: "jellyfin.api_key",
		},
		{
			name:    "letterboxd password",
			mutate:  func(c *config.Config) { c.Letterboxd.Password = "" },
			check:   (*config.Config).ValidateImport,
			wantKey: "letterboxd.password",
		},
		{
			name:    "mapping timeout",
			mutate:  func(c *config.Config) { c.Letterboxd.Timeouts.Mapping = 0 },
			check:   (*config.Config).ValidateImport,
			wantKey: "letterboxd.timeouts.mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := tt.check(&cfg)
			if err == nil {
				t.Fatalf("expected validation error for %s", tt.wantKey)
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Fatalf("expected error to mention %q, got %v", tt.wantKey, err)
			}
		})
	}
}

func TestValidateExportIgnoresLetterboxdCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Letterboxd.Username = ""
	cfg.Letterboxd.Password = ""
	if err := cfg.ValidateExport(); err != nil {
		t.Fatalf("ValidateExport returned error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected full validation to require letterboxd credentials")
	}
}

func TestValidateRejectsBadJellyfinURL(t *testing.T) {
	cfg := validConfig()
	cfg.Jellyfin.URL = "jellyfin.local"
	err := cfg.ValidateExport()
	if err == nil || !strings.Contains(err.Error(), "absolute URL") {
		t.Fatalf("expected url validation error, got %v", err)
	}
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected log format validation error")
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path, false); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Jellyfin.URL != "http://localhost:8096" {
		t.Fatalf("unexpected sample url: %q", cfg.Jellyfin.URL)
	}

	if err := config.CreateSample(path, false); !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected fs.ErrExist for existing sample, got %v", err)
	}
	if err := config.CreateSample(path, true); err != nil {
		t.Fatalf("CreateSample overwrite returned error: %v", err)
	}
}

func validConfig() config.Config {
	cfg := config.Default()
	cfg.Jellyfin.URL = "http://jellyfin.local:8096"
	cfg.Jellyfin.User = "alice"
	cfg.Jellyfin.APIKey = "key"
	cfg.Letterboxd.Username = "alice"
	cfg.Letterboxd.Password = "secret"
	return cfg
}
