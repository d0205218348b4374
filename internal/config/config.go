package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains filesystem locations used by a run.
type Paths struct {
	CSVPath string `toml:"csv_path" validate:"required"`
}

// Jellyfin contains connection settings for the source media server.
type Jellyfin struct {
	URL            string `toml:"url" validate:"required,url"`
	User           string `toml:"user" validate:"required"`
	APIKey         string `toml:"api_key" validate:"required"`
	RequestTimeout int    `toml:"request_timeout" validate:"gt=0"`
}

// Timeouts holds the bounded waits of the Letterboxd import workflow, in seconds.
type Timeouts struct {
	Navigation       int `toml:"navigation" validate:"gt=0"`
	Login            int `toml:"login" validate:"gt=0"`
	UploadAffordance int `toml:"upload_affordance" validate:"gt=0"`
	Mapping          int `toml:"mapping" validate:"gt=0"`
	Completion       int `toml:"completion" validate:"gt=0"`
}

// Letterboxd contains credentials and browser settings for the import target.
type Letterboxd struct {
	Username    string   `toml:"username" validate:"required"`
	Password    string   `toml:"password" validate:"required"`
	BaseURL     string   `toml:"base_url" validate:"required,url"`
	Headless    bool     `toml:"headless"`
	BrowserPath string   `toml:"browser_path"`
	Timeouts    Timeouts `toml:"timeouts"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format     string `toml:"format"`
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// Config encapsulates all configuration values for jellyboxd.
//
// Configuration sections by subsystem:
//   - Paths: interchange CSV location
//   - Jellyfin: source server URL, user, and API key
//   - Letterboxd: target credentials, browser mode, and workflow timeouts
//   - Logging: log format, level, and optional rotated file
type Config struct {
	Paths      Paths      `toml:"paths"`
	Jellyfin   Jellyfin   `toml:"jellyfin"`
	Letterboxd Letterboxd `toml:"letterboxd"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns where `config init` writes when given no path.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/jellyboxd/config.toml")
}

// Load parses and normalizes the configuration file at path. An empty path
// reads no file at all and yields the defaults; the file under
// DefaultConfigPath is only used when passed explicitly. Credentials are not
// required at this point; callers merge flags and then call Validate,
// ValidateExport, or ValidateImport.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Normalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		return "", false, nil
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, fmt.Errorf("config file %s does not exist", expanded)
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

// RequestTimeoutDuration returns the Jellyfin HTTP timeout as a duration.
func (j Jellyfin) RequestTimeoutDuration() time.Duration {
	return time.Duration(j.RequestTimeout) * time.Second
}

func seconds(v int) time.Duration {
	return time.Duration(v) * time.Second
}

// NavigationTimeout bounds each page load.
func (t Timeouts) NavigationTimeout() time.Duration { return seconds(t.Navigation) }

// LoginTimeout bounds the wait for a logged-in session.
func (t Timeouts) LoginTimeout() time.Duration { return seconds(t.Login) }

// UploadAffordanceTimeout bounds the advisory wait for the upload button.
func (t Timeouts) UploadAffordanceTimeout() time.Duration { return seconds(t.UploadAffordance) }

// MappingTimeout bounds the wait for server-side field mapping.
func (t Timeouts) MappingTimeout() time.Duration { return seconds(t.Mapping) }

// CompletionTimeout bounds the advisory wait for the import summary.
func (t Timeouts) CompletionTimeout() time.Duration { return seconds(t.Completion) }

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the sample configuration to path. Unless overwrite is
// set an existing file is left alone and an error wrapping fs.ErrExist is
// returned.
func CreateSample(path string, overwrite bool) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	// Sample holds credentials once edited; keep it private.
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	if _, err := f.WriteString(sampleConfig); err != nil {
		_ = f.Close()
		return fmt.Errorf("write sample config: %w", err)
	}
	return f.Close()
}
