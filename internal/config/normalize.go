package config

import (
	"fmt"
	"strings"
)

// Normalize trims user input, expands paths, and canonicalizes enumerations.
// The CLI calls it again after applying flag overrides.
func (c *Config) Normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeJellyfin()
	c.normalizeLetterboxd()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.CSVPath) == "" {
		c.Paths.CSVPath = DefaultCSVPath
	}
	var err error
	if c.Paths.CSVPath, err = expandPath(strings.TrimSpace(c.Paths.CSVPath)); err != nil {
		return fmt.Errorf("paths.csv_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeJellyfin() {
	c.Jellyfin.URL = strings.TrimRight(strings.TrimSpace(c.Jellyfin.URL), "/")
	c.Jellyfin.APIKey = strings.TrimSpace(c.Jellyfin.APIKey)
	if c.Jellyfin.RequestTimeout == 0 {
		c.Jellyfin.RequestTimeout = defaultJellyfinRequestTimeout
	}
}

func (c *Config) normalizeLetterboxd() {
	c.Letterboxd.Username = strings.TrimSpace(c.Letterboxd.Username)
	c.Letterboxd.BaseURL = strings.TrimRight(strings.TrimSpace(c.Letterboxd.BaseURL), "/")
	if c.Letterboxd.BaseURL == "" {
		c.Letterboxd.BaseURL = defaultLetterboxdBaseURL
	}
	c.Letterboxd.BrowserPath = strings.TrimSpace(c.Letterboxd.BrowserPath)
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		var err error
		if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}
