package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("toml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate ensures the configuration is usable for a full export-then-import run.
func (c *Config) Validate() error {
	if err := c.ValidateExport(); err != nil {
		return err
	}
	return c.ValidateImport()
}

// ValidateExport checks the settings the collector needs.
func (c *Config) ValidateExport() error {
	if err := c.validateSection("paths", c.Paths); err != nil {
		return err
	}
	if err := c.validateSection("jellyfin", c.Jellyfin); err != nil {
		return err
	}
	return c.validateLogging()
}

// ValidateImport checks the settings the Letterboxd importer needs.
func (c *Config) ValidateImport() error {
	if err := c.validateSection("paths", c.Paths); err != nil {
		return err
	}
	if err := c.validateSection("letterboxd", c.Letterboxd); err != nil {
		return err
	}
	if c.Letterboxd.Timeouts.UploadAffordance > c.Letterboxd.Timeouts.Navigation {
		return errors.New("letterboxd.timeouts.upload_affordance must not exceed letterboxd.timeouts.navigation")
	}
	return c.validateLogging()
}

func (c *Config) validateSection(section string, value any) error {
	err := structValidator().Struct(value)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate %s: %w", section, err)
	}
	return describeFieldError(section, fieldErrs[0])
}

func describeFieldError(section string, fe validator.FieldError) error {
	// Namespace is "Struct.field[.sub]"; swap the Go type name for the TOML section.
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = section + "." + rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must be set (flag or config file)", key)
	case "url":
		return fmt.Errorf("%s must be an absolute URL, got %q", key, fe.Value())
	case "gt":
		return fmt.Errorf("%s must be positive (seconds)", key)
	default:
		return fmt.Errorf("%s failed %q validation", key, fe.Tag())
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format must be auto, console, or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	if c.Logging.File != "" && (c.Logging.MaxSizeMB <= 0 || c.Logging.MaxBackups < 0) {
		return errors.New("logging.max_size_mb must be positive and logging.max_backups non-negative when logging.file is set")
	}
	return nil
}
