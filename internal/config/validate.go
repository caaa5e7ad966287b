package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMarvel(); err != nil {
		return err
	}
	if err := c.validateImport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DatabaseFile) == "" {
		return errors.New("paths.database_file must be set")
	}
	return nil
}

func (c *Config) validateMarvel() error {
	if c.Marvel.TimeoutSeconds <= 0 {
		return errors.New("marvel.timeout_seconds must be positive")
	}
	if c.Marvel.PageSize <= 0 || c.Marvel.PageSize > 100 {
		return errors.New("marvel.page_size must be between 1 and 100")
	}
	if c.Marvel.MaxRetries < 0 {
		return errors.New("marvel.max_retries must be >= 0")
	}
	return nil
}

func (c *Config) validateImport() error {
	if c.Import.NarrowThreshold < 1 {
		return errors.New("import.narrow_threshold must be >= 1")
	}
	if c.Import.CoverMonthsAhead < 0 || c.Import.CoverMonthsAhead > 12 {
		return errors.New("import.cover_months_ahead must be between 0 and 12")
	}
	if c.Import.EditorCreditCreator != "" && c.Import.EditorCreditRole == "" {
		return errors.New("import.editor_credit_role must be set when import.editor_credit_creator is set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
