package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMarvel()
	c.normalizeImport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.DatabaseFile = strings.TrimSpace(c.Paths.DatabaseFile)
	if c.Paths.DatabaseFile == "" {
		c.Paths.DatabaseFile = defaultDatabaseFile
	}
	if strings.HasPrefix(c.Paths.DatabaseFile, "~") {
		if c.Paths.DatabaseFile, err = expandPath(c.Paths.DatabaseFile); err != nil {
			return fmt.Errorf("paths.database_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeMarvel() {
	c.Marvel.PublicKey = strings.TrimSpace(c.Marvel.PublicKey)
	if c.Marvel.PublicKey == "" {
		if value, ok := os.LookupEnv("MARVEL_PUBLIC_KEY"); ok {
			c.Marvel.PublicKey = strings.TrimSpace(value)
		}
	}
	c.Marvel.PrivateKey = strings.TrimSpace(c.Marvel.PrivateKey)
	if c.Marvel.PrivateKey == "" {
		if value, ok := os.LookupEnv("MARVEL_PRIVATE_KEY"); ok {
			c.Marvel.PrivateKey = strings.TrimSpace(value)
		}
	}
	c.Marvel.BaseURL = strings.TrimRight(strings.TrimSpace(c.Marvel.BaseURL), "/")
	if c.Marvel.BaseURL == "" {
		c.Marvel.BaseURL = defaultMarvelBaseURL
	}
	if c.Marvel.TimeoutSeconds <= 0 {
		c.Marvel.TimeoutSeconds = defaultMarvelTimeoutSeconds
	}
	if c.Marvel.PageSize <= 0 {
		c.Marvel.PageSize = defaultMarvelPageSize
	}
	if c.Marvel.MaxRetries < 0 {
		c.Marvel.MaxRetries = 0
	}
}

func (c *Config) normalizeImport() {
	c.Import.EditorCreditCreator = strings.TrimSpace(c.Import.EditorCreditCreator)
	c.Import.EditorCreditRole = strings.TrimSpace(c.Import.EditorCreditRole)
	if c.Import.EditorCreditCreator != "" && c.Import.EditorCreditRole == "" {
		c.Import.EditorCreditRole = defaultEditorCreditRole
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
