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

// Paths contains directory and database file configuration.
type Paths struct {
	DataDir      string `toml:"data_dir"`
	LogDir       string `toml:"log_dir"`
	DatabaseFile string `toml:"database_file"`
}

// Marvel contains configuration for the Marvel Comics API source.
type Marvel struct {
	PublicKey      string `toml:"public_key"`
	PrivateKey     string `toml:"private_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	PageSize       int    `toml:"page_size"`
	MaxRetries     int    `toml:"max_retries"`
}

// Import contains the heuristics used when reconciling external listings
// against the catalog.
type Import struct {
	// NarrowThreshold is the candidate count above which series and creator
	// searches are narrowed by year or first name.
	NarrowThreshold int `toml:"narrow_threshold"`
	// CoverMonthsAhead is how far the cover date sits past the store date.
	CoverMonthsAhead int `toml:"cover_months_ahead"`
	// EditorCreditCreator is the slug of the creator credited on every newly
	// imported issue. Empty disables the editor credit.
	EditorCreditCreator string `toml:"editor_credit_creator"`
	EditorCreditRole    string `toml:"editor_credit_role"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for comicsdb.
//
// Configuration sections by subsystem:
//   - Paths: data, log and database locations
//   - Marvel: credentials and paging for the Marvel API source
//   - Import: reconciliation heuristics and the default editor credit
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Marvel  Marvel  `toml:"marvel"`
	Import  Import  `toml:"import"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/comicsdb/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
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
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("comicsdb.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the absolute path of the catalog database.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.Paths.DatabaseFile) {
		return c.Paths.DatabaseFile
	}
	return filepath.Join(c.Paths.DataDir, c.Paths.DatabaseFile)
}

// ImportLockPath returns the lock file guarding against concurrent imports.
func (c *Config) ImportLockPath() string {
	return c.DatabasePath() + ".import.lock"
}

// MarvelTimeout returns the per-request timeout for the Marvel API.
func (c *Config) MarvelTimeout() time.Duration {
	return time.Duration(c.Marvel.TimeoutSeconds) * time.Second
}

// ValidateMarvel reports whether the Marvel source can be used. Credentials
// are only required when an import actually talks to the API.
func (c *Config) ValidateMarvel() error {
	if c.Marvel.PublicKey == "" || c.Marvel.PrivateKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/comicsdb/config.toml"
		}
		return fmt.Errorf("marvel.public_key and marvel.private_key are required. Set MARVEL_PUBLIC_KEY/MARVEL_PRIVATE_KEY or edit %s (create with 'comicsdb config init')", defaultPath)
	}
	return nil
}

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

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
