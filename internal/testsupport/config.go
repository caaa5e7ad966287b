package testsupport

import (
	"path/filepath"
	"testing"

	"comicsdb/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Marvel.PublicKey = "test-public"
	cfgVal.Marvel.PrivateKey = "test-private"
	cfgVal.Marvel.MaxRetries = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithMarvelBaseURL points the Marvel client at a test server.
func WithMarvelBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Marvel.BaseURL = url
	}
}

// WithNarrowThreshold overrides the candidate narrowing threshold.
func WithNarrowThreshold(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Import.NarrowThreshold = n
	}
}

// WithoutEditorCredit disables the default editor credit.
func WithoutEditorCredit() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Import.EditorCreditCreator = ""
		b.cfg.Import.EditorCreditRole = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
