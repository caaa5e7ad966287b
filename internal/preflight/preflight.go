package preflight

import (
	"context"

	"comicsdb/internal/config"
	"comicsdb/internal/importer"
)

// Result reports the outcome of a single preflight check. Skipped checks
// pass and say why in Detail.
type Result struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Skipped bool   `json:"skipped,omitempty"`
	Detail  string `json:"detail"`
}

// Pinger reaches an external listing source.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options select the optional checks.
type Options struct {
	// Catalog enables the editor credit lookups.
	Catalog importer.Catalog
	// Marvel enables the API reachability check.
	Marvel Pinger
	// MinFreeBytes is the free space required on the data directory.
	MinFreeBytes uint64
}

// DefaultMinFreeBytes is the free space import expects on the data volume.
const DefaultMinFreeBytes = 64 << 20

// RunAll executes every applicable check for cfg.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckFreeSpace("Data volume", cfg.Paths.DataDir, opts.MinFreeBytes),
	}
	if opts.Catalog != nil {
		results = append(results, CheckEditorCredit(ctx, opts.Catalog, cfg.Import))
	}
	results = append(results, CheckMarvel(ctx, cfg, opts.Marvel))
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
