// Package logging assembles structured slog loggers and formatting helpers used
// across comicsdb.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so importer code can tag log
// lines with run IDs, record positions and source names. The package also
// provides a no-op logger for tests.
package logging
