// Package services defines shared utilities consumed by the importer, the
// catalog store and the external source clients.
//
// Key responsibilities:
//   - Context helpers that stamp import run IDs, record positions and source
//     names for logging.
//   - Structured error markers plus the Wrap helper that keep failures
//     classifiable (configuration vs not found vs transient) as they bubble up
//     to the CLI.
//
// Use these helpers when wiring new import logic so error handling and
// observability stay uniform across commands.
package services
