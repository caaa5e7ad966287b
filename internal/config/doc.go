// Package config loads, normalizes, and validates comicsdb configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MARVEL_PUBLIC_KEY and MARVEL_PRIVATE_KEY. The Config type centralizes every
// knob the CLI and importer need so the catalog database location, the Marvel
// credentials, and the import heuristics are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
