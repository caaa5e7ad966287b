// Package catalog persists the comic catalog (publishers, series, issues,
// creators, characters, teams, arcs, roles and credits) in SQLite.
//
// The Store manages the database connection, schema initialization and the
// lookups the importer reconciles against. Issue inserts run the slug hook:
// an issue persisted without a slug receives one derived from its series slug
// and number, suffixed -1, -2, ... until unique. A second issue for the same
// series and number is rejected with ErrDuplicate.
//
// Schema changes bump the version in schema.go; users rebuild the database to
// adopt the new schema.
package catalog
