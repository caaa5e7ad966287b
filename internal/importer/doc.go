// Package importer reconciles externally sourced comic listings against the
// catalog.
//
// The Reconciler parses each listing title into series, number and year,
// resolves the series (narrowing large candidate sets by year and deferring
// ambiguity to a Chooser), then fetches or creates the issue. New issues get
// the configured editor credit, contributor credits and character/team links;
// existing issues only have empty fields filled. A second issue for a series
// and number already imported is reported as a duplicate and skipped.
//
// Sources (the Marvel API, JSON files) implement Source and hand back Records;
// everything here is synchronous and processes one record at a time.
package importer
