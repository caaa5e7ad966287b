// Package preflight provides readiness checks for the filesystem paths,
// catalog rows and external services comicsdb depends on.
//
// `comicsdb config validate` runs them all and prints one status line per
// check. `comicsdb import` runs the catalog checks before fetching listings
// so a misconfigured editor credit fails before any network traffic.
package preflight
