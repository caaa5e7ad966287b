// Package main hosts the comicsdb CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, opens the SQLite
// catalog on demand and hands work to the internal packages: catalog
// maintenance goes straight to catalog.Store, while `comicsdb import` wires a
// listing source, a chooser and the importer.Reconciler together.
//
// Keep this package lean: new behaviour belongs in the internal packages and
// is surfaced here through commands or flags.
package main
