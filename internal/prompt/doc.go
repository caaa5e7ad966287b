// Package prompt provides interactive importer.Chooser implementations: a
// huh select form for terminals and a numbered line prompt for pipes and
// scripted input.
package prompt
