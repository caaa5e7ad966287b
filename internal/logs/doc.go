// Package logs reads back the JSON log file written during imports.
//
// Reads keep memory bounded by holding only the last N matching entries, and
// follow mode polls the file from a byte offset so `comicsdb logs --follow`
// can stream new entries while another process imports.
package logs
