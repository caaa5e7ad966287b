// Package marvel implements an importer.Source backed by the Marvel Comics
// API. Requests are signed with the ts/apikey/hash scheme, listings are
// paged by offset, and transient failures (rate limiting, 5xx responses,
// network errors) are retried with exponential backoff.
package marvel
