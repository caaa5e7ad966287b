// Package textutil provides text normalization helpers shared by the catalog
// and importer.
//
// The primary use cases are:
//   - Building URL-safe slugs from names and issue numbers
//   - Folding names so comparisons ignore case and diacritics
//   - Splitting personal names into first and last tokens
package textutil
