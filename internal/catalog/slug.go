package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"comicsdb/internal/textutil"
)

// SlugExists reports whether slug is already taken.
type SlugExists func(ctx context.Context, slug string) (bool, error)

// GenerateSlug returns base when it is free, otherwise the first free of
// base-1, base-2, ... in increasing order. It only reads; the caller persists
// the result.
func GenerateSlug(ctx context.Context, base string, exists SlugExists) (string, error) {
	if base == "" {
		return "", errors.New("slug base is empty")
	}
	candidate := base
	for i := 1; ; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}

// IssueSlugBase is the slug an issue receives when no other issue holds it.
func IssueSlugBase(seriesSlug, number string) string {
	return textutil.Slugify(seriesSlug + "-" + number)
}

// slugTables lists every table whose slug column the store generates.
var slugTables = map[string]struct{}{
	"publishers": {},
	"series":     {},
	"issues":     {},
	"creators":   {},
	"characters": {},
	"teams":      {},
	"arcs":       {},
}

func slugChecker(q querier, table string) SlugExists {
	return func(ctx context.Context, slug string) (bool, error) {
		if _, ok := slugTables[table]; !ok {
			return false, fmt.Errorf("table %q has no slug column", table)
		}
		var n int
		err := q.QueryRowContext(ctx, `SELECT COUNT(1) FROM `+table+` WHERE slug = ?`, slug).Scan(&n)
		return n > 0, err
	}
}

// uniqueSlug derives a free slug for a new row in table from the given name.
func uniqueSlug(ctx context.Context, q querier, table, name string) (string, error) {
	base := textutil.Slugify(name)
	if base == "" {
		return "", fmt.Errorf("cannot derive a slug from %q", name)
	}
	return GenerateSlug(ctx, base, slugChecker(q, table))
}
