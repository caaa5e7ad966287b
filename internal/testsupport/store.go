package testsupport

import (
	"context"
	"testing"

	"comicsdb/internal/catalog"
	"comicsdb/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// MustCreateSeries inserts a series with the given name and start year.
func MustCreateSeries(t testing.TB, store *catalog.Store, name string, year int) *catalog.Series {
	t.Helper()

	series := &catalog.Series{Name: name, YearBegan: year}
	if err := store.CreateSeries(context.Background(), series); err != nil {
		t.Fatalf("CreateSeries(%q, %d): %v", name, year, err)
	}
	return series
}

// MustCreateCreator inserts a creator, using slug when non-empty.
func MustCreateCreator(t testing.TB, store *catalog.Store, name, slug string) *catalog.Creator {
	t.Helper()

	creator := &catalog.Creator{Name: name, Slug: slug}
	if err := store.CreateCreator(context.Background(), creator); err != nil {
		t.Fatalf("CreateCreator(%q): %v", name, err)
	}
	return creator
}

// MustCreateEntity inserts a character, team or arc.
func MustCreateEntity(t testing.TB, store *catalog.Store, kind catalog.EntityKind, name string) *catalog.Entity {
	t.Helper()

	entity := &catalog.Entity{Name: name}
	if err := store.CreateEntity(context.Background(), kind, entity); err != nil {
		t.Fatalf("CreateEntity(%s, %q): %v", kind, name, err)
	}
	return entity
}
