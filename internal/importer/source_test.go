package importer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"comicsdb/internal/importer"
	"comicsdb/internal/services"
)

func TestNewQuery(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		dateRange  string
		want       importer.Query
		wantErr    bool
	}{
		{name: "empty", want: importer.Query{}},
		{name: "descriptor", descriptor: "thisWeek", want: importer.Query{DateDescriptor: "thisWeek"}},
		{name: "range", dateRange: "2024-01-01, 2024-01-31", want: importer.Query{Start: day(2024, 1, 1), End: day(2024, 1, 31)}},
		{name: "unknown descriptor", descriptor: "someday", wantErr: true},
		{name: "both", descriptor: "thisWeek", dateRange: "2024-01-01,2024-01-31", wantErr: true},
		{name: "single date", dateRange: "2024-01-01", wantErr: true},
		{name: "bad date", dateRange: "2024-13-01,2024-01-31", wantErr: true},
		{name: "reversed", dateRange: "2024-02-01,2024-01-31", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.NewQuery(tt.descriptor, tt.dateRange)
			if tt.wantErr {
				if !errors.Is(err, services.ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewQuery: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("query mismatch:\n%s", diff)
			}
		})
	}
}

func TestQueryRangeAndContains(t *testing.T) {
	q, err := importer.NewQuery("", "2024-01-01,2024-01-31")
	if err != nil {
		t.Fatalf("NewQuery: %v", err)
	}
	if got := q.Range(); got != "2024-01-01,2024-01-31" {
		t.Fatalf("Range = %q", got)
	}
	if !q.Contains(day(2024, 1, 31)) || q.Contains(day(2024, 2, 1)) {
		t.Fatal("range bounds are inclusive and exclusive beyond end")
	}
	if !(importer.Query{}).Contains(day(1999, 1, 1)) || !(importer.Query{}).IsZero() {
		t.Fatal("zero query matches everything")
	}
}

const listing = `[
  {"source_id": "1", "title": "Thor (2020) #1", "store_date": "2024-01-10", "price": "4.99", "page_count": 40,
   "creators": [{"name": "Donny Cates", "role": "writer"}], "characters": ["Thor"], "teams": ["Avengers"]},
  {"source_id": "2", "title": "Hulk (2021) #2", "store_date": "2024-02-14", "price": 3.99},
  {"source_id": "3", "title": "Marvel Previews"}
]`

func writeListing(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listing.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write listing: %v", err)
	}
	return path
}

func TestFileSourceFetch(t *testing.T) {
	src := importer.FileSource{Path: writeListing(t, listing)}
	records, err := src.Fetch(context.Background(), importer.Query{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	first := records[0]
	if !first.StoreDate.Equal(day(2024, 1, 10)) || !first.Price.Equal(decimal.RequireFromString("4.99")) || first.PageCount != 40 {
		t.Fatalf("unexpected first record %+v", first)
	}
	if diff := cmp.Diff([]importer.Contributor{{Name: "Donny Cates", Role: "writer"}}, first.Contributors); diff != "" {
		t.Fatalf("contributors mismatch:\n%s", diff)
	}
	if !records[2].StoreDate.IsZero() {
		t.Fatal("missing store date should stay zero")
	}

	q, _ := importer.NewQuery("", "2024-02-01,2024-02-29")
	filtered, err := src.Fetch(context.Background(), q)
	if err != nil {
		t.Fatalf("Fetch range: %v", err)
	}
	if len(filtered) != 1 || filtered[0].SourceID != "2" {
		t.Fatalf("range filter mismatch: %+v", filtered)
	}
}

func TestFileSourceErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := (importer.FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}).Fetch(ctx, importer.Query{}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := (importer.FileSource{Path: writeListing(t, `{"title": 1}`)}).Fetch(ctx, importer.Query{}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for bad json, got %v", err)
	}
	if _, err := (importer.FileSource{Path: writeListing(t, `[{"title": "x", "store_date": "01/02/2024"}]`)}).Fetch(ctx, importer.Query{}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
}
