package catalog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"comicsdb/internal/catalog"
	"comicsdb/internal/testsupport"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOpenSeedsRoles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	roles, err := store.ListRoles(context.Background())
	if err != nil {
		t.Fatalf("ListRoles: %v", err)
	}
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	want := []string{"writer", "penciller", "inker", "colorist", "letterer", "cover", "editor", "editor in chief"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("seeded roles mismatch (-want +got):\n%s", diff)
	}

	role, err := store.RoleByName(context.Background(), "Editor In Chief")
	if err != nil || role == nil {
		t.Fatalf("expected case-insensitive role lookup, got %v %v", role, err)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.MustCreateSeries(t, store, "Saga", 2012)
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := catalog.OpenPath(filepath.Join(cfg.Paths.DataDir, "catalog.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	defer reopened.Close()
	series, err := reopened.SeriesBySlug(context.Background(), "saga-2012")
	if err != nil || series == nil {
		t.Fatalf("expected series after reopen, got %v %v", series, err)
	}
	if series.Status != catalog.SeriesOngoing {
		t.Fatalf("expected default ongoing status, got %s", series.Status)
	}
}

func TestSearchSeriesSubstringAndYear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.MustCreateSeries(t, store, "Batman", 1940)
	testsupport.MustCreateSeries(t, store, "Batman", 2016)
	testsupport.MustCreateSeries(t, store, "Batman Beyond", 2016)
	testsupport.MustCreateSeries(t, store, "Superman", 2016)

	all, err := store.SearchSeries(ctx, catalog.SeriesQuery{Name: "batMAN"})
	if err != nil {
		t.Fatalf("SearchSeries: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 case-insensitive matches, got %d", len(all))
	}

	narrowed, err := store.SearchSeries(ctx, catalog.SeriesQuery{Name: "batman", YearBegan: 2016})
	if err != nil {
		t.Fatalf("SearchSeries: %v", err)
	}
	if len(narrowed) != 2 {
		t.Fatalf("expected 2 matches for 2016, got %d", len(narrowed))
	}
	if narrowed[0].Slug != "batman-2016" || narrowed[1].Slug != "batman-beyond-2016" {
		t.Fatalf("unexpected order: %s, %s", narrowed[0].Slug, narrowed[1].Slug)
	}
}

func TestCreateIssueGeneratesSlugs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	asm := testsupport.MustCreateSeries(t, store, "Amazing Spider-Man", 2018)
	if asm.Slug != "amazing-spider-man-2018" {
		t.Fatalf("unexpected series slug %q", asm.Slug)
	}

	first := &catalog.Issue{SeriesID: asm.ID, Number: "39", CoverDate: date(2020, 3, 1)}
	if err := store.CreateIssue(ctx, first); err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}
	if first.Slug != "amazing-spider-man-2018-39" {
		t.Fatalf("unexpected slug %q", first.Slug)
	}

	first.Name = "Renamed"
	if err := store.UpdateIssue(ctx, first); err != nil {
		t.Fatalf("UpdateIssue: %v", err)
	}
	if first.Slug != "amazing-spider-man-2018-39" {
		t.Fatalf("update must not touch the slug, got %q", first.Slug)
	}

	preset := &catalog.Issue{SeriesID: asm.ID, Number: "40", Slug: "custom", CoverDate: date(2020, 4, 1)}
	if err := store.CreateIssue(ctx, preset); err != nil {
		t.Fatalf("CreateIssue preset: %v", err)
	}
	if preset.Slug != "custom" {
		t.Fatalf("existing slug must be kept, got %q", preset.Slug)
	}
}

func TestCreateIssueSuffixesTakenSlug(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	series := testsupport.MustCreateSeries(t, store, "Hulk", 2021)
	squatter := &catalog.Issue{SeriesID: series.ID, Number: "1A", Slug: "hulk-2021-1", CoverDate: date(2021, 1, 1)}
	if err := store.CreateIssue(ctx, squatter); err != nil {
		t.Fatalf("CreateIssue squatter: %v", err)
	}

	issue := &catalog.Issue{SeriesID: series.ID, Number: "1", CoverDate: date(2021, 1, 1)}
	if err := store.CreateIssue(ctx, issue); err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}
	if issue.Slug != "hulk-2021-1-1" {
		t.Fatalf("expected suffixed slug, got %q", issue.Slug)
	}
}

func TestGetOrCreateIssue(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	series := testsupport.MustCreateSeries(t, store, "Batman", 2016)
	key := catalog.IssueKey{SeriesID: series.ID, Number: "20", StoreDate: date(2024, 1, 15), CoverDate: date(2024, 3, 1)}

	issue, created, err := store.GetOrCreateIssue(ctx, key)
	if err != nil || !created {
		t.Fatalf("expected create, got created=%v err=%v", created, err)
	}

	again, created, err := store.GetOrCreateIssue(ctx, key)
	if err != nil || created {
		t.Fatalf("expected fetch, got created=%v err=%v", created, err)
	}
	if again.ID != issue.ID || again.Slug != issue.Slug {
		t.Fatalf("expected same issue, got %+v vs %+v", again, issue)
	}

	shifted := key
	shifted.StoreDate = date(2024, 1, 22)
	_, _, err = store.GetOrCreateIssue(ctx, shifted)
	if !errors.Is(err, catalog.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for same series/number, got %v", err)
	}

	issues, err := store.ListIssues(ctx, catalog.IssueFilter{SeriesID: series.ID})
	if err != nil {
		t.Fatalf("ListIssues: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected exactly one issue, got %d", len(issues))
	}
}

func TestUpdateIssueRoundTripsFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	series := testsupport.MustCreateSeries(t, store, "Saga", 2012)
	issue, _, err := store.GetOrCreateIssue(ctx, catalog.IssueKey{SeriesID: series.ID, Number: "1", StoreDate: date(2012, 3, 14), CoverDate: date(2012, 5, 1)})
	if err != nil {
		t.Fatalf("GetOrCreateIssue: %v", err)
	}
	if !issue.Price.IsZero() || issue.PageCount != 0 || issue.Desc != "" {
		t.Fatalf("expected empty fillable fields, got %+v", issue)
	}

	issue.Desc = "The beginning."
	issue.Price = decimal.RequireFromString("2.99")
	issue.UPC = "75960608839302511"
	issue.PageCount = 44
	if err := store.UpdateIssue(ctx, issue); err != nil {
		t.Fatalf("UpdateIssue: %v", err)
	}

	fetched, err := store.IssueBySlug(ctx, issue.Slug)
	if err != nil || fetched == nil {
		t.Fatalf("IssueBySlug: %v %v", fetched, err)
	}
	if fetched.Desc != "The beginning." || !fetched.Price.Equal(decimal.RequireFromString("2.99")) ||
		fetched.UPC != "75960608839302511" || fetched.PageCount != 44 {
		t.Fatalf("unexpected fetched issue %+v", fetched)
	}
	if !fetched.StoreDate.Equal(date(2012, 3, 14)) || !fetched.CoverDate.Equal(date(2012, 5, 1)) {
		t.Fatalf("unexpected dates %v %v", fetched.StoreDate, fetched.CoverDate)
	}
}

func TestCreditsUnionRoles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	series := testsupport.MustCreateSeries(t, store, "Daredevil", 2019)
	issue, _, err := store.GetOrCreateIssue(ctx, catalog.IssueKey{SeriesID: series.ID, Number: "1", CoverDate: date(2019, 4, 1)})
	if err != nil {
		t.Fatalf("GetOrCreateIssue: %v", err)
	}
	creator := testsupport.MustCreateCreator(t, store, "Chip Zdarsky", "")

	credit, created, err := store.GetOrCreateCredit(ctx, issue.ID, creator.ID)
	if err != nil || !created {
		t.Fatalf("expected new credit, got %v %v", created, err)
	}
	writer, _ := store.RoleByName(ctx, "writer")
	cover, _ := store.RoleByName(ctx, "cover")
	if err := store.AddCreditRole(ctx, credit.ID, writer.ID); err != nil {
		t.Fatalf("AddCreditRole: %v", err)
	}

	same, created, err := store.GetOrCreateCredit(ctx, issue.ID, creator.ID)
	if err != nil || created || same.ID != credit.ID {
		t.Fatalf("expected existing credit, got %+v created=%v err=%v", same, created, err)
	}
	for _, roleID := range []int64{cover.ID, writer.ID} {
		if err := store.AddCreditRole(ctx, same.ID, roleID); err != nil {
			t.Fatalf("AddCreditRole: %v", err)
		}
	}

	credits, err := store.CreditsForIssue(ctx, issue.ID)
	if err != nil {
		t.Fatalf("CreditsForIssue: %v", err)
	}
	want := []catalog.Credit{{ID: credit.ID, IssueID: issue.ID, CreatorID: creator.ID, CreatorName: "Chip Zdarsky", Roles: []string{"writer", "cover"}}}
	if diff := cmp.Diff(want, credits); diff != "" {
		t.Fatalf("credits mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchCreatorsFoldsAccents(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.MustCreateCreator(t, store, "Javier Rodríguez", "")
	testsupport.MustCreateCreator(t, store, "Javier Pulido", "")

	got, err := store.SearchCreators(ctx, "javier rodriguez")
	if err != nil {
		t.Fatalf("SearchCreators: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "javier-rodriguez" {
		t.Fatalf("unexpected result %+v", got)
	}

	both, err := store.SearchCreators(ctx, "javier")
	if err != nil || len(both) != 2 {
		t.Fatalf("expected 2 matches, got %d (%v)", len(both), err)
	}
	narrowed, err := store.SearchCreators(ctx, "pulido", "javier")
	if err != nil || len(narrowed) != 1 {
		t.Fatalf("expected 1 match, got %d (%v)", len(narrowed), err)
	}
}

func TestEntitiesLinkAndDetail(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	series := testsupport.MustCreateSeries(t, store, "X-Men", 1991)
	issue, _, err := store.GetOrCreateIssue(ctx, catalog.IssueKey{SeriesID: series.ID, Number: "1", CoverDate: date(1991, 10, 1)})
	if err != nil {
		t.Fatalf("GetOrCreateIssue: %v", err)
	}
	wolverine := testsupport.MustCreateEntity(t, store, catalog.KindCharacter, "Wolverine")
	xmen := testsupport.MustCreateEntity(t, store, catalog.KindTeam, "X-Men")

	found, err := store.EntityByName(ctx, catalog.KindCharacter, "WOLVERINE")
	if err != nil || found == nil || found.ID != wolverine.ID {
		t.Fatalf("expected case-insensitive exact match, got %v %v", found, err)
	}
	if partial, _ := store.EntityByName(ctx, catalog.KindCharacter, "Wolver"); partial != nil {
		t.Fatalf("substring must not match, got %+v", partial)
	}

	ronin := testsupport.MustCreateEntity(t, store, catalog.KindCharacter, "Rōnin")
	if got, err := store.EntityByName(ctx, catalog.KindCharacter, "RŌNIN"); err != nil || got == nil || got.ID != ronin.ID {
		t.Fatalf("expected case-insensitive match on accented name, got %v %v", got, err)
	}
	if got, err := store.EntityByName(ctx, catalog.KindCharacter, "Ronin"); err != nil || got != nil {
		t.Fatalf("accents must match exactly, got %+v %v", got, err)
	}

	for i := 0; i < 2; i++ {
		if err := store.LinkEntity(ctx, catalog.KindCharacter, issue.ID, wolverine.ID); err != nil {
			t.Fatalf("LinkEntity: %v", err)
		}
	}
	if err := store.LinkEntity(ctx, catalog.KindTeam, issue.ID, xmen.ID); err != nil {
		t.Fatalf("LinkEntity team: %v", err)
	}

	detail, err := store.IssueDetail(ctx, issue.Slug)
	if err != nil || detail == nil {
		t.Fatalf("IssueDetail: %v %v", detail, err)
	}
	if diff := cmp.Diff([]string{"Wolverine"}, detail.Characters); diff != "" {
		t.Fatalf("characters mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"X-Men"}, detail.Teams); diff != "" {
		t.Fatalf("teams mismatch:\n%s", diff)
	}
	if detail.Series.ID != series.ID {
		t.Fatalf("unexpected series %+v", detail.Series)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats["issues"] != 1 || stats["characters"] != 1 || stats["roles"] != 8 {
		t.Fatalf("unexpected stats %v", stats)
	}
}

func TestCoverDateFor(t *testing.T) {
	tests := []struct {
		store time.Time
		want  time.Time
	}{
		{date(2024, 1, 15), date(2024, 3, 1)},
		{date(2023, 11, 30), date(2024, 1, 1)},
		{date(2024, 12, 31), date(2025, 2, 1)},
	}
	for _, tt := range tests {
		if got := catalog.CoverDateFor(tt.store, 2); !got.Equal(tt.want) {
			t.Errorf("CoverDateFor(%s) = %s, want %s", tt.store.Format(catalog.DateLayout), got.Format(catalog.DateLayout), tt.want.Format(catalog.DateLayout))
		}
	}
	if !catalog.CoverDateFor(time.Time{}, 2).IsZero() {
		t.Error("zero store date should yield zero cover date")
	}
}

func TestParseSeriesStatus(t *testing.T) {
	status, err := catalog.ParseSeriesStatus("Hiatus")
	if err != nil || status != catalog.SeriesHiatus {
		t.Fatalf("unexpected %v %v", status, err)
	}
	if _, err := catalog.ParseSeriesStatus("paused"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
