package main

import (
	"encoding/json"
	"errors"
	"testing"

	"comicsdb/internal/catalog"
	"comicsdb/internal/services"
)

func TestSeriesAddAndList(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRunCLI(t, env, "publisher", "add", "Marvel", "--founded", "1939")
	requireContains(t, out, "Added publisher Marvel (marvel)")

	out = mustRunCLI(t, env, "series", "add", "Amazing Spider-Man", "--year", "2018", "--publisher", "marvel")
	requireContains(t, out, "Added series Amazing Spider-Man (2018) (amazing-spider-man-2018)")
	mustRunCLI(t, env, "series", "add", "Amazing Spider-Man", "--year", "1963", "--status", "completed")
	mustRunCLI(t, env, "series", "add", "Batman", "--year", "2016")

	out = mustRunCLI(t, env, "--json", "series", "list", "--name", "amazing")
	var series []catalog.Series
	if err := json.Unmarshal([]byte(out), &series); err != nil {
		t.Fatalf("decode series: %v\n%s", err, out)
	}
	if len(series) != 2 || series[0].YearBegan != 1963 || series[0].Status != catalog.SeriesCompleted {
		t.Fatalf("unexpected series list %+v", series)
	}
	if series[1].PublisherID == 0 {
		t.Fatal("expected publisher to be linked")
	}

	table := mustRunCLI(t, env, "series", "list", "--year", "2016")
	requireContains(t, table, "batman-2016")
	requireNotContains(t, table, "amazing-spider-man")
}

func TestSeriesAddValidation(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env, "", "series", "add", "Thor"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error without year, got %v", err)
	}
	if _, _, err := runCLI(t, env, "", "series", "add", "Thor", "--year", "2020", "--status", "paused"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for status, got %v", err)
	}
	if _, _, err := runCLI(t, env, "", "series", "add", "Thor", "--year", "2020", "--publisher", "nope"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found publisher, got %v", err)
	}
}

func TestCreatorEntityAndRoleCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	requireContains(t, mustRunCLI(t, env, "creator", "add", "José Delbo"), "(jose-delbo)")
	mustRunCLI(t, env, "creator", "add", "Jim Starlin")
	out := mustRunCLI(t, env, "creator", "list", "--search", "jose")
	requireContains(t, out, "José Delbo")
	requireNotContains(t, out, "Jim Starlin")

	requireContains(t, mustRunCLI(t, env, "character", "add", "Spider-Man"), "Added character Spider-Man (spider-man)")
	requireContains(t, mustRunCLI(t, env, "team", "add", "Avengers"), "Added team Avengers (avengers)")
	requireContains(t, mustRunCLI(t, env, "arc", "add", "Secret Wars"), "Added arc Secret Wars (secret-wars)")

	requireContains(t, mustRunCLI(t, env, "role", "add", "Translator"), "Added role translator")
	if _, _, err := runCLI(t, env, "", "role", "add", "WRITER"); !errors.Is(err, catalog.ErrDuplicate) {
		t.Fatalf("expected duplicate role, got %v", err)
	}
	roles := mustRunCLI(t, env, "role", "list")
	requireContains(t, roles, "editor in chief")
	requireContains(t, roles, "translator")

	var stats map[string]int
	if err := json.Unmarshal([]byte(mustRunCLI(t, env, "--json", "stats")), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats["creators"] != 2 || stats["characters"] != 1 || stats["teams"] != 1 || stats["arcs"] != 1 || stats["roles"] != 9 {
		t.Fatalf("unexpected stats %v", stats)
	}
}

func TestIssueShowUnknownSlug(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env, "", "issue", "show", "missing-1"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, err := runCLI(t, env, "", "issue", "list", "--month", "January"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for month, got %v", err)
	}
}
