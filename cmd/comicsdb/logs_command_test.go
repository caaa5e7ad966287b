package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeImportLog(t *testing.T, env *cliTestEnv, lines ...string) string {
	t.Helper()
	path := filepath.Join(env.baseDir, "logs", "comicsdb.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir logs: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestLogsShowsLastEntries(t *testing.T) {
	env := setupCLITestEnv(t)
	writeImportLog(t, env,
		`{"ts":"2026-03-01T10:00:00Z","level":"info","msg":"import started","component":"importer","run_id":"r1"}`,
		`{"ts":"2026-03-01T10:00:01Z","level":"warn","msg":"character not found","component":"importer","name":"Spider-Ham"}`,
		`{"ts":"2026-03-01T10:00:02Z","level":"info","msg":"import finished","component":"importer","created":3}`,
	)

	out := mustRunCLI(t, env, "logs", "--lines", "2")
	requireNotContains(t, out, "import started")
	requireContains(t, out, "WARN  importer: character not found name=Spider-Ham")
	requireContains(t, out, "import finished created=3")

	out = mustRunCLI(t, env, "logs", "--level", "warn")
	requireContains(t, out, "character not found")
	requireNotContains(t, out, "import finished")

	out = mustRunCLI(t, env, "logs", "--run", "r1")
	requireContains(t, out, "import started")
	requireNotContains(t, out, "character not found")
}

func TestLogsJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	writeImportLog(t, env, `{"ts":"2026-03-01T10:00:00Z","level":"error","msg":"import failed","component":"marvel"}`)

	out := mustRunCLI(t, env, "--json", "logs")
	var entries []map[string]any
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0]["msg"] != "import failed" || entries[0]["component"] != "marvel" {
		t.Fatalf("unexpected entries: %v", entries)
	}

	if _, _, err := runCLI(t, env, "", "--json", "logs", "--follow"); err == nil {
		t.Fatal("expected --json with --follow to fail")
	}
}

func TestLogsWithoutFile(t *testing.T) {
	env := setupCLITestEnv(t)
	out := mustRunCLI(t, env, "logs")
	requireContains(t, out, "No log entries available")
}

func TestLogsFollow(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeImportLog(t, env, `{"level":"info","msg":"first"}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", env.configPath, "logs", "--follow"})

	done := make(chan error, 1)
	go func() {
		done <- cmd.ExecuteContext(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if _, err := file.WriteString(`{"level":"info","msg":"followed"}` + "\n"); err != nil {
		t.Fatalf("append log: %v", err)
	}
	file.Close()
	time.Sleep(600 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("logs --follow: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("logs --follow did not exit")
	}
	out := stdout.String()
	requireContains(t, out, "first")
	requireContains(t, out, "followed")
}
