package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	dataDir    string
	configPath string
}

type envOption func(*envConfig)

type envConfig struct {
	editorCreator string
	marvelURL     string
}

func withMarvelBaseURL(url string) envOption {
	return func(c *envConfig) { c.marvelURL = url }
}

func withEditorCredit(slug string) envOption {
	return func(c *envConfig) { c.editorCreator = slug }
}

func setupCLITestEnv(t *testing.T, opts ...envOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("MARVEL_PUBLIC_KEY", "")
	t.Setenv("MARVEL_PRIVATE_KEY", "")

	settings := envConfig{}
	for _, opt := range opts {
		opt(&settings)
	}

	env := &cliTestEnv{
		baseDir:    base,
		dataDir:    filepath.Join(base, "data"),
		configPath: filepath.Join(homeDir, ".config", "comicsdb", "config.toml"),
	}
	if err := os.MkdirAll(filepath.Dir(env.configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[marvel]
public_key = "test-public"
private_key = "test-private"
base_url = %q
max_retries = 0

[import]
editor_credit_creator = %q
editor_credit_role = "editor in chief"

[logging]
level = "error"
`, env.dataDir, filepath.Join(base, "logs"), settings.marvelURL, settings.editorCreator)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRunCLI(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, env, "", args...)
	if err != nil {
		t.Fatalf("comicsdb %s: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return out
}

func writeListingFile(t *testing.T, env *cliTestEnv, body string) string {
	t.Helper()
	path := filepath.Join(env.baseDir, "listing.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write listing: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
