package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"comicsdb/internal/services"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRunCLI(t, env, "config", "validate")
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "[INFO] keys configured (not contacted)")
	requireContains(t, out, "[INFO] disabled")
	requireContains(t, out, "Data directory:")

	target := filepath.Join(t.TempDir(), "config.toml")
	out = mustRunCLI(t, env, "config", "init", "--path", target)
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, env, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
	mustRunCLI(t, env, "config", "init", "--path", target, "--overwrite")
}

func TestConfigValidateReportsMissingEditor(t *testing.T) {
	env := setupCLITestEnv(t, withEditorCredit("c-b-cebulski"))
	out, _, err := runCLI(t, env, "", "config", "validate")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, out, `[ERROR] creator "c-b-cebulski" not in catalog`)
	requireNotContains(t, out, "Configuration valid")

	mustRunCLI(t, env, "creator", "add", "C.B. Cebulski", "--slug", "c-b-cebulski")
	out = mustRunCLI(t, env, "config", "validate")
	requireContains(t, out, "[OK] C.B. Cebulski as editor in chief")
	requireContains(t, out, "Configuration valid")
}

func TestConfigShowRedactsPrivateKey(t *testing.T) {
	env := setupCLITestEnv(t)
	out := mustRunCLI(t, env, "config", "show")
	requireContains(t, out, env.configPath)
	requireContains(t, out, "test-public")
	requireNotContains(t, out, "test-private")
}

func TestConfigValidateOnlineChecksMarvelKeys(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "test-public" || r.URL.Query().Get("limit") != "1" {
			t.Errorf("unexpected ping query %s", r.URL.RawQuery)
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"InvalidCredentials","message":"The passed API key is invalid."}`))
	}))
	t.Cleanup(server.Close)

	env := setupCLITestEnv(t, withMarvelBaseURL(server.URL))
	out, _, err := runCLI(t, env, "", "config", "validate", "--online")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, out, "[ERROR] keys rejected")
}
