package services_test

import (
	"errors"
	"strings"
	"testing"

	"comicsdb/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternal, "marvel", "fetch", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternal) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"marvel", "fetch", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !services.Retryable(err) {
		t.Fatalf("expected nil marker to default to transient, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestHintClassification(t *testing.T) {
	cfgErr := services.Wrap(services.ErrConfiguration, "importer", "prepare", "missing editor", nil)
	if hint := services.Hint(cfgErr); !strings.Contains(hint, "config") {
		t.Fatalf("unexpected hint %q", hint)
	}
	if services.Retryable(cfgErr) {
		t.Fatal("configuration errors must not be retryable")
	}
	if hint := services.Hint(errors.New("plain")); hint != "" {
		t.Fatalf("expected no hint for unclassified error, got %q", hint)
	}
}
