package prompt_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"comicsdb/internal/importer"
	"comicsdb/internal/prompt"
)

var candidates = []importer.Candidate{
	{Label: "Batman (2016)", Detail: "batman-2016"},
	{Label: "Batman (2016)", Detail: "batman-2016-1"},
}

func TestLineChooser(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantIdx int
		wantOK  bool
	}{
		{name: "first", input: "1\n", wantIdx: 0, wantOK: true},
		{name: "second without newline", input: "2", wantIdx: 1, wantOK: true},
		{name: "zero declines", input: "0\n", wantOK: false},
		{name: "blank declines", input: "\n", wantOK: false},
		{name: "eof declines", input: "", wantOK: false},
		{name: "retries invalid", input: "abc\n7\n2\n", wantIdx: 1, wantOK: true},
		{name: "invalid then eof", input: "9", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			chooser := prompt.NewLineChooser(strings.NewReader(tt.input), &out)
			idx, ok, err := chooser.Choose(context.Background(), "Series for Batman #20 (2016)", candidates)
			if err != nil {
				t.Fatalf("Choose: %v", err)
			}
			if ok != tt.wantOK || (ok && idx != tt.wantIdx) {
				t.Fatalf("got (%d, %v), want (%d, %v)", idx, ok, tt.wantIdx, tt.wantOK)
			}
			if !strings.Contains(out.String(), "batman-2016-1") || !strings.Contains(out.String(), "Series for Batman") {
				t.Fatalf("prompt output missing candidates:\n%s", out.String())
			}
		})
	}
}

func TestLineChooserSharesInputAcrossPrompts(t *testing.T) {
	var out bytes.Buffer
	chooser := prompt.NewLineChooser(strings.NewReader("2\n1\n"), &out)
	ctx := context.Background()
	if idx, ok, _ := chooser.Choose(ctx, "first", candidates); !ok || idx != 1 {
		t.Fatalf("first prompt got (%d, %v)", idx, ok)
	}
	if idx, ok, _ := chooser.Choose(ctx, "second", candidates); !ok || idx != 0 {
		t.Fatalf("second prompt got (%d, %v)", idx, ok)
	}
}

func TestLineChooserHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chooser := prompt.NewLineChooser(strings.NewReader("1\n"), &bytes.Buffer{})
	if _, _, err := chooser.Choose(ctx, "p", candidates); err == nil {
		t.Fatal("expected context error")
	}
}

func TestNewWithoutInputIsAutomatic(t *testing.T) {
	if _, ok := prompt.New(nil, &bytes.Buffer{}).(importer.AutoChooser); !ok {
		t.Fatal("expected AutoChooser without input")
	}
}

func TestNewWithRegularFileReadsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.txt")
	if err := os.WriteFile(path, []byte("2\n"), 0o644); err != nil {
		t.Fatalf("write answers: %v", err)
	}
	in, err := os.Open(path)
	if err != nil {
		t.Fatalf("open answers: %v", err)
	}
	t.Cleanup(func() { in.Close() })

	chooser := prompt.New(in, &bytes.Buffer{})
	if _, ok := chooser.(*prompt.LineChooser); !ok {
		t.Fatalf("expected LineChooser for a non-terminal file, got %T", chooser)
	}
	idx, ok, err := chooser.Choose(context.Background(), "Series", candidates)
	if err != nil || !ok || idx != 1 {
		t.Fatalf("Choose = %d %v %v, want 1 true nil", idx, ok, err)
	}
}
