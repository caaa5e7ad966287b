package importer_test

import (
	"context"
	"testing"

	"comicsdb/internal/importer"
)

func TestAutoChooser(t *testing.T) {
	ctx := context.Background()
	one := []importer.Candidate{{Label: "Thor (2020)"}}
	two := append(one, importer.Candidate{Label: "Thor (2014)"})

	if idx, ok, err := (importer.AutoChooser{}).Choose(ctx, "p", one); err != nil || !ok || idx != 0 {
		t.Fatalf("sole candidate should be accepted, got %d %v %v", idx, ok, err)
	}
	if _, ok, err := (importer.AutoChooser{}).Choose(ctx, "p", two); err != nil || ok {
		t.Fatalf("ambiguous candidates should be declined, got %v %v", ok, err)
	}
}

func TestScriptedChooser(t *testing.T) {
	ctx := context.Background()
	candidates := []importer.Candidate{{Label: "a"}, {Label: "b"}}
	chooser := importer.NewScriptedChooser(1, -1, 5)

	if idx, ok, err := chooser.Choose(ctx, "first", candidates); err != nil || !ok || idx != 1 {
		t.Fatalf("first answer: %d %v %v", idx, ok, err)
	}
	if _, ok, err := chooser.Choose(ctx, "second", candidates); err != nil || ok {
		t.Fatalf("second answer should decline: %v %v", ok, err)
	}
	if _, _, err := chooser.Choose(ctx, "third", candidates); err == nil {
		t.Fatal("out of range answer should fail")
	}
	if _, _, err := chooser.Choose(ctx, "fourth", candidates); err == nil {
		t.Fatal("exhausted script should fail")
	}
	if len(chooser.Calls) != 4 || chooser.Calls[0].Prompt != "first" {
		t.Fatalf("calls not recorded: %+v", chooser.Calls)
	}
}
