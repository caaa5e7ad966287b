package importer_test

import (
	"testing"

	"comicsdb/internal/importer"
)

func TestParseTitle(t *testing.T) {
	tests := []struct {
		in   string
		want importer.ParsedTitle
	}{
		{"Amazing Spider-Man (2018) #39", importer.ParsedTitle{Series: "Amazing Spider-Man", Number: "39", Year: 2018}},
		{"Star Wars: Darth Vader (2020) #5 (Variant)", importer.ParsedTitle{Series: "Star Wars: Darth Vader", Number: "5", Year: 2020}},
		{"Amazing Spider-Man Annual (2019) #1", importer.ParsedTitle{Series: "Amazing Spider-Man Annual", Number: "1", Year: 2019}},
		{"Amazing Spider-Man (2018) Annual #2", importer.ParsedTitle{Series: "Amazing Spider-Man Annual", Number: "2", Year: 2018}},
		{"Batman Annual 3", importer.ParsedTitle{Series: "Batman Annual", Number: "3"}},
		{"X-Men (1991) #1.MU", importer.ParsedTitle{Series: "X-Men", Number: "1.MU", Year: 1991}},
		{"Wolverine #½", importer.ParsedTitle{Series: "Wolverine", Number: "½"}},
		{"Uncanny X-Men (1963) #-1", importer.ParsedTitle{Series: "Uncanny X-Men", Number: "-1", Year: 1963}},
		{"Spider-Man 2099 (2019 - 2020) #1", importer.ParsedTitle{Series: "Spider-Man 2099", Number: "1", Year: 2019}},
		{"Saga (2012)", importer.ParsedTitle{Series: "Saga", Year: 2012}},
		{"  Daredevil   #600  ", importer.ParsedTitle{Series: "Daredevil", Number: "600"}},
		{"Marvel Previews", importer.ParsedTitle{Series: "Marvel Previews"}},
		{"#1", importer.ParsedTitle{Series: "#1"}},
		{"", importer.ParsedTitle{}},
	}
	for _, tt := range tests {
		if got := importer.ParseTitle(tt.in); got != tt.want {
			t.Errorf("ParseTitle(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParsedTitleString(t *testing.T) {
	p := importer.ParsedTitle{Series: "Amazing Spider-Man", Number: "39", Year: 2018}
	if got := p.String(); got != "Amazing Spider-Man (2018) #39" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func TestNormalizeRole(t *testing.T) {
	tests := map[string]string{
		"penciler":         "penciller",
		"Penciler ":        "penciller",
		"penciller":        "penciller",
		"penciler (cover)": "cover",
		"Cover Artist":     "cover",
		"writer":           "writer",
		"Editor In Chief":  "editor in chief",
		"painter":          "painter",
	}
	for in, want := range tests {
		if got := importer.NormalizeRole(in); got != want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
}
