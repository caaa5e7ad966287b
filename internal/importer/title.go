package importer

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedTitle is the structured form of a listing title. Number is empty and
// Year is zero when the title does not carry them.
type ParsedTitle struct {
	Series string
	Number string
	Year   int
}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	// "#39", "# 1.MU", "#½", "#-1"
	issueMarkerPattern = regexp.MustCompile(`#\s*([0-9A-Za-z½.\-/]+)`)
	// "Annual 2" when no '#' marker is present.
	annualPattern = regexp.MustCompile(`(?i)^(.*\bannual)\s+([0-9][0-9A-Za-z.\-/]*)\s*$`)
	// "(2018)" or "(2018 - 2019)"; the first year wins.
	yearPattern = regexp.MustCompile(`\(\s*(\d{4})(?:\s*-\s*(?:\d{4})?)?\s*\)`)
)

// ParseTitle splits a listing title such as "Amazing Spider-Man (2018) #39"
// into series name, issue number and year. It never fails: input it cannot
// make sense of comes back as the whole trimmed string in Series.
func ParseTitle(title string) ParsedTitle {
	cleaned := strings.TrimSpace(whitespacePattern.ReplaceAllString(title, " "))
	if cleaned == "" {
		return ParsedTitle{}
	}

	head := cleaned
	number := ""
	if loc := issueMarkerPattern.FindStringSubmatchIndex(cleaned); loc != nil {
		head = cleaned[:loc[0]]
		number = strings.TrimRight(cleaned[loc[2]:loc[3]], ".-/")
	} else if m := annualPattern.FindStringSubmatch(cleaned); m != nil {
		head = m[1]
		number = m[2]
	}

	year := 0
	if m := yearPattern.FindStringSubmatch(head); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil && y >= 1900 && y <= 2100 {
			year = y
			head = strings.Replace(head, m[0], " ", 1)
		}
	}

	series := strings.TrimSpace(whitespacePattern.ReplaceAllString(head, " "))
	series = strings.TrimRight(series, " :,-")
	if series == "" {
		return ParsedTitle{Series: cleaned}
	}
	return ParsedTitle{Series: series, Number: number, Year: year}
}

// String renders the parsed title for logs and prompts.
func (p ParsedTitle) String() string {
	var b strings.Builder
	b.WriteString(p.Series)
	if p.Year > 0 {
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(p.Year))
		b.WriteString(")")
	}
	if p.Number != "" {
		b.WriteString(" #")
		b.WriteString(p.Number)
	}
	return b.String()
}
