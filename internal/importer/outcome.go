package importer

import (
	"time"

	"comicsdb/internal/catalog"
)

// Outcome classifies what happened to one record.
type Outcome string

const (
	// OutcomeUnmatched: no series in the catalog matched the title.
	OutcomeUnmatched Outcome = "unmatched"
	// OutcomeSkipped: candidates existed but none was chosen.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeCreated: a new issue was stored.
	OutcomeCreated Outcome = "created"
	// OutcomeExisting: the issue was already stored; empty fields were filled.
	OutcomeExisting Outcome = "existing"
	// OutcomeDuplicate: the series already has an issue with this number
	// under different dates.
	OutcomeDuplicate Outcome = "duplicate"
)

// Outcomes lists every outcome in reporting order.
var Outcomes = []Outcome{OutcomeCreated, OutcomeExisting, OutcomeDuplicate, OutcomeSkipped, OutcomeUnmatched}

// Result describes the handling of one record.
type Result struct {
	Record       Record
	Parsed       ParsedTitle
	Outcome      Outcome
	Series       *catalog.Series
	Issue        *catalog.Issue
	FilledFields []string
	Credits      int
	Characters   int
	Teams        int
	Warnings     []string
}

// Summary aggregates a run.
type Summary struct {
	RunID    string
	Source   string
	Started  time.Time
	Finished time.Time
	Results  []Result
}

// Count returns how many records ended with outcome.
func (s Summary) Count(outcome Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == outcome {
			n++
		}
	}
	return n
}

// Duration is the wall time of the run.
func (s Summary) Duration() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}
