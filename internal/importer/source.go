package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"comicsdb/internal/services"
)

// Source fetches listings from an external feed.
type Source interface {
	Name() string
	Fetch(ctx context.Context, query Query) ([]Record, error)
}

// Query selects which listings a Source returns. Either DateDescriptor (a
// relative period such as "thisWeek" or "nextMonth") or a Start/End range is
// set; a zero Query asks for everything the source holds.
type Query struct {
	DateDescriptor string
	Start          time.Time
	End            time.Time
}

var dateDescriptors = map[string]struct{}{
	"lastWeek":  {},
	"thisWeek":  {},
	"nextWeek":  {},
	"thisMonth": {},
}

// IsZero reports whether no period was requested.
func (q Query) IsZero() bool {
	return q.DateDescriptor == "" && q.Start.IsZero() && q.End.IsZero()
}

// Range renders the Start/End range in "YYYY-MM-DD,YYYY-MM-DD" form.
func (q Query) Range() string {
	if q.Start.IsZero() {
		return ""
	}
	return q.Start.Format("2006-01-02") + "," + q.End.Format("2006-01-02")
}

// NewQuery validates a date descriptor or a comma separated date range. At
// most one may be set.
func NewQuery(descriptor, dateRange string) (Query, error) {
	descriptor = strings.TrimSpace(descriptor)
	dateRange = strings.TrimSpace(dateRange)
	if descriptor != "" && dateRange != "" {
		return Query{}, services.Wrap(services.ErrValidation, "importer", "query", "use either a date descriptor or a range, not both", nil)
	}
	if descriptor != "" {
		if _, ok := dateDescriptors[descriptor]; !ok {
			return Query{}, services.Wrap(services.ErrValidation, "importer", "query",
				fmt.Sprintf("unknown date descriptor %q (want lastWeek, thisWeek, nextWeek or thisMonth)", descriptor), nil)
		}
		return Query{DateDescriptor: descriptor}, nil
	}
	if dateRange == "" {
		return Query{}, nil
	}
	parts := strings.Split(dateRange, ",")
	if len(parts) != 2 {
		return Query{}, services.Wrap(services.ErrValidation, "importer", "query", fmt.Sprintf("range %q must be start,end", dateRange), nil)
	}
	start, err := time.Parse("2006-01-02", strings.TrimSpace(parts[0]))
	if err != nil {
		return Query{}, services.Wrap(services.ErrValidation, "importer", "query", "range start", err)
	}
	end, err := time.Parse("2006-01-02", strings.TrimSpace(parts[1]))
	if err != nil {
		return Query{}, services.Wrap(services.ErrValidation, "importer", "query", "range end", err)
	}
	if end.Before(start) {
		return Query{}, services.Wrap(services.ErrValidation, "importer", "query", "range end precedes start", nil)
	}
	return Query{Start: start, End: end}, nil
}

// Contains reports whether t falls inside the query's explicit range. A
// query without a range contains every date.
func (q Query) Contains(t time.Time) bool {
	if q.Start.IsZero() {
		return true
	}
	d := dateOnly(t)
	return !d.Before(q.Start) && !d.After(q.End)
}

// FileSource reads records from a JSON file holding an array of listings.
// Store dates use the YYYY-MM-DD layout.
type FileSource struct {
	Path string
}

type fileRecord struct {
	SourceID     string          `json:"source_id"`
	Title        string          `json:"title"`
	StoreDate    string          `json:"store_date"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	UPC          string          `json:"upc"`
	PageCount    int             `json:"page_count"`
	Contributors []Contributor   `json:"creators"`
	Characters   []string        `json:"characters"`
	Teams        []string        `json:"teams"`
}

func (FileSource) Name() string { return "file" }

// Fetch decodes the file. Only an explicit range filters; date descriptors
// are relative to the live feed and are ignored here.
func (s FileSource) Fetch(_ context.Context, query Query) ([]Record, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, services.Wrap(services.ErrValidation, "file source", "fetch", "no path given", nil)
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "file source", "fetch", s.Path, err)
		}
		return nil, services.Wrap(services.ErrExternal, "file source", "fetch", s.Path, err)
	}
	var raw []fileRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, services.Wrap(services.ErrValidation, "file source", "decode", s.Path, err)
	}

	records := make([]Record, 0, len(raw))
	for i, fr := range raw {
		rec := Record{
			SourceID:     fr.SourceID,
			Title:        fr.Title,
			Description:  fr.Description,
			Price:        fr.Price,
			UPC:          fr.UPC,
			PageCount:    fr.PageCount,
			Contributors: fr.Contributors,
			Characters:   fr.Characters,
			Teams:        fr.Teams,
		}
		if fr.StoreDate != "" {
			storeDate, err := time.Parse("2006-01-02", fr.StoreDate)
			if err != nil {
				return nil, services.Wrap(services.ErrValidation, "file source", "decode",
					fmt.Sprintf("record %d store_date %q", i+1, fr.StoreDate), err)
			}
			rec.StoreDate = storeDate
		}
		if !query.Contains(rec.StoreDate) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
