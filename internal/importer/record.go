package importer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contributor is a credited person as the source reports it.
type Contributor struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Record is one external comic listing.
type Record struct {
	SourceID     string          `json:"source_id,omitempty"`
	Title        string          `json:"title"`
	StoreDate    time.Time       `json:"store_date"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	UPC          string          `json:"upc,omitempty"`
	PageCount    int             `json:"page_count,omitempty"`
	Contributors []Contributor   `json:"creators,omitempty"`
	Characters   []string        `json:"characters,omitempty"`
	Teams        []string        `json:"teams,omitempty"`
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
