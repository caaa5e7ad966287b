package marvel

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"comicsdb/internal/importer"
)

// dataWrapper is the envelope of every Marvel API response.
type dataWrapper struct {
	Code   int           `json:"code"`
	Status string        `json:"status"`
	Data   dataContainer `json:"data"`
}

type dataContainer struct {
	Offset  int     `json:"offset"`
	Limit   int     `json:"limit"`
	Total   int     `json:"total"`
	Count   int     `json:"count"`
	Results []comic `json:"results"`
}

type comic struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	UPC         string        `json:"upc"`
	PageCount   int           `json:"pageCount"`
	Dates       []comicDate   `json:"dates"`
	Prices      []comicPrice  `json:"prices"`
	Creators    creatorList   `json:"creators"`
	Characters  characterList `json:"characters"`
}

type comicDate struct {
	Type string `json:"type"`
	Date string `json:"date"`
}

type comicPrice struct {
	Type  string          `json:"type"`
	Price decimal.Decimal `json:"price"`
}

type creatorList struct {
	Items []struct {
		Name string `json:"name"`
		Role string `json:"role"`
	} `json:"items"`
}

type characterList struct {
	Items []struct {
		Name string `json:"name"`
	} `json:"items"`
}

// dateLayout is the timestamp form Marvel uses, e.g. 2024-01-10T00:00:00-0500.
const dateLayout = "2006-01-02T15:04:05-0700"

// onSale returns the on-sale date in the publisher's own calendar. Marvel
// reports unknown dates as year -0001.
func (c comic) onSale() time.Time {
	for _, d := range c.Dates {
		if d.Type != "onsaleDate" {
			continue
		}
		parsed, err := time.Parse(dateLayout, d.Date)
		if err != nil || parsed.Year() < 1 {
			return time.Time{}
		}
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Time{}
}

func (c comic) printPrice() decimal.Decimal {
	for _, p := range c.Prices {
		if p.Type == "printPrice" {
			return p.Price
		}
	}
	return decimal.Zero
}

func (c comic) record() importer.Record {
	rec := importer.Record{
		SourceID:    strconv.FormatInt(c.ID, 10),
		Title:       strings.TrimSpace(c.Title),
		StoreDate:   c.onSale(),
		Description: strings.TrimSpace(c.Description),
		Price:       c.printPrice(),
		UPC:         strings.TrimSpace(c.UPC),
		PageCount:   c.PageCount,
	}
	for _, item := range c.Creators.Items {
		rec.Contributors = append(rec.Contributors, importer.Contributor{Name: item.Name, Role: item.Role})
	}
	for _, item := range c.Characters.Items {
		rec.Characters = append(rec.Characters, item.Name)
	}
	return rec
}
