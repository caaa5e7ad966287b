package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the storage and display layout for cover and store dates.
const DateLayout = "2006-01-02"

// SeriesStatus tracks the publication state of a series.
type SeriesStatus int

const (
	SeriesCancelled SeriesStatus = iota + 1
	SeriesCompleted
	SeriesHiatus
	SeriesOngoing
)

func (s SeriesStatus) String() string {
	switch s {
	case SeriesCancelled:
		return "Cancelled"
	case SeriesCompleted:
		return "Completed"
	case SeriesHiatus:
		return "Hiatus"
	case SeriesOngoing:
		return "Ongoing"
	default:
		return fmt.Sprintf("SeriesStatus(%d)", int(s))
	}
}

// ParseSeriesStatus maps a case-insensitive status name to its value.
func ParseSeriesStatus(value string) (SeriesStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "cancelled", "canceled":
		return SeriesCancelled, nil
	case "completed":
		return SeriesCompleted, nil
	case "hiatus":
		return SeriesHiatus, nil
	case "", "ongoing":
		return SeriesOngoing, nil
	default:
		return 0, fmt.Errorf("unknown series status %q", value)
	}
}

// Publisher is a comic publisher.
type Publisher struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Founded int    `json:"founded,omitempty"`
	Desc    string `json:"desc,omitempty"`
}

// Series is a run of issues. Several series may share a name; YearBegan
// distinguishes them.
type Series struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	SortName    string       `json:"sort_name"`
	Slug        string       `json:"slug"`
	Volume      int          `json:"volume,omitempty"`
	YearBegan   int          `json:"year_began"`
	YearEnd     int          `json:"year_end,omitempty"`
	Status      SeriesStatus `json:"status"`
	PublisherID int64        `json:"publisher_id,omitempty"`
	Desc        string       `json:"desc,omitempty"`
}

// Label renders the series the way candidate lists show it.
func (s Series) Label() string {
	return fmt.Sprintf("%s (%d)", s.Name, s.YearBegan)
}

// Issue is a single comic. Desc, Price, UPC and PageCount are fill-if-empty
// fields: the empty values are "", decimal.Zero and 0.
type Issue struct {
	ID         int64           `json:"id"`
	SeriesID   int64           `json:"series_id"`
	Number     string          `json:"number"`
	Slug       string          `json:"slug"`
	Name       string          `json:"name,omitempty"`
	CoverDate  time.Time       `json:"cover_date"`
	StoreDate  time.Time       `json:"store_date,omitzero"`
	Price      decimal.Decimal `json:"price"`
	SKU        string          `json:"sku,omitempty"`
	UPC        string          `json:"upc,omitempty"`
	PageCount  int             `json:"page_count,omitempty"`
	Desc       string          `json:"desc,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	ModifiedAt time.Time       `json:"modified_at"`
}

// Creator is a person credited on issues.
type Creator struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Desc string `json:"desc,omitempty"`
}

// Entity is a named catalog row without further structure: characters,
// teams and story arcs.
type Entity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Desc string `json:"desc,omitempty"`
}

// EntityKind selects the table behind an Entity.
type EntityKind string

const (
	KindCharacter EntityKind = "character"
	KindTeam      EntityKind = "team"
	KindArc       EntityKind = "arc"
)

func (k EntityKind) table() (string, error) {
	switch k {
	case KindCharacter:
		return "characters", nil
	case KindTeam:
		return "teams", nil
	case KindArc:
		return "arcs", nil
	default:
		return "", fmt.Errorf("unknown entity kind %q", string(k))
	}
}

func (k EntityKind) linkTable() (table, column string, err error) {
	switch k {
	case KindCharacter:
		return "issue_characters", "character_id", nil
	case KindTeam:
		return "issue_teams", "team_id", nil
	case KindArc:
		return "issue_arcs", "arc_id", nil
	default:
		return "", "", fmt.Errorf("unknown entity kind %q", string(k))
	}
}

// Role is a credit role such as writer or penciller.
type Role struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// Credit links a creator to an issue with a set of roles.
type Credit struct {
	ID          int64    `json:"id"`
	IssueID     int64    `json:"issue_id"`
	CreatorID   int64    `json:"creator_id"`
	CreatorName string   `json:"creator"`
	Roles       []string `json:"roles"`
}

// IssueDetail is an issue with its series and attached relations.
type IssueDetail struct {
	Issue      Issue    `json:"issue"`
	Series     Series   `json:"series"`
	Credits    []Credit `json:"credits"`
	Characters []string `json:"characters"`
	Teams      []string `json:"teams"`
	Arcs       []string `json:"arcs"`
}
