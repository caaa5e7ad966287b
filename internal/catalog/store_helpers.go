package catalog

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

func nullableInt(value int) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullableInt64(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullableDate(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.Format(DateLayout)
}

// nullablePrice stores zero as NULL so an unpriced issue stays fillable.
func nullablePrice(value decimal.Decimal) any {
	if value.IsZero() {
		return nil
	}
	return value.StringFixed(2)
}

func parseDate(value sql.NullString) time.Time {
	if !value.Valid || value.String == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(DateLayout, value.String)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func parsePrice(value sql.NullString) decimal.Decimal {
	if !value.Valid || value.String == "" {
		return decimal.Zero
	}
	parsed, err := decimal.NewFromString(value.String)
	if err != nil {
		return decimal.Zero
	}
	return parsed
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
