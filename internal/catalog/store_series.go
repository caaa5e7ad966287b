package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"comicsdb/internal/textutil"
)

const seriesColumns = "id, name, sort_name, slug, volume, year_began, year_end, status, publisher_id, description"

func scanSeries(scanner interface{ Scan(dest ...any) error }) (*Series, error) {
	var (
		series      Series
		volume      sql.NullInt64
		yearEnd     sql.NullInt64
		publisherID sql.NullInt64
	)
	if err := scanner.Scan(
		&series.ID,
		&series.Name,
		&series.SortName,
		&series.Slug,
		&volume,
		&series.YearBegan,
		&yearEnd,
		&series.Status,
		&publisherID,
		&series.Desc,
	); err != nil {
		return nil, err
	}
	series.Volume = int(volume.Int64)
	series.YearEnd = int(yearEnd.Int64)
	series.PublisherID = publisherID.Int64
	return &series, nil
}

// CreatePublisher inserts a publisher, deriving its slug from the name when unset.
func (s *Store) CreatePublisher(ctx context.Context, publisher *Publisher) error {
	if publisher == nil || strings.TrimSpace(publisher.Name) == "" {
		return errors.New("publisher name is required")
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if publisher.Slug == "" {
			slug, err := uniqueSlug(ctx, tx, "publishers", publisher.Name)
			if err != nil {
				return err
			}
			publisher.Slug = slug
		}
		ts := s.timestamp()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO publishers (name, slug, founded, description, created_at, modified_at) VALUES (?, ?, ?, ?, ?, ?)`,
			publisher.Name, publisher.Slug, nullableInt(publisher.Founded), publisher.Desc, ts, ts,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: publisher slug %q", ErrDuplicate, publisher.Slug)
			}
			return fmt.Errorf("insert publisher: %w", err)
		}
		publisher.ID, err = res.LastInsertId()
		return err
	})
}

// PublisherBySlug returns the publisher with slug, or nil when none exists.
func (s *Store) PublisherBySlug(ctx context.Context, slug string) (*Publisher, error) {
	var (
		p       Publisher
		founded sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, slug, founded, description FROM publishers WHERE slug = ?`, slug,
	).Scan(&p.ID, &p.Name, &p.Slug, &founded, &p.Desc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get publisher: %w", err)
	}
	p.Founded = int(founded.Int64)
	return &p, nil
}

// CreateSeries inserts a series. The slug defaults to the slugified
// "<name> <year_began>", the sort name to the name, and the status to ongoing.
func (s *Store) CreateSeries(ctx context.Context, series *Series) error {
	if series == nil || strings.TrimSpace(series.Name) == "" {
		return errors.New("series name is required")
	}
	if series.YearBegan <= 0 {
		return errors.New("series year_began is required")
	}
	if series.SortName == "" {
		series.SortName = series.Name
	}
	if series.Status == 0 {
		series.Status = SeriesOngoing
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if series.Slug == "" {
			slug, err := uniqueSlug(ctx, tx, "series", series.Name+" "+strconv.Itoa(series.YearBegan))
			if err != nil {
				return err
			}
			series.Slug = slug
		}
		ts := s.timestamp()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO series (
                name, name_folded, sort_name, slug, volume, year_began, year_end,
                status, publisher_id, description, created_at, modified_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			series.Name,
			textutil.Fold(series.Name),
			series.SortName,
			series.Slug,
			nullableInt(series.Volume),
			series.YearBegan,
			nullableInt(series.YearEnd),
			int(series.Status),
			nullableInt64(series.PublisherID),
			series.Desc,
			ts,
			ts,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: series slug %q", ErrDuplicate, series.Slug)
			}
			return fmt.Errorf("insert series: %w", err)
		}
		series.ID, err = res.LastInsertId()
		return err
	})
}

// SeriesByID fetches a series by identifier, or nil when none exists.
func (s *Store) SeriesByID(ctx context.Context, id int64) (*Series, error) {
	return s.getSeries(ctx, `SELECT `+seriesColumns+` FROM series WHERE id = ?`, id)
}

// SeriesBySlug fetches a series by slug, or nil when none exists.
func (s *Store) SeriesBySlug(ctx context.Context, slug string) (*Series, error) {
	return s.getSeries(ctx, `SELECT `+seriesColumns+` FROM series WHERE slug = ?`, slug)
}

func (s *Store) getSeries(ctx context.Context, query string, arg any) (*Series, error) {
	series, err := scanSeries(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get series: %w", err)
	}
	return series, nil
}

// SeriesQuery filters SearchSeries. Name matches as a case- and
// accent-insensitive substring; YearBegan, when non-zero, must match exactly.
type SeriesQuery struct {
	Name      string
	YearBegan int
	Limit     int
}

// SearchSeries returns series matching query ordered by sort name and year.
func (s *Store) SearchSeries(ctx context.Context, query SeriesQuery) ([]Series, error) {
	var (
		clauses []string
		args    []any
	)
	if folded := textutil.Fold(query.Name); folded != "" {
		clauses = append(clauses, "instr(name_folded, ?) > 0")
		args = append(args, folded)
	}
	if query.YearBegan > 0 {
		clauses = append(clauses, "year_began = ?")
		args = append(args, query.YearBegan)
	}
	stmt := `SELECT ` + seriesColumns + ` FROM series`
	if len(clauses) > 0 {
		stmt += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	stmt += ` ORDER BY sort_name COLLATE NOCASE, year_began, id`
	if query.Limit > 0 {
		stmt += ` LIMIT ?`
		args = append(args, query.Limit)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("search series: %w", err)
	}
	defer rows.Close()

	var out []Series
	for rows.Next() {
		series, err := scanSeries(rows)
		if err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		out = append(out, *series)
	}
	return out, rows.Err()
}
