package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const issueColumns = "id, series_id, number, slug, name, cover_date, store_date, price, sku, upc, page_count, description, created_at, modified_at"

func scanIssue(scanner interface{ Scan(dest ...any) error }) (*Issue, error) {
	var (
		issue      Issue
		coverDate  sql.NullString
		storeDate  sql.NullString
		price      sql.NullString
		pageCount  sql.NullInt64
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(
		&issue.ID,
		&issue.SeriesID,
		&issue.Number,
		&issue.Slug,
		&issue.Name,
		&coverDate,
		&storeDate,
		&price,
		&issue.SKU,
		&issue.UPC,
		&pageCount,
		&issue.Desc,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	issue.CoverDate = parseDate(coverDate)
	issue.StoreDate = parseDate(storeDate)
	issue.Price = parsePrice(price)
	issue.PageCount = int(pageCount.Int64)
	if created, err := parseTimeString(createdRaw); err == nil {
		issue.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		issue.ModifiedAt = updated
	}
	return &issue, nil
}

// CoverDateFor derives an issue's cover date from its store date: the first
// day of the month monthsAhead months later.
func CoverDateFor(storeDate time.Time, monthsAhead int) time.Time {
	if storeDate.IsZero() {
		return time.Time{}
	}
	return time.Date(storeDate.Year(), storeDate.Month()+time.Month(monthsAhead), 1, 0, 0, 0, 0, time.UTC)
}

// CreateIssue inserts issue. When issue.Slug is empty the slug is generated
// from the series slug and number inside the same transaction. A second issue
// with the same series and number returns ErrDuplicate.
func (s *Store) CreateIssue(ctx context.Context, issue *Issue) error {
	if issue == nil {
		return errors.New("issue is nil")
	}
	if issue.SeriesID == 0 || strings.TrimSpace(issue.Number) == "" {
		return errors.New("issue series and number are required")
	}
	if issue.CoverDate.IsZero() {
		return errors.New("issue cover date is required")
	}
	generated := issue.Slug == ""
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if generated {
			slug, err := s.issueSlug(ctx, tx, issue.SeriesID, issue.Number)
			if err != nil {
				return err
			}
			issue.Slug = slug
		}
		now := s.now().UTC()
		ts := now.Format(time.RFC3339Nano)
		res, err := tx.ExecContext(ctx,
			`INSERT INTO issues (
                series_id, number, slug, name, cover_date, store_date, price,
                sku, upc, page_count, description, created_at, modified_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			issue.SeriesID,
			issue.Number,
			issue.Slug,
			issue.Name,
			nullableDate(issue.CoverDate),
			nullableDate(issue.StoreDate),
			nullablePrice(issue.Price),
			issue.SKU,
			issue.UPC,
			nullableInt(issue.PageCount),
			issue.Desc,
			ts,
			ts,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: issue %s #%s", ErrDuplicate, issueRef(ctx, tx, issue.SeriesID), issue.Number)
			}
			return fmt.Errorf("insert issue: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		issue.ID = id
		issue.CreatedAt = now
		issue.ModifiedAt = now
		return nil
	})
	if err != nil && generated {
		issue.Slug = ""
	}
	return err
}

func (s *Store) issueSlug(ctx context.Context, q querier, seriesID int64, number string) (string, error) {
	var seriesSlug string
	err := q.QueryRowContext(ctx, `SELECT slug FROM series WHERE id = ?`, seriesID).Scan(&seriesSlug)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("series %d does not exist", seriesID)
	}
	if err != nil {
		return "", fmt.Errorf("load series slug: %w", err)
	}
	base := IssueSlugBase(seriesSlug, number)
	if base == "" {
		return "", fmt.Errorf("cannot derive a slug for issue %q", number)
	}
	return GenerateSlug(ctx, base, slugChecker(q, "issues"))
}

func issueRef(ctx context.Context, q querier, seriesID int64) string {
	var name string
	var year int
	if err := q.QueryRowContext(ctx, `SELECT name, year_began FROM series WHERE id = ?`, seriesID).Scan(&name, &year); err != nil {
		return fmt.Sprintf("series %d", seriesID)
	}
	return fmt.Sprintf("%s (%d)", name, year)
}

// IssueKey identifies the issue an import attempts to fetch or create.
type IssueKey struct {
	SeriesID  int64
	Number    string
	StoreDate time.Time
	CoverDate time.Time
}

// GetOrCreateIssue returns the issue matching key, creating it (with a
// generated slug) when none matches. created reports which path ran. An
// issue with the same series and number but different dates yields
// ErrDuplicate.
func (s *Store) GetOrCreateIssue(ctx context.Context, key IssueKey) (issue *Issue, created bool, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+issueColumns+` FROM issues
         WHERE series_id = ? AND number = ? AND store_date IS ? AND cover_date = ?`,
		key.SeriesID, key.Number, nullableDate(key.StoreDate), nullableDate(key.CoverDate),
	)
	existing, err := scanIssue(row)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("get issue: %w", err)
	}

	issue = &Issue{
		SeriesID:  key.SeriesID,
		Number:    key.Number,
		StoreDate: key.StoreDate,
		CoverDate: key.CoverDate,
	}
	if err := s.CreateIssue(ctx, issue); err != nil {
		return nil, false, err
	}
	return issue, true, nil
}

// UpdateIssue persists the mutable fields of an existing issue. The slug is
// never rewritten.
func (s *Store) UpdateIssue(ctx context.Context, issue *Issue) error {
	if issue == nil || issue.ID == 0 {
		return errors.New("issue is not persisted")
	}
	now := s.now().UTC()
	res, err := s.execWithRetry(ctx,
		`UPDATE issues SET
            name = ?, cover_date = ?, store_date = ?, price = ?, sku = ?, upc = ?,
            page_count = ?, description = ?, modified_at = ?
         WHERE id = ?`,
		issue.Name,
		nullableDate(issue.CoverDate),
		nullableDate(issue.StoreDate),
		nullablePrice(issue.Price),
		issue.SKU,
		issue.UPC,
		nullableInt(issue.PageCount),
		issue.Desc,
		now.Format(time.RFC3339Nano),
		issue.ID,
	)
	if err != nil {
		return fmt.Errorf("update issue: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update issue: id %d not found", issue.ID)
	}
	issue.ModifiedAt = now
	return nil
}

// IssueByID fetches an issue by identifier, or nil when none exists.
func (s *Store) IssueByID(ctx context.Context, id int64) (*Issue, error) {
	return s.getIssue(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = ?`, id)
}

// IssueBySlug fetches an issue by slug, or nil when none exists.
func (s *Store) IssueBySlug(ctx context.Context, slug string) (*Issue, error) {
	return s.getIssue(ctx, `SELECT `+issueColumns+` FROM issues WHERE slug = ?`, slug)
}

func (s *Store) getIssue(ctx context.Context, query string, arg any) (*Issue, error) {
	issue, err := scanIssue(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get issue: %w", err)
	}
	return issue, nil
}

// IssueFilter narrows ListIssues.
type IssueFilter struct {
	SeriesID int64
	// StoreMonth, when set, limits results to issues on sale in that month.
	StoreMonth time.Time
	Limit      int
}

// ListIssues returns issues ordered by store date then number.
func (s *Store) ListIssues(ctx context.Context, filter IssueFilter) ([]Issue, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.SeriesID > 0 {
		clauses = append(clauses, "series_id = ?")
		args = append(args, filter.SeriesID)
	}
	if !filter.StoreMonth.IsZero() {
		start := time.Date(filter.StoreMonth.Year(), filter.StoreMonth.Month(), 1, 0, 0, 0, 0, time.UTC)
		clauses = append(clauses, "store_date >= ? AND store_date < ?")
		args = append(args, start.Format(DateLayout), start.AddDate(0, 1, 0).Format(DateLayout))
	}
	stmt := `SELECT ` + issueColumns + ` FROM issues`
	if len(clauses) > 0 {
		stmt += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	stmt += ` ORDER BY store_date, cover_date, id`
	if filter.Limit > 0 {
		stmt += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var out []Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		out = append(out, *issue)
	}
	return out, rows.Err()
}

// IssueDetail loads an issue by slug together with its series, credits and
// linked characters, teams and arcs. It returns nil when the slug is unknown.
func (s *Store) IssueDetail(ctx context.Context, slug string) (*IssueDetail, error) {
	issue, err := s.IssueBySlug(ctx, slug)
	if err != nil || issue == nil {
		return nil, err
	}
	series, err := s.SeriesByID(ctx, issue.SeriesID)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, fmt.Errorf("issue %s references missing series %d", issue.Slug, issue.SeriesID)
	}
	detail := &IssueDetail{Issue: *issue, Series: *series}
	if detail.Credits, err = s.CreditsForIssue(ctx, issue.ID); err != nil {
		return nil, err
	}
	for _, kind := range []EntityKind{KindCharacter, KindTeam, KindArc} {
		names, err := s.linkedNames(ctx, kind, issue.ID)
		if err != nil {
			return nil, err
		}
		switch kind {
		case KindCharacter:
			detail.Characters = names
		case KindTeam:
			detail.Teams = names
		case KindArc:
			detail.Arcs = names
		}
	}
	return detail, nil
}
