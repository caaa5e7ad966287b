package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"comicsdb/internal/textutil"
)

// CreateCreator inserts a creator, deriving its slug from the name when unset.
func (s *Store) CreateCreator(ctx context.Context, creator *Creator) error {
	if creator == nil || strings.TrimSpace(creator.Name) == "" {
		return errors.New("creator name is required")
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if creator.Slug == "" {
			slug, err := uniqueSlug(ctx, tx, "creators", creator.Name)
			if err != nil {
				return err
			}
			creator.Slug = slug
		}
		ts := s.timestamp()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO creators (name, name_folded, slug, description, created_at, modified_at) VALUES (?, ?, ?, ?, ?, ?)`,
			creator.Name, textutil.Fold(creator.Name), creator.Slug, creator.Desc, ts, ts,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: creator slug %q", ErrDuplicate, creator.Slug)
			}
			return fmt.Errorf("insert creator: %w", err)
		}
		creator.ID, err = res.LastInsertId()
		return err
	})
}

// CreatorBySlug returns the creator with slug, or nil when none exists.
func (s *Store) CreatorBySlug(ctx context.Context, slug string) (*Creator, error) {
	var c Creator
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, slug, description FROM creators WHERE slug = ?`, slug,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Desc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get creator: %w", err)
	}
	return &c, nil
}

// SearchCreators returns creators whose names contain every fragment,
// ignoring case and accents. No fragments lists every creator.
func (s *Store) SearchCreators(ctx context.Context, fragments ...string) ([]Creator, error) {
	var (
		clauses []string
		args    []any
	)
	for _, fragment := range fragments {
		if folded := textutil.Fold(fragment); folded != "" {
			clauses = append(clauses, "instr(name_folded, ?) > 0")
			args = append(args, folded)
		}
	}
	stmt := `SELECT id, name, slug, description FROM creators`
	if len(clauses) > 0 {
		stmt += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	stmt += ` ORDER BY name COLLATE NOCASE, id`

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("search creators: %w", err)
	}
	defer rows.Close()

	var out []Creator
	for rows.Next() {
		var c Creator
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Desc); err != nil {
			return nil, fmt.Errorf("scan creator: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateEntity inserts a character, team or arc.
func (s *Store) CreateEntity(ctx context.Context, kind EntityKind, entity *Entity) error {
	table, err := kind.table()
	if err != nil {
		return err
	}
	if entity == nil || strings.TrimSpace(entity.Name) == "" {
		return fmt.Errorf("%s name is required", kind)
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if entity.Slug == "" {
			slug, err := uniqueSlug(ctx, tx, table, entity.Name)
			if err != nil {
				return err
			}
			entity.Slug = slug
		}
		ts := s.timestamp()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO `+table+` (name, name_folded, slug, description, created_at, modified_at) VALUES (?, ?, ?, ?, ?, ?)`,
			entity.Name, textutil.Fold(entity.Name), entity.Slug, entity.Desc, ts, ts,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s slug %q", ErrDuplicate, kind, entity.Slug)
			}
			return fmt.Errorf("insert %s: %w", kind, err)
		}
		entity.ID, err = res.LastInsertId()
		return err
	})
}

// EntityByName returns the oldest character, team or arc whose name equals
// name ignoring case, or nil when none matches. Accents must match exactly;
// the folded column only narrows the scan.
func (s *Store) EntityByName(ctx context.Context, kind EntityKind, name string) (*Entity, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, slug, description FROM `+table+` WHERE name_folded = ? ORDER BY id`,
		textutil.Fold(name),
	)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	defer rows.Close()

	want := strings.TrimSpace(name)
	for rows.Next() {
		var e Entity
		if err := rows.Scan(&e.ID, &e.Name, &e.Slug, &e.Desc); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		if strings.EqualFold(strings.TrimSpace(e.Name), want) {
			return &e, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return nil, nil
}

// LinkEntity attaches a character, team or arc to an issue. Linking twice is
// a no-op.
func (s *Store) LinkEntity(ctx context.Context, kind EntityKind, issueID, entityID int64) error {
	table, column, err := kind.linkTable()
	if err != nil {
		return err
	}
	if _, err := s.execWithRetry(ctx,
		`INSERT OR IGNORE INTO `+table+` (issue_id, `+column+`) VALUES (?, ?)`, issueID, entityID,
	); err != nil {
		return fmt.Errorf("link %s: %w", kind, err)
	}
	return nil
}

func (s *Store) linkedNames(ctx context.Context, kind EntityKind, issueID int64) ([]string, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}
	link, column, err := kind.linkTable()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.name FROM `+table+` e JOIN `+link+` l ON l.`+column+` = e.id
         WHERE l.issue_id = ? ORDER BY e.name COLLATE NOCASE`, issueID)
	if err != nil {
		return nil, fmt.Errorf("list %s links: %w", kind, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
