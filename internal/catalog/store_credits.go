package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// CreateRole inserts a role. Names are unique ignoring case.
func (s *Store) CreateRole(ctx context.Context, role *Role) error {
	if role == nil || strings.TrimSpace(role.Name) == "" {
		return errors.New("role name is required")
	}
	role.Name = strings.ToLower(strings.TrimSpace(role.Name))
	res, err := s.execWithRetry(ctx,
		`INSERT INTO roles (name, notes, sort_order) VALUES (?, ?, (SELECT COALESCE(MAX(sort_order), 0) + 10 FROM roles))`,
		role.Name, role.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: role %q", ErrDuplicate, role.Name)
		}
		return fmt.Errorf("insert role: %w", err)
	}
	role.ID, err = res.LastInsertId()
	return err
}

// RoleByName returns the role named name ignoring case, or nil when none exists.
func (s *Store) RoleByName(ctx context.Context, name string) (*Role, error) {
	var r Role
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, notes FROM roles WHERE name = ? COLLATE NOCASE`, strings.TrimSpace(name),
	).Scan(&r.ID, &r.Name, &r.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &r, nil
}

// ListRoles returns all roles in display order.
func (s *Store) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, notes FROM roles ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var out []Role
	for rows.Next() {
		var r Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Notes); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetOrCreateCredit returns the credit linking issueID and creatorID,
// creating it when absent. created reports whether a row was inserted.
func (s *Store) GetOrCreateCredit(ctx context.Context, issueID, creatorID int64) (credit *Credit, created bool, err error) {
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		credit, created = nil, false
		var id int64
		scanErr := tx.QueryRowContext(ctx,
			`SELECT id FROM credits WHERE issue_id = ? AND creator_id = ?`, issueID, creatorID,
		).Scan(&id)
		switch {
		case scanErr == nil:
		case errors.Is(scanErr, sql.ErrNoRows):
			res, execErr := tx.ExecContext(ctx,
				`INSERT INTO credits (issue_id, creator_id) VALUES (?, ?)`, issueID, creatorID,
			)
			if execErr != nil {
				return fmt.Errorf("insert credit: %w", execErr)
			}
			if id, execErr = res.LastInsertId(); execErr != nil {
				return execErr
			}
			created = true
		default:
			return fmt.Errorf("get credit: %w", scanErr)
		}
		credit = &Credit{ID: id, IssueID: issueID, CreatorID: creatorID}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return credit, created, nil
}

// AddCreditRole adds roleID to the credit's role set. Existing roles are kept.
func (s *Store) AddCreditRole(ctx context.Context, creditID, roleID int64) error {
	if _, err := s.execWithRetry(ctx,
		`INSERT OR IGNORE INTO credit_roles (credit_id, role_id) VALUES (?, ?)`, creditID, roleID,
	); err != nil {
		return fmt.Errorf("add credit role: %w", err)
	}
	return nil
}

// CreditsForIssue lists an issue's credits with creator names and roles.
func (s *Store) CreditsForIssue(ctx context.Context, issueID int64) ([]Credit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.issue_id, c.creator_id, cr.name, COALESCE(r.name, '')
         FROM credits c
         JOIN creators cr ON cr.id = c.creator_id
         LEFT JOIN credit_roles x ON x.credit_id = c.id
         LEFT JOIN roles r ON r.id = x.role_id
         WHERE c.issue_id = ?
         ORDER BY c.id, r.sort_order, r.id`, issueID)
	if err != nil {
		return nil, fmt.Errorf("list credits: %w", err)
	}
	defer rows.Close()

	var out []Credit
	for rows.Next() {
		var (
			credit Credit
			role   string
		)
		if err := rows.Scan(&credit.ID, &credit.IssueID, &credit.CreatorID, &credit.CreatorName, &role); err != nil {
			return nil, fmt.Errorf("scan credit: %w", err)
		}
		if n := len(out); n > 0 && out[n-1].ID == credit.ID {
			out[n-1].Roles = append(out[n-1].Roles, role)
			continue
		}
		if role != "" {
			credit.Roles = []string{role}
		}
		out = append(out, credit)
	}
	return out, rows.Err()
}

// Stats counts rows per catalog table.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	tables := []string{"publishers", "series", "issues", "creators", "characters", "teams", "arcs", "roles", "credits"}
	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		parts = append(parts, `SELECT '`+table+`', COUNT(1) FROM `+table)
	}
	rows, err := s.db.QueryContext(ctx, strings.Join(parts, " UNION ALL "))
	if err != nil {
		return nil, fmt.Errorf("catalog stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int, len(tables))
	for rows.Next() {
		var (
			table string
			count int
		)
		if err := rows.Scan(&table, &count); err != nil {
			return nil, err
		}
		stats[table] = count
	}
	return stats, rows.Err()
}
