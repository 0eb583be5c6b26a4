package sqlite

import (
	"context"
	"database/sql"

	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/store"
)

const tagColumns = `id, account_id, name`

func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	err := scanner.Scan(
		&t.ID,
		&t.AccountID,
		&t.Name,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTag inserts a new tag.
// Returns store.ErrAlreadyExists when the account already has a tag with
// that name.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, account_id, name)
		VALUES (?, ?, ?)`,
		t.ID,
		t.AccountID,
		t.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetTag retrieves a tag by id under the effective filter.
// A tag owned by another account is reported as store.ErrNotFound.
func (s *Store) GetTag(ctx context.Context, tagID string, filter domain.AccountFilter) (*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE id = ?`
	args := []any{tagID}
	if filter.Bounded() {
		query += ` AND account_id = ?`
		args = append(args, filter.AccountID())
	}

	t, err := scanTag(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTagByName retrieves an account's tag by name. Name matching is exact
// and case-sensitive.
func (s *Store) GetTagByName(ctx context.Context, name, accountID string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE account_id = ? AND name = ?`,
		accountID, name)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTags returns tags matching the optional name filter under the
// effective filter.
func (s *Store) ListTags(ctx context.Context, name string, filter domain.AccountFilter) ([]*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags`
	var clauses []string
	var args []any

	if name != "" {
		clauses = append(clauses, "name = ?")
		args = append(args, name)
	}
	if filter.Bounded() {
		clauses = append(clauses, "account_id = ?")
		args = append(args, filter.AccountID())
	}
	query += whereClause(clauses) + ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

// DeleteTag removes a tag row.
// Returns store.ErrNotFound if no row was deleted.
func (s *Store) DeleteTag(ctx context.Context, tagID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, tagID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteTagsByAccount removes every tag owned by the account. Deleting
// nothing is not an error.
func (s *Store) DeleteTagsByAccount(ctx context.Context, accountID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE account_id = ?`, accountID)
	return err
}
