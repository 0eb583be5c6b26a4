package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/store"
)

const linkColumns = `id, account_id, url`

func scanLink(scanner interface{ Scan(dest ...any) error }) (*domain.Link, error) {
	var l domain.Link
	err := scanner.Scan(
		&l.ID,
		&l.AccountID,
		&l.URL,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateLink inserts the link and its initial taglink in a single transaction.
// If the taglink insert fails the link row is rolled back with it; a link row
// is never left behind without at least one taglink.
func (s *Store) CreateLink(ctx context.Context, link *domain.Link, tagLink *domain.TagLink) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO links (id, account_id, url)
		VALUES (?, ?, ?)`,
		link.ID,
		link.AccountID,
		link.URL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO taglinks (tag_id, link_id, account_id)
		VALUES (?, ?, ?)`,
		tagLink.TagID,
		tagLink.LinkID,
		tagLink.AccountID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	return tx.Commit()
}

// GetLink retrieves a link by id under the effective filter.
// A link owned by another account is reported as store.ErrNotFound.
func (s *Store) GetLink(ctx context.Context, linkID string, filter domain.AccountFilter) (*domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE id = ?`
	args := []any{linkID}
	if filter.Bounded() {
		query += ` AND account_id = ?`
		args = append(args, filter.AccountID())
	}

	l, err := scanLink(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListLinks returns links matching the query under the effective filter.
// A TagName is resolved to tag ids first; when it matches no tag the result
// is empty without touching the links table. TagID and resolved tag names
// both narrow through the taglinks join.
func (s *Store) ListLinks(ctx context.Context, q store.LinkQuery, filter domain.AccountFilter) ([]*domain.Link, error) {
	tagIDs := []string{}
	if q.TagID != "" {
		tagIDs = append(tagIDs, q.TagID)
	}
	if q.TagName != "" {
		named, err := s.ListTags(ctx, q.TagName, filter)
		if err != nil {
			return nil, err
		}
		if len(named) == 0 {
			return []*domain.Link{}, nil
		}
		for _, t := range named {
			tagIDs = append(tagIDs, t.ID)
		}
	}

	var clauses []string
	var args []any

	query := `SELECT ` + prefixColumns("l", linkColumns) + ` FROM links l`
	if len(tagIDs) > 0 {
		query += ` JOIN taglinks tl ON tl.link_id = l.id`
		clauses = append(clauses, `tl.tag_id IN (`+placeholders(len(tagIDs))+`)`)
		for _, id := range tagIDs {
			args = append(args, id)
		}
	}
	if filter.Bounded() {
		clauses = append(clauses, "l.account_id = ?")
		args = append(args, filter.AccountID())
	}
	query += whereClause(clauses)
	if len(tagIDs) > 0 {
		query += ` GROUP BY l.id`
	}
	query += ` ORDER BY l.id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []*domain.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return links, nil
}

// DeleteLink removes a link row.
// Returns store.ErrNotFound if no row was deleted.
func (s *Store) DeleteLink(ctx context.Context, linkID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM links WHERE id = ?`, linkID)
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

// DeleteLinksByAccount removes every link owned by the account. Deleting
// nothing is not an error.
func (s *Store) DeleteLinksByAccount(ctx context.Context, accountID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM links WHERE account_id = ?`, accountID)
	return err
}
