package sqlite

import (
	"context"

	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/store"
)

const tagLinkColumns = `tag_id, link_id, account_id`

func scanTagLink(scanner interface{ Scan(dest ...any) error }) (*domain.TagLink, error) {
	var tl domain.TagLink
	err := scanner.Scan(
		&tl.TagID,
		&tl.LinkID,
		&tl.AccountID,
	)
	if err != nil {
		return nil, err
	}
	return &tl, nil
}

// CreateTagLink inserts a tag/link association.
// Returns store.ErrAlreadyExists when the pair is already joined.
func (s *Store) CreateTagLink(ctx context.Context, tl *domain.TagLink) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO taglinks (tag_id, link_id, account_id)
		VALUES (?, ?, ?)`,
		tl.TagID,
		tl.LinkID,
		tl.AccountID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ListTagLinks returns associations matching the optional tag and link ids
// under the effective filter.
func (s *Store) ListTagLinks(ctx context.Context, tagID, linkID string, filter domain.AccountFilter) ([]*domain.TagLink, error) {
	query := `SELECT ` + tagLinkColumns + ` FROM taglinks`
	var clauses []string
	var args []any

	if tagID != "" {
		clauses = append(clauses, "tag_id = ?")
		args = append(args, tagID)
	}
	if linkID != "" {
		clauses = append(clauses, "link_id = ?")
		args = append(args, linkID)
	}
	if filter.Bounded() {
		clauses = append(clauses, "account_id = ?")
		args = append(args, filter.AccountID())
	}
	query += whereClause(clauses) + ` ORDER BY tag_id ASC, link_id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tagLinks := []*domain.TagLink{}
	for rows.Next() {
		tl, err := scanTagLink(rows)
		if err != nil {
			return nil, err
		}
		tagLinks = append(tagLinks, tl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tagLinks, nil
}

// DeleteTagLinks removes every association matching the optional tag and
// link ids under the effective filter and reports how many rows went.
// Matching nothing deletes zero rows and is not an error.
func (s *Store) DeleteTagLinks(ctx context.Context, tagID, linkID string, filter domain.AccountFilter) (int64, error) {
	query := `DELETE FROM taglinks`
	var clauses []string
	var args []any

	if tagID != "" {
		clauses = append(clauses, "tag_id = ?")
		args = append(args, tagID)
	}
	if linkID != "" {
		clauses = append(clauses, "link_id = ?")
		args = append(args, linkID)
	}
	if filter.Bounded() {
		clauses = append(clauses, "account_id = ?")
		args = append(args, filter.AccountID())
	}
	query += whereClause(clauses)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
