package sqlite

import (
	"context"
	"database/sql"

	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/store"
)

const adminUserColumns = `id, username, password_hash`

func scanAdminUser(scanner interface{ Scan(dest ...any) error }) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := scanner.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateAdminUser inserts a new admin user.
// Returns store.ErrAlreadyExists on duplicate username.
func (s *Store) CreateAdminUser(ctx context.Context, u *domain.AdminUser) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admin_users (id, username, password_hash)
		VALUES (?, ?, ?)`,
		u.ID,
		u.Username,
		u.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetAdminUserByUsername retrieves an admin user by username.
// Returns store.ErrNotFound if no such user exists.
func (s *Store) GetAdminUserByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+adminUserColumns+` FROM admin_users WHERE username = ?`, username)

	u, err := scanAdminUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
