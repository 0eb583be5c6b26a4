package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linkstashapp/linkstash-server/internal/auth"
	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/store"
	"github.com/linkstashapp/linkstash-server/internal/store/sqlite"
)

const testTokenKey = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"

// setupTest creates a temp-dir sqlite store and a guard wired to it.
func setupTest(t *testing.T) (store.Store, *auth.Guard) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.Open(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, auth.NewGuard(s)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// createTestAccount inserts an account with a real argon2 hash of password.
func createTestAccount(t *testing.T, s store.Store, id, email, password string) *domain.Account {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	account := &domain.Account{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.CreateAccount(context.Background(), account))
	return account
}

// createTestAdmin inserts an admin user with a real argon2 hash of password.
func createTestAdmin(t *testing.T, s store.Store, id, username, password string) *domain.AdminUser {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &domain.AdminUser{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
	}
	require.NoError(t, s.CreateAdminUser(context.Background(), user))
	return user
}

// adminClaims returns verified-token claims for an admin subject.
func adminClaims(username string) *auth.Claims {
	return &auth.Claims{
		Subject:   username,
		Scope:     auth.ScopeAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// accountClaims returns verified-token claims bound to an account.
func accountClaims(email, accountID string) *auth.Claims {
	return &auth.Claims{
		Subject:   email,
		Scope:     auth.ScopeAccount,
		AccountID: accountID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}
