package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkstashapp/linkstash-server/internal/auth"
	"github.com/linkstashapp/linkstash-server/internal/errors"
)

func setupAuthTest(t *testing.T) *AuthService {
	t.Helper()

	s, _ := setupTest(t)
	createTestAdmin(t, s, "user-1", "root", "admin-secret")
	createTestAccount(t, s, "acct-1", "ada@example.com", "account-secret")

	tokenService, err := auth.NewTokenService(testTokenKey, 30*time.Minute)
	require.NoError(t, err)

	return NewAuthService(s, tokenService, testLogger())
}

func TestIssueTokenAdmin(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	resp, err := svc.IssueToken(ctx, IssueTokenRequest{
		Username: "root",
		Password: "admin-secret",
		Scopes:   []string{"admin"},
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.True(t, resp.Expires.After(time.Now()))

	claims, err := svc.VerifyAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "root", claims.Subject)
	assert.Equal(t, auth.ScopeAdmin, claims.Scope)
	assert.Empty(t, claims.AccountID)
}

func TestIssueTokenAccount(t *testing.T) {
	svc := setupAuthTest(t)

	resp, err := svc.IssueToken(context.Background(), IssueTokenRequest{
		Username: "ada@example.com",
		Password: "account-secret",
		Scopes:   []string{"account"},
	})
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Subject)
	assert.Equal(t, auth.ScopeAccount, claims.Scope)
	assert.Equal(t, "acct-1", claims.AccountID)
}

func TestIssueTokenScopeCount(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		scopes []string
	}{
		{"zero scopes", nil},
		{"two scopes", []string{"admin", "account"}},
		{"unknown scope", []string{"superuser"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.IssueToken(ctx, IssueTokenRequest{
				Username: "root",
				Password: "admin-secret",
				Scopes:   tc.scopes,
			})
			assert.ErrorIs(t, err, errors.ErrInvalidScope)
		})
	}
}

func TestIssueTokenBadCredentials(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
		scope    string
	}{
		{"unknown admin", "nobody", "admin-secret", "admin"},
		{"wrong admin password", "root", "wrong", "admin"},
		{"unknown account", "ghost@example.com", "account-secret", "account"},
		{"wrong account password", "ada@example.com", "wrong", "account"},
		{"admin creds under account scope", "root", "admin-secret", "account"},
		{"account creds under admin scope", "ada@example.com", "account-secret", "admin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.IssueToken(ctx, IssueTokenRequest{
				Username: tc.username,
				Password: tc.password,
				Scopes:   []string{tc.scope},
			})
			// Same generic failure regardless of which check tripped.
			require.ErrorIs(t, err, errors.ErrAuthenticationFailed)
			assert.EqualError(t, err, "Could not validate credentials")
		})
	}
}

func TestIssueTokenMissingFields(t *testing.T) {
	svc := setupAuthTest(t)

	_, err := svc.IssueToken(context.Background(), IssueTokenRequest{
		Scopes: []string{"admin"},
	})
	assert.ErrorIs(t, err, errors.ErrValidation)
}
