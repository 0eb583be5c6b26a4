package api

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/linkstashapp/linkstash-server/internal/auth"
	"github.com/linkstashapp/linkstash-server/internal/config"
	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/service"
	"github.com/linkstashapp/linkstash-server/internal/store"
	"github.com/linkstashapp/linkstash-server/internal/store/sqlite"
)

// testServer wraps the API server with the pieces tests need to mint
// identities and tokens directly.
type testServer struct {
	*Server
	api   humatest.TestAPI
	store store.Store
}

// setupTestServer creates a fully wired server over a temp-dir database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()

	st, err := sqlite.Open(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(hex.EncodeToString(authKey), 30*time.Minute)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	guard := auth.NewGuard(st)

	services := &Services{
		Auth:    service.NewAuthService(st, tokenService, logger),
		Account: service.NewAccountService(st, guard, logger),
		Link:    service.NewLinkService(st, guard, logger),
		Tag:     service.NewTagService(st, guard, logger),
		TagLink: service.NewTagLinkService(st, guard, logger),
	}

	cfg := &config.Config{
		Server: config.ServerConfig{CORSOrigins: []string{"*"}},
	}

	s := NewServer(cfg, st, services, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
		store:  st,
	}
}

func unmarshalBody(b []byte, v any) error {
	return json.Unmarshal(b, v)
}

// seedAdmin provisions an admin user directly in the store.
func (ts *testServer) seedAdmin(t *testing.T, username, password string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, ts.store.CreateAdminUser(context.Background(), &domain.AdminUser{
		ID:           "user-" + username,
		Username:     username,
		PasswordHash: hash,
	}))
}

// issueToken obtains an access token through the token endpoint.
func (ts *testServer) issueToken(t *testing.T, username, password, scope string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/token", map[string]any{
		"username": username,
		"password": password,
		"scopes":   []string{scope},
	})
	require.Equal(t, http.StatusOK, resp.Code, "token issuance failed: %s", resp.Body.String())

	var body TokenResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	return "Bearer " + body.AccessToken
}

// createAccount provisions an account through the API and returns its id.
func (ts *testServer) createAccount(t *testing.T, adminToken, email, password string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/accounts",
		"Authorization: "+adminToken,
		map[string]any{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.Code, "account creation failed: %s", resp.Body.String())

	var body AccountResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	return body.AccountID
}
