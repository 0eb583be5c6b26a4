package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccountEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedAdmin(t, "root", "admin-secret")
	adminToken := ts.issueToken(t, "root", "admin-secret", "admin")

	resp := ts.api.Post("/api/v1/accounts",
		"Authorization: "+adminToken,
		map[string]any{"email": "ada@example.com", "password": "account-secret"})
	require.Equal(t, http.StatusOK, resp.Code)

	var body AccountResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccountID)
	assert.Equal(t, "ada@example.com", body.Email)
	assert.False(t, body.CreatedAt.IsZero())
}

func TestCreateAccountEndpointDuplicate(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedAdmin(t, "root", "admin-secret")
	adminToken := ts.issueToken(t, "root", "admin-secret", "admin")
	ts.createAccount(t, adminToken, "ada@example.com", "account-secret")

	resp := ts.api.Post("/api/v1/accounts",
		"Authorization: "+adminToken,
		map[string]any{"email": "ada@example.com", "password": "other-secret"})
	require.Equal(t, http.StatusConflict, resp.Code)

	var apiErr APIError
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "CONFLICT", apiErr.Code)
}

func TestCreateAccountEndpointValidation(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedAdmin(t, "root", "admin-secret")
	adminToken := ts.issueToken(t, "root", "admin-secret", "admin")

	for name, body := range map[string]map[string]any{
		"bad email":      {"email": "not-an-email", "password": "account-secret"},
		"short password": {"email": "ada@example.com", "password": "short"},
	} {
		t.Run(name, func(t *testing.T) {
			resp := ts.api.Post("/api/v1/accounts", "Authorization: "+adminToken, body)
			require.Equal(t, http.StatusBadRequest, resp.Code)
		})
	}
}

func TestCreateAccountEndpointRequiresAdminScope(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedAdmin(t, "root", "admin-secret")
	adminToken := ts.issueToken(t, "root", "admin-secret", "admin")
	ts.createAccount(t, adminToken, "ada@example.com", "account-secret")
	accountToken := ts.issueToken(t, "ada@example.com", "account-secret", "account")

	resp := ts.api.Post("/api/v1/accounts",
		"Authorization: "+accountToken,
		map[string]any{"email": "eve@example.com", "password": "account-secret"})
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	var apiErr APIError
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "INSUFFICIENT_SCOPE", apiErr.Code)
}

func TestGetAccountEndpointScoping(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedAdmin(t, "root", "admin-secret")
	adminToken := ts.issueToken(t, "root", "admin-secret", "admin")
	adaID := ts.createAccount(t, adminToken, "ada@example.com", "account-secret")
	eveID := ts.createAccount(t, adminToken, "eve@example.com", "account-secret")
	adaToken := ts.issueToken(t, "ada@example.com", "account-secret", "account")

	resp := ts.api.Get("/api/v1/accounts/"+adaID, "Authorization: "+adaToken)
	require.Equal(t, http.StatusOK, resp.Code)

	// Foreign accounts look like they do not exist.
	resp = ts.api.Get("/api/v1/accounts/"+eveID, "Authorization: "+adaToken)
	require.Equal(t, http.StatusNotFound, resp.Code)

	var apiErr APIError
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "Account with account_id '"+eveID+"' not found", apiErr.Message)

	resp = ts.api.Get("/api/v1/accounts/"+eveID, "Authorization: "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestListAccountsEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedAdmin(t, "root", "admin-secret")
	adminToken := ts.issueToken(t, "root", "admin-secret", "admin")
	adaID := ts.createAccount(t, adminToken, "ada@example.com", "account-secret")
	ts.createAccount(t, adminToken, "eve@example.com", "account-secret")
	adaToken := ts.issueToken(t, "ada@example.com", "account-secret", "account")

	resp := ts.api.Get("/api/v1/accounts", "Authorization: "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListAccountsResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.Len(t, body.Accounts, 2)

	resp = ts.api.Get("/api/v1/accounts", "Authorization: "+adaToken)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	require.Len(t, body.Accounts, 1)
	assert.Equal(t, adaID, body.Accounts[0].AccountID)

	// Filtering by a foreign email under account scope yields nothing.
	resp = ts.api.Get("/api/v1/accounts?email=eve%40example.com", "Authorization: "+adaToken)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.Empty(t, body.Accounts)
}

func TestDeleteAccountEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedAdmin(t, "root", "admin-secret")
	adminToken := ts.issueToken(t, "root", "admin-secret", "admin")
	adaID := ts.createAccount(t, adminToken, "ada@example.com", "account-secret")
	adaToken := ts.issueToken(t, "ada@example.com", "account-secret", "account")

	resp := ts.api.Post("/api/v1/links",
		"Authorization: "+adaToken,
		map[string]any{"link": "https://example.com", "tag": "reading"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/accounts/"+adaID, "Authorization: "+adminToken)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/accounts/"+adaID, "Authorization: "+adminToken)
	require.Equal(t, http.StatusNotFound, resp.Code)

	// Tokens for the deleted account stop working.
	resp = ts.api.Get("/api/v1/links", "Authorization: "+adaToken)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}
