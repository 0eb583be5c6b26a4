package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linkFixture is the common two-account setup for link and tag tests.
type linkFixture struct {
	*testServer
	adminToken string
	adaToken   string
	adaID      string
	eveToken   string
	eveID      string
}

func setupLinkFixture(t *testing.T) *linkFixture {
	t.Helper()

	ts := setupTestServer(t)
	ts.seedAdmin(t, "root", "admin-secret")
	adminToken := ts.issueToken(t, "root", "admin-secret", "admin")
	adaID := ts.createAccount(t, adminToken, "ada@example.com", "account-secret")
	eveID := ts.createAccount(t, adminToken, "eve@example.com", "account-secret")

	return &linkFixture{
		testServer: ts,
		adminToken: adminToken,
		adaToken:   ts.issueToken(t, "ada@example.com", "account-secret", "account"),
		adaID:      adaID,
		eveToken:   ts.issueToken(t, "eve@example.com", "account-secret", "account"),
		eveID:      eveID,
	}
}

func TestCreateLinkEndpoint(t *testing.T) {
	fx := setupLinkFixture(t)

	resp := fx.api.Post("/api/v1/links",
		"Authorization: "+fx.adaToken,
		map[string]any{"link": "https://example.com", "tag": "reading"})
	require.Equal(t, http.StatusOK, resp.Code)

	var body LinkResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.LinkID)
	assert.Equal(t, fx.adaID, body.AccountID)
	assert.Equal(t, "https://example.com", body.Link)

	// The named tag was created alongside the link.
	resp = fx.api.Get("/api/v1/tags?tag=reading", "Authorization: "+fx.adaToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var tags ListTagsResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &tags))
	require.Len(t, tags.Tags, 1)
}

func TestCreateLinkEndpointTagChoice(t *testing.T) {
	fx := setupLinkFixture(t)

	for name, body := range map[string]map[string]any{
		"both":    {"link": "https://example.com", "tag": "reading", "tag_id": "tag-x"},
		"neither": {"link": "https://example.com"},
	} {
		t.Run(name, func(t *testing.T) {
			resp := fx.api.Post("/api/v1/links", "Authorization: "+fx.adaToken, body)
			require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

			var apiErr APIError
			require.NoError(t, unmarshalBody(resp.Body.Bytes(), &apiErr))
			assert.Equal(t, "Exactly one of the tag and tag_id fields must be provided", apiErr.Message)
		})
	}
}

func TestCreateLinkEndpointForeignTagID(t *testing.T) {
	fx := setupLinkFixture(t)

	resp := fx.api.Post("/api/v1/tags",
		"Authorization: "+fx.eveToken,
		map[string]any{"tag": "private"})
	require.Equal(t, http.StatusOK, resp.Code)

	var tag TagResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &tag))

	resp = fx.api.Post("/api/v1/links",
		"Authorization: "+fx.adaToken,
		map[string]any{"link": "https://example.com", "tag_id": tag.TagID})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var apiErr APIError
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "Tag with tag_id "+tag.TagID+" not found for account_id "+fx.adaID, apiErr.Message)
}

func TestCreateLinkEndpointAdminAccountID(t *testing.T) {
	fx := setupLinkFixture(t)

	resp := fx.api.Post("/api/v1/links",
		"Authorization: "+fx.adminToken,
		map[string]any{"link": "https://example.com", "tag": "reading"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var apiErr APIError
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "The account_id field is required for the admin scope", apiErr.Message)

	resp = fx.api.Post("/api/v1/links",
		"Authorization: "+fx.adminToken,
		map[string]any{"link": "https://example.com", "tag": "reading", "account_id": fx.adaID})
	require.Equal(t, http.StatusOK, resp.Code)

	var body LinkResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.Equal(t, fx.adaID, body.AccountID)
}

func TestCreateLinkEndpointForeignAccountID(t *testing.T) {
	fx := setupLinkFixture(t)

	resp := fx.api.Post("/api/v1/links",
		"Authorization: "+fx.adaToken,
		map[string]any{"link": "https://example.com", "tag": "reading", "account_id": fx.eveID})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var apiErr APIError
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "The account_id field should not be provided for account scope", apiErr.Message)
}

func TestGetLinkEndpointScoping(t *testing.T) {
	fx := setupLinkFixture(t)

	resp := fx.api.Post("/api/v1/links",
		"Authorization: "+fx.adaToken,
		map[string]any{"link": "https://example.com", "tag": "reading"})
	require.Equal(t, http.StatusOK, resp.Code)

	var created LinkResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &created))

	resp = fx.api.Get("/api/v1/links/"+created.LinkID, "Authorization: "+fx.adaToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = fx.api.Get("/api/v1/links/"+created.LinkID, "Authorization: "+fx.eveToken)
	require.Equal(t, http.StatusNotFound, resp.Code)

	var apiErr APIError
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "Link with link_id "+created.LinkID+" not found", apiErr.Message)

	resp = fx.api.Get("/api/v1/links/"+created.LinkID, "Authorization: "+fx.adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestListLinksEndpointByTag(t *testing.T) {
	fx := setupLinkFixture(t)

	for _, l := range []struct{ url, tag string }{
		{"https://one.example.com", "reading"},
		{"https://two.example.com", "reading"},
		{"https://three.example.com", "later"},
	} {
		resp := fx.api.Post("/api/v1/links",
			"Authorization: "+fx.adaToken,
			map[string]any{"link": l.url, "tag": l.tag})
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := fx.api.Get("/api/v1/links?tag=reading", "Authorization: "+fx.adaToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListLinksResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.Len(t, body.Links, 2)

	resp = fx.api.Get("/api/v1/links?tag=missing", "Authorization: "+fx.adaToken)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.Empty(t, body.Links)

	resp = fx.api.Get("/api/v1/links", "Authorization: "+fx.adaToken)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.Len(t, body.Links, 3)
}

func TestDeleteLinkEndpoint(t *testing.T) {
	fx := setupLinkFixture(t)

	resp := fx.api.Post("/api/v1/links",
		"Authorization: "+fx.adaToken,
		map[string]any{"link": "https://example.com", "tag": "reading"})
	require.Equal(t, http.StatusOK, resp.Code)

	var created LinkResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &created))

	resp = fx.api.Delete("/api/v1/links/"+created.LinkID, "Authorization: "+fx.eveToken)
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = fx.api.Delete("/api/v1/links/"+created.LinkID, "Authorization: "+fx.adaToken)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = fx.api.Get("/api/v1/links/"+created.LinkID, "Authorization: "+fx.adaToken)
	require.Equal(t, http.StatusNotFound, resp.Code)

	// The tag survives its last link.
	resp = fx.api.Get("/api/v1/tags?tag=reading", "Authorization: "+fx.adaToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var tags ListTagsResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &tags))
	assert.Len(t, tags.Tags, 1)
}
