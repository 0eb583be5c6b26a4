package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// taglinkFixture extends the link fixture with an existing tag and link
// owned by ada that are not yet associated.
type taglinkFixture struct {
	*linkFixture
	tagID  string
	linkID string
}

func setupTagLinkFixture(t *testing.T) *taglinkFixture {
	t.Helper()

	fx := setupLinkFixture(t)

	resp := fx.api.Post("/api/v1/links",
		"Authorization: "+fx.adaToken,
		map[string]any{"link": "https://example.com", "tag": "reading"})
	require.Equal(t, http.StatusOK, resp.Code)

	var link LinkResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &link))

	resp = fx.api.Post("/api/v1/tags",
		"Authorization: "+fx.adaToken,
		map[string]any{"tag": "later"})
	require.Equal(t, http.StatusOK, resp.Code)

	var tag TagResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &tag))

	return &taglinkFixture{
		linkFixture: fx,
		tagID:       tag.TagID,
		linkID:      link.LinkID,
	}
}

func TestCreateTagLinkEndpoint(t *testing.T) {
	fx := setupTagLinkFixture(t)

	resp := fx.api.Post("/api/v1/taglinks",
		"Authorization: "+fx.adaToken,
		map[string]any{"tag_id": fx.tagID, "link_id": fx.linkID})
	require.Equal(t, http.StatusOK, resp.Code)

	var body TagLinkResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.Equal(t, fx.tagID, body.TagID)
	assert.Equal(t, fx.linkID, body.LinkID)
	assert.Equal(t, fx.adaID, body.AccountID)
}

func TestCreateTagLinkEndpointUnknownIDs(t *testing.T) {
	fx := setupTagLinkFixture(t)

	resp := fx.api.Post("/api/v1/taglinks",
		"Authorization: "+fx.adaToken,
		map[string]any{"tag_id": "tag-missing", "link_id": fx.linkID})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var apiErr APIError
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "Tag with tag_id tag-missing not found for account_id "+fx.adaID, apiErr.Message)

	resp = fx.api.Post("/api/v1/taglinks",
		"Authorization: "+fx.adaToken,
		map[string]any{"tag_id": fx.tagID, "link_id": "link-missing"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "Link with link_id link-missing not found for account_id "+fx.adaID, apiErr.Message)
}

func TestCreateTagLinkEndpointDuplicate(t *testing.T) {
	fx := setupTagLinkFixture(t)

	resp := fx.api.Post("/api/v1/taglinks",
		"Authorization: "+fx.adaToken,
		map[string]any{"tag_id": fx.tagID, "link_id": fx.linkID})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = fx.api.Post("/api/v1/taglinks",
		"Authorization: "+fx.adaToken,
		map[string]any{"tag_id": fx.tagID, "link_id": fx.linkID})
	require.Equal(t, http.StatusConflict, resp.Code)

	var apiErr APIError
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "TagLink with tag_id "+fx.tagID+" and link_id "+fx.linkID+" exists", apiErr.Message)
}

func TestListTagLinksEndpoint(t *testing.T) {
	fx := setupTagLinkFixture(t)

	resp := fx.api.Get("/api/v1/taglinks", "Authorization: "+fx.adaToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListTagLinksResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	require.Len(t, body.TagLinks, 1)

	resp = fx.api.Get("/api/v1/taglinks", "Authorization: "+fx.eveToken)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.Empty(t, body.TagLinks)

	resp = fx.api.Get("/api/v1/taglinks?link_id="+fx.linkID, "Authorization: "+fx.adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.Len(t, body.TagLinks, 1)
}

func TestDeleteTagLinksEndpoint(t *testing.T) {
	fx := setupTagLinkFixture(t)

	resp := fx.api.Post("/api/v1/taglinks",
		"Authorization: "+fx.adaToken,
		map[string]any{"tag_id": fx.tagID, "link_id": fx.linkID})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = fx.api.Delete("/api/v1/taglinks?link_id="+fx.linkID, "Authorization: "+fx.adaToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var body DeleteTagLinksResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Deleted)

	// Idempotent: a second delete removes nothing.
	resp = fx.api.Delete("/api/v1/taglinks?link_id="+fx.linkID, "Authorization: "+fx.adaToken)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.Equal(t, int64(0), body.Deleted)

	// The link and tags are untouched.
	resp = fx.api.Get("/api/v1/links/"+fx.linkID, "Authorization: "+fx.adaToken)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestDeleteTagLinksEndpointRequiresSelector(t *testing.T) {
	fx := setupTagLinkFixture(t)

	resp := fx.api.Delete("/api/v1/taglinks", "Authorization: "+fx.adaToken)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var apiErr APIError
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "At least one of the tag_id and link_id fields must be provided", apiErr.Message)
}

func TestDeleteTagLinksEndpointAdminWithoutAccountID(t *testing.T) {
	fx := setupTagLinkFixture(t)

	resp := fx.api.Delete("/api/v1/taglinks?link_id="+fx.linkID, "Authorization: "+fx.adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var body DeleteTagLinksResponse
	require.NoError(t, unmarshalBody(resp.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Deleted)
}
