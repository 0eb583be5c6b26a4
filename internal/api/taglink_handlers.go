package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/errors"
	"github.com/linkstashapp/linkstash-server/internal/service"
)

func (s *Server) registerTagLinkRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createTagLink",
		Method:      http.MethodPost,
		Path:        "/api/v1/taglinks",
		Summary:     "Create taglink",
		Description: "Associates an existing tag with an existing link",
		Tags:        []string{"TagLinks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateTagLink)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTagLinks",
		Method:      http.MethodGet,
		Path:        "/api/v1/taglinks",
		Summary:     "List taglinks",
		Description: "Returns tag/link associations visible to the caller",
		Tags:        []string{"TagLinks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListTagLinks)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTagLinks",
		Method:      http.MethodDelete,
		Path:        "/api/v1/taglinks",
		Summary:     "Delete taglinks",
		Description: "Deletes associations matching tag_id and/or link_id; idempotent",
		Tags:        []string{"TagLinks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteTagLinks)
}

// === DTOs ===

// TagLinkResponse contains taglink data in API responses.
type TagLinkResponse struct {
	TagID     string `json:"tag_id" doc:"Tag ID"`
	LinkID    string `json:"link_id" doc:"Link ID"`
	AccountID string `json:"account_id" doc:"Owning account ID"`
}

func toTagLinkResponse(tl *domain.TagLink) TagLinkResponse {
	return TagLinkResponse{
		TagID:     tl.TagID,
		LinkID:    tl.LinkID,
		AccountID: tl.AccountID,
	}
}

// CreateTagLinkRequest is the request body for creating a taglink.
type CreateTagLinkRequest struct {
	TagID     string `json:"tag_id" doc:"Existing tag ID"`
	LinkID    string `json:"link_id" doc:"Existing link ID"`
	AccountID string `json:"account_id,omitempty" doc:"Target account (required for admin scope)"`
}

// CreateTagLinkInput wraps the create taglink request for Huma.
type CreateTagLinkInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateTagLinkRequest
}

// TagLinkOutput wraps the taglink response for Huma.
type TagLinkOutput struct {
	Body TagLinkResponse
}

// ListTagLinksInput contains parameters for listing taglinks.
type ListTagLinksInput struct {
	Authorization string `header:"Authorization"`
	TagID         string `query:"tag_id" doc:"Filter by tag ID"`
	LinkID        string `query:"link_id" doc:"Filter by link ID"`
	AccountID     string `query:"account_id" doc:"Narrow to one account (admin scope)"`
}

// ListTagLinksResponse contains a list of taglinks.
type ListTagLinksResponse struct {
	TagLinks []TagLinkResponse `json:"taglinks" doc:"List of taglinks"`
}

// ListTagLinksOutput wraps the list taglinks response for Huma.
type ListTagLinksOutput struct {
	Body ListTagLinksResponse
}

// DeleteTagLinksInput contains parameters for deleting taglinks.
type DeleteTagLinksInput struct {
	Authorization string `header:"Authorization"`
	TagID         string `query:"tag_id" doc:"Delete associations of this tag"`
	LinkID        string `query:"link_id" doc:"Delete associations of this link"`
	AccountID     string `query:"account_id" doc:"Target account (required for admin scope)"`
}

// DeleteTagLinksResponse reports how many associations were removed.
type DeleteTagLinksResponse struct {
	Deleted int64 `json:"deleted" doc:"Number of deleted taglinks"`
}

// DeleteTagLinksOutput wraps the delete taglinks response for Huma.
type DeleteTagLinksOutput struct {
	Body DeleteTagLinksResponse
}

// === Handlers ===

func (s *Server) handleCreateTagLink(ctx context.Context, input *CreateTagLinkInput) (*TagLinkOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	tagLink, err := s.services.TagLink.Create(ctx, claims, service.CreateTagLinkRequest{
		TagID:     input.Body.TagID,
		LinkID:    input.Body.LinkID,
		AccountID: input.Body.AccountID,
	})
	if err != nil {
		return nil, err
	}

	return &TagLinkOutput{Body: toTagLinkResponse(tagLink)}, nil
}

func (s *Server) handleListTagLinks(ctx context.Context, input *ListTagLinksInput) (*ListTagLinksOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	tagLinks, err := s.services.TagLink.List(ctx, claims, input.TagID, input.LinkID, input.AccountID)
	if err != nil {
		return nil, err
	}

	resp := make([]TagLinkResponse, len(tagLinks))
	for i, tl := range tagLinks {
		resp[i] = toTagLinkResponse(tl)
	}

	return &ListTagLinksOutput{Body: ListTagLinksResponse{TagLinks: resp}}, nil
}

func (s *Server) handleDeleteTagLinks(ctx context.Context, input *DeleteTagLinksInput) (*DeleteTagLinksOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if input.TagID == "" && input.LinkID == "" {
		return nil, errors.Validation("At least one of the tag_id and link_id fields must be provided")
	}

	n, err := s.services.TagLink.Delete(ctx, claims, input.TagID, input.LinkID, input.AccountID)
	if err != nil {
		return nil, err
	}

	return &DeleteTagLinksOutput{Body: DeleteTagLinksResponse{Deleted: n}}, nil
}
