package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/service"
)

func (s *Server) registerLinkRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createLink",
		Method:      http.MethodPost,
		Path:        "/api/v1/links",
		Summary:     "Create link",
		Description: "Creates a link and its owning taglink, naming the tag by name or id",
		Tags:        []string{"Links"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateLink)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLinks",
		Method:      http.MethodGet,
		Path:        "/api/v1/links",
		Summary:     "List links",
		Description: "Returns links visible to the caller, optionally filtered by tag",
		Tags:        []string{"Links"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListLinks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLink",
		Method:      http.MethodGet,
		Path:        "/api/v1/links/{id}",
		Summary:     "Get link",
		Description: "Returns a link by ID",
		Tags:        []string{"Links"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetLink)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteLink",
		Method:      http.MethodDelete,
		Path:        "/api/v1/links/{id}",
		Summary:     "Delete link",
		Description: "Deletes a link and its taglinks",
		Tags:        []string{"Links"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteLink)
}

// === DTOs ===

// LinkResponse contains link data in API responses.
type LinkResponse struct {
	LinkID    string `json:"link_id" doc:"Link ID"`
	AccountID string `json:"account_id" doc:"Owning account ID"`
	Link      string `json:"link" doc:"Bookmarked URL"`
}

func toLinkResponse(l *domain.Link) LinkResponse {
	return LinkResponse{
		LinkID:    l.ID,
		AccountID: l.AccountID,
		Link:      l.URL,
	}
}

// CreateLinkRequest is the request body for creating a link.
type CreateLinkRequest struct {
	Link      string `json:"link" doc:"URL to bookmark"`
	Tag       string `json:"tag,omitempty" doc:"Tag name (created if missing); exactly one of tag and tag_id"`
	TagID     string `json:"tag_id,omitempty" doc:"Existing tag ID; exactly one of tag and tag_id"`
	AccountID string `json:"account_id,omitempty" doc:"Target account (required for admin scope)"`
}

// CreateLinkInput wraps the create link request for Huma.
type CreateLinkInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateLinkRequest
}

// LinkOutput wraps the link response for Huma.
type LinkOutput struct {
	Body LinkResponse
}

// ListLinksInput contains parameters for listing links.
type ListLinksInput struct {
	Authorization string `header:"Authorization"`
	Tag           string `query:"tag" doc:"Filter by tag name"`
	TagID         string `query:"tag_id" doc:"Filter by tag ID"`
	AccountID     string `query:"account_id" doc:"Narrow to one account (admin scope)"`
}

// ListLinksResponse contains a list of links.
type ListLinksResponse struct {
	Links []LinkResponse `json:"links" doc:"List of links"`
}

// ListLinksOutput wraps the list links response for Huma.
type ListLinksOutput struct {
	Body ListLinksResponse
}

// GetLinkInput contains parameters for getting a link.
type GetLinkInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Link ID"`
}

// DeleteLinkInput contains parameters for deleting a link.
type DeleteLinkInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Link ID"`
}

// === Handlers ===

func (s *Server) handleCreateLink(ctx context.Context, input *CreateLinkInput) (*LinkOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	link, err := s.services.Link.Create(ctx, claims, service.CreateLinkRequest{
		URL:       input.Body.Link,
		Tag:       input.Body.Tag,
		TagID:     input.Body.TagID,
		AccountID: input.Body.AccountID,
	})
	if err != nil {
		return nil, err
	}

	return &LinkOutput{Body: toLinkResponse(link)}, nil
}

func (s *Server) handleListLinks(ctx context.Context, input *ListLinksInput) (*ListLinksOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	links, err := s.services.Link.List(ctx, claims, service.ListLinksQuery{
		Tag:       input.Tag,
		TagID:     input.TagID,
		AccountID: input.AccountID,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]LinkResponse, len(links))
	for i, l := range links {
		resp[i] = toLinkResponse(l)
	}

	return &ListLinksOutput{Body: ListLinksResponse{Links: resp}}, nil
}

func (s *Server) handleGetLink(ctx context.Context, input *GetLinkInput) (*LinkOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	link, err := s.services.Link.Get(ctx, claims, input.ID)
	if err != nil {
		return nil, err
	}

	return &LinkOutput{Body: toLinkResponse(link)}, nil
}

func (s *Server) handleDeleteLink(ctx context.Context, input *DeleteLinkInput) (*struct{}, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Link.Delete(ctx, claims, input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}
