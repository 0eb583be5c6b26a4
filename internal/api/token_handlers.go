package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkstashapp/linkstash-server/internal/service"
)

func (s *Server) registerTokenRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "issueToken",
		Method:      http.MethodPost,
		Path:        "/api/v1/token",
		Summary:     "Issue access token",
		Description: "Authenticates credentials and issues a single-scope access token",
		Tags:        []string{"Auth"},
	}, s.handleIssueToken)
}

// === DTOs ===

// IssueTokenRequest is the request body for issuing a token. The username
// field is the admin username for admin scope and the account email for
// account scope.
type IssueTokenRequest struct {
	Username string   `json:"username" doc:"Admin username or account email"`
	Password string   `json:"password" doc:"Credential secret"`
	Scopes   []string `json:"scopes" doc:"Requested scopes; exactly one of admin or account"`
}

// TokenResponse contains the issued access token.
type TokenResponse struct {
	AccessToken string    `json:"access_token" doc:"PASETO v4.local access token"`
	TokenType   string    `json:"token_type" doc:"Always bearer"`
	Expires     time.Time `json:"expires" doc:"Absolute expiry instant"`
}

// IssueTokenInput wraps the token request for Huma.
type IssueTokenInput struct {
	Body IssueTokenRequest
}

// TokenOutput wraps the token response for Huma.
type TokenOutput struct {
	Body TokenResponse
}

// === Handlers ===

func (s *Server) handleIssueToken(ctx context.Context, input *IssueTokenInput) (*TokenOutput, error) {
	resp, err := s.services.Auth.IssueToken(ctx, service.IssueTokenRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
		Scopes:   input.Body.Scopes,
	})
	if err != nil {
		return nil, err
	}

	return &TokenOutput{
		Body: TokenResponse{
			AccessToken: resp.AccessToken,
			TokenType:   resp.TokenType,
			Expires:     resp.Expires,
		},
	}, nil
}
