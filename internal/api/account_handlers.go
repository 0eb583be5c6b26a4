package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/service"
)

func (s *Server) registerAccountRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createAccount",
		Method:      http.MethodPost,
		Path:        "/api/v1/accounts",
		Summary:     "Create account",
		Description: "Creates a new tenant account (admin scope only)",
		Tags:        []string{"Accounts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateAccount)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAccounts",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns accounts visible to the caller, optionally filtered by email",
		Tags:        []string{"Accounts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListAccounts)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAccount",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts/{id}",
		Summary:     "Get account",
		Description: "Returns an account by ID",
		Tags:        []string{"Accounts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetAccount)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteAccount",
		Method:      http.MethodDelete,
		Path:        "/api/v1/accounts/{id}",
		Summary:     "Delete account",
		Description: "Deletes an account and everything it owns",
		Tags:        []string{"Accounts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteAccount)
}

// === DTOs ===

// AccountResponse contains account data in API responses.
type AccountResponse struct {
	AccountID string    `json:"account_id" doc:"Account ID"`
	Email     string    `json:"email" doc:"Account email"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

func toAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.ID,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

// CreateAccountRequest is the request body for creating an account.
type CreateAccountRequest struct {
	Email    string `json:"email" doc:"Account email (unique)"`
	Password string `json:"password" doc:"Account password"`
}

// CreateAccountInput wraps the create account request for Huma.
type CreateAccountInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateAccountRequest
}

// AccountOutput wraps the account response for Huma.
type AccountOutput struct {
	Body AccountResponse
}

// ListAccountsInput contains parameters for listing accounts.
type ListAccountsInput struct {
	Authorization string `header:"Authorization"`
	Email         string `query:"email" doc:"Filter by exact email"`
}

// ListAccountsResponse contains a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts" doc:"List of accounts"`
}

// ListAccountsOutput wraps the list accounts response for Huma.
type ListAccountsOutput struct {
	Body ListAccountsResponse
}

// GetAccountInput contains parameters for getting an account.
type GetAccountInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Account ID"`
}

// DeleteAccountInput contains parameters for deleting an account.
type DeleteAccountInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Account ID"`
}

// === Handlers ===

func (s *Server) handleCreateAccount(ctx context.Context, input *CreateAccountInput) (*AccountOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	account, err := s.services.Account.Create(ctx, claims, service.CreateAccountRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AccountOutput{Body: toAccountResponse(account)}, nil
}

func (s *Server) handleListAccounts(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	accounts, err := s.services.Account.List(ctx, claims, input.Email)
	if err != nil {
		return nil, err
	}

	resp := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toAccountResponse(a)
	}

	return &ListAccountsOutput{Body: ListAccountsResponse{Accounts: resp}}, nil
}

func (s *Server) handleGetAccount(ctx context.Context, input *GetAccountInput) (*AccountOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	account, err := s.services.Account.Get(ctx, claims, input.ID)
	if err != nil {
		return nil, err
	}

	return &AccountOutput{Body: toAccountResponse(account)}, nil
}

func (s *Server) handleDeleteAccount(ctx context.Context, input *DeleteAccountInput) (*struct{}, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Account.Delete(ctx, claims, input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}
