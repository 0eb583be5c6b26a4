package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/linkstashapp/linkstash-server/internal/auth"
	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/errors"
	"github.com/linkstashapp/linkstash-server/internal/id"
	"github.com/linkstashapp/linkstash-server/internal/store"
)

// AccountService manages tenant accounts, including the delete cascade that
// clears an account's owned resources.
type AccountService struct {
	store  store.Store
	guard  *auth.Guard
	logger *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(store store.Store, guard *auth.Guard, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:  store,
		guard:  guard,
		logger: logger,
	}
}

// CreateAccountRequest contains the new account's credentials.
type CreateAccountRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

// Create provisions a new account. Admin scope only.
func (s *AccountService) Create(ctx context.Context, claims *auth.Claims, req CreateAccountRequest) (*domain.Account, error) {
	if _, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin}, "", false, auth.MismatchForbidden); err != nil {
		return nil, err
	}

	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Internal("hash password").WithCause(err)
	}

	accountID, err := id.Generate("acct")
	if err != nil {
		return nil, errors.Internal("generate account ID").WithCause(err)
	}

	account := &domain.Account{
		ID:           accountID,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.Conflictf("Account with email %s exists", req.Email)
		}
		return nil, storageError(err)
	}

	s.logger.Info("account created", "account_id", account.ID)

	return account, nil
}

// Get retrieves an account by id. An account-scope caller naming another
// account gets not-found, never a hint the account exists.
func (s *AccountService) Get(ctx context.Context, claims *auth.Claims, accountID string) (*domain.Account, error) {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, accountID, true, auth.MismatchNotFound)
	if err != nil {
		return nil, err
	}

	account, err := s.store.GetAccount(ctx, filter.AccountID())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("Account with account_id '%s' not found", accountID)
		}
		return nil, storageError(err)
	}
	return account, nil
}

// List returns accounts matching the optional email filter. Admin scope sees
// every account; account scope only ever sees its own, so a foreign email
// yields an empty list rather than an existence signal.
func (s *AccountService) List(ctx context.Context, claims *auth.Claims, email string) ([]*domain.Account, error) {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, "", false, auth.MismatchNotFound)
	if err != nil {
		return nil, err
	}

	accounts, err := s.store.ListAccounts(ctx, email, filter)
	if err != nil {
		return nil, storageError(err)
	}
	return accounts, nil
}

// Delete removes an account and everything it owns. The cascade clears
// taglinks, then tags, then links, then the account row; each stage commits
// on its own, so a mid-cascade failure leaves earlier stages applied.
func (s *AccountService) Delete(ctx context.Context, claims *auth.Claims, accountID string) error {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, accountID, true, auth.MismatchNotFound)
	if err != nil {
		return err
	}

	target := filter.AccountID()
	if _, err := s.store.GetAccount(ctx, target); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("Account with account_id '%s' not found", accountID)
		}
		return storageError(err)
	}

	if _, err := s.store.DeleteTagLinks(ctx, "", "", domain.FilterByAccount(target)); err != nil {
		return storageError(err)
	}
	if err := s.store.DeleteTagsByAccount(ctx, target); err != nil {
		return storageError(err)
	}
	if err := s.store.DeleteLinksByAccount(ctx, target); err != nil {
		return storageError(err)
	}
	if err := s.store.DeleteAccount(ctx, target); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("Account with account_id '%s' not found", accountID)
		}
		return storageError(err)
	}

	s.logger.Info("account deleted", "account_id", target)

	return nil
}
