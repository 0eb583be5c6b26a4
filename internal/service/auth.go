package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/linkstashapp/linkstash-server/internal/auth"
	"github.com/linkstashapp/linkstash-server/internal/errors"
	"github.com/linkstashapp/linkstash-server/internal/store"
)

// AuthService handles token issuance and verification.
// Authorization decisions for resource operations live in auth.Guard.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store store.Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		logger:       logger,
	}
}

// IssueTokenRequest contains the credentials and the requested scopes.
// Username doubles as the identifier for both tiers: the admin username for
// admin scope, the account email for account scope.
type IssueTokenRequest struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Scopes   []string `json:"scopes"`
}

// TokenResponse is the issued access token.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Expires     time.Time `json:"expires"`
}

// IssueToken authenticates the caller and mints an access token bound to the
// single requested scope. Requesting zero or multiple scopes is rejected
// before any credential check. Every credential failure surfaces the same
// generic error so callers cannot probe which identities exist.
func (s *AuthService) IssueToken(ctx context.Context, req IssueTokenRequest) (*TokenResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	if len(req.Scopes) != 1 {
		return nil, errors.InvalidScope("Exactly one scope must be requested")
	}
	scope := auth.Scope(req.Scopes[0])
	if !scope.Valid() {
		return nil, errors.InvalidScope("Exactly one scope must be requested")
	}

	var passwordHash, accountID string
	switch scope {
	case auth.ScopeAdmin:
		user, err := s.store.GetAdminUserByUsername(ctx, req.Username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, errors.AuthenticationFailed("Could not validate credentials")
			}
			return nil, storageError(err)
		}
		passwordHash = user.PasswordHash

	case auth.ScopeAccount:
		account, err := s.store.GetAccountByEmail(ctx, req.Username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, errors.AuthenticationFailed("Could not validate credentials")
			}
			return nil, storageError(err)
		}
		passwordHash = account.PasswordHash
		accountID = account.ID
	}

	ok, err := auth.VerifyPassword(passwordHash, req.Password)
	if err != nil {
		return nil, errors.Internal("verify password").WithCause(err)
	}
	if !ok {
		return nil, errors.AuthenticationFailed("Could not validate credentials")
	}

	token, expires, err := s.tokenService.Generate(req.Username, scope, accountID)
	if err != nil {
		return nil, errors.Internal("generate token").WithCause(err)
	}

	s.logger.Info("token issued",
		"subject", req.Username,
		"scope", string(scope),
	)

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Expires:     expires,
	}, nil
}

// VerifyAccessToken validates a bearer token and returns its claims.
// Used by the HTTP layer before dispatching to resource services.
func (s *AuthService) VerifyAccessToken(tokenString string) (*auth.Claims, error) {
	return s.tokenService.Verify(tokenString)
}
