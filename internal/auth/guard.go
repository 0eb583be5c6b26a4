package auth

import (
	"context"

	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/errors"
	"github.com/linkstashapp/linkstash-server/internal/store"
)

// MismatchMode selects the failure surfaced when an account-scope caller
// supplies an account_id that is not its own.
type MismatchMode int

const (
	// MismatchForbidden rejects the foreign account_id outright. Used by
	// mutation operations, where the field itself is the mistake.
	MismatchForbidden MismatchMode = iota

	// MismatchNotFound reports the requested account as not found. Used by
	// identity-revealing lookups so "exists but not yours" and "does not
	// exist" are indistinguishable.
	MismatchNotFound
)

// CredentialStore resolves token subjects back to stored identities.
type CredentialStore interface {
	GetAdminUserByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
}

// Guard reconciles a verified token against a requested account_id and
// produces the effective account filter for the request. Every resource
// operation goes through Resolve; no endpoint computes its own filter.
type Guard struct {
	creds CredentialStore
}

// NewGuard creates an authorization guard backed by the given credential store.
func NewGuard(creds CredentialStore) *Guard {
	return &Guard{creds: creds}
}

// Resolve is the authorization decision function.
//
// required is the set of scopes the operation accepts. requestedAccountID is
// the caller-supplied account_id ("" when absent). requireAccountID forces
// admin-scope callers to name an account explicitly (mutations); when false,
// an admin request without an account_id resolves to the unbounded filter
// (list-all reads). onMismatch selects the error for an account-scope caller
// naming a foreign account.
func (g *Guard) Resolve(ctx context.Context, claims *Claims, required []Scope, requestedAccountID string, requireAccountID bool, onMismatch MismatchMode) (domain.AccountFilter, error) {
	if !scopeAllowed(claims.Scope, required) {
		return domain.AccountFilter{}, errors.InsufficientScope("Not enough permissions")
	}

	// The identity bound to the token must still exist; tokens outlive
	// account deletion.
	if err := g.recheckIdentity(ctx, claims); err != nil {
		return domain.AccountFilter{}, err
	}

	switch claims.Scope {
	case ScopeAdmin:
		if requestedAccountID == "" {
			if requireAccountID {
				return domain.AccountFilter{}, errors.AccountIDRequired("The account_id field is required for the admin scope")
			}
			return domain.UnboundedFilter(), nil
		}
		// Admins act on any account verbatim; they have no account of their own.
		return domain.FilterByAccount(requestedAccountID), nil

	case ScopeAccount:
		if requestedAccountID != "" && requestedAccountID != claims.AccountID {
			if onMismatch == MismatchNotFound {
				return domain.AccountFilter{}, errors.NotFoundf("Account with account_id '%s' not found", requestedAccountID)
			}
			return domain.AccountFilter{}, errors.AccountIDForbidden("The account_id field should not be provided for account scope")
		}
		return domain.FilterByAccount(claims.AccountID), nil

	default:
		return domain.AccountFilter{}, errors.InvalidScope("unknown scope on verified claims")
	}
}

// recheckIdentity confirms the token subject still resolves in the
// credential store.
func (g *Guard) recheckIdentity(ctx context.Context, claims *Claims) error {
	var err error
	switch claims.Scope {
	case ScopeAdmin:
		_, err = g.creds.GetAdminUserByUsername(ctx, claims.Subject)
	case ScopeAccount:
		_, err = g.creds.GetAccount(ctx, claims.AccountID)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.AuthenticationFailed("Could not validate credentials")
		}
		return errors.Unavailable("credential store unavailable").WithCause(err)
	}
	return nil
}
