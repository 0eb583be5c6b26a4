// Package auth provides token issuance, verification, and the authorization
// guard that computes per-request account filters.
package auth

// Scope is the authorization tier carried by a token. Exactly two scopes
// exist: admin (unrestricted) and account (restricted to one Account).
type Scope string

const (
	// ScopeAdmin grants unrestricted access to all API actions.
	ScopeAdmin Scope = "admin"
	// ScopeAccount grants access to resources owned by a single account.
	ScopeAccount Scope = "account"
)

// Valid reports whether s is one of the two known scopes.
func (s Scope) Valid() bool {
	return s == ScopeAdmin || s == ScopeAccount
}

// scopeAllowed reports whether s is in the required set.
func scopeAllowed(s Scope, required []Scope) bool {
	for _, r := range required {
		if s == r {
			return true
		}
	}
	return false
}
