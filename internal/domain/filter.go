package domain

// AccountFilter is the effective ownership restriction for a single request,
// computed once by the authorization guard and passed to every store call.
// A bounded filter restricts rows to one account; the unbounded filter (the
// zero value) applies no restriction and is only ever produced for admin
// scope reads.
type AccountFilter struct {
	accountID string
	bounded   bool
}

// UnboundedFilter returns a filter with no account restriction.
func UnboundedFilter() AccountFilter {
	return AccountFilter{}
}

// FilterByAccount returns a filter restricted to the given account.
func FilterByAccount(accountID string) AccountFilter {
	return AccountFilter{accountID: accountID, bounded: true}
}

// Bounded reports whether the filter restricts rows to a single account.
func (f AccountFilter) Bounded() bool {
	return f.bounded
}

// AccountID returns the restricting account id, or "" when unbounded.
func (f AccountFilter) AccountID() string {
	return f.accountID
}
