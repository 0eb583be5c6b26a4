package domain

// AdminUser authenticates admin-scope callers. Admin users sit outside the
// account ownership graph and are provisioned out of band (see cmd/seed);
// there is no create or delete endpoint for them.
type AdminUser struct {
	ID           string `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
