// Package domain contains the core entity types for the LinkStash catalog.
package domain

import "time"

// Account is a tenant of the catalog. Every Link, Tag, and TagLink is
// exclusively owned by one Account.
type Account struct {
	ID           string    `json:"account_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
