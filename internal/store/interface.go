package store

import (
	"context"

	"github.com/linkstashapp/linkstash-server/internal/domain"
)

// LinkQuery holds the optional filters for listing links. TagName resolves to
// tag ids under the effective filter; TagID is used verbatim. Either, both,
// or neither may be set.
type LinkQuery struct {
	TagID   string
	TagName string
}

// Store is the persistence interface for the catalog. Every read and mutation
// that touches owned entities takes a domain.AccountFilter; an unbounded
// filter applies no ownership restriction, a bounded one narrows all matching
// to a single account. A Get or Delete for a row that exists but fails the
// filter reports ErrNotFound, never a distinct forbidden signal.
type Store interface {
	// Accounts.
	CreateAccount(ctx context.Context, account *domain.Account) error
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	ListAccounts(ctx context.Context, email string, filter domain.AccountFilter) ([]*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error

	// Admin users. Provisioned out of band; no delete.
	CreateAdminUser(ctx context.Context, user *domain.AdminUser) error
	GetAdminUserByUsername(ctx context.Context, username string) (*domain.AdminUser, error)

	// Links. CreateLink inserts the link and its owning taglink in one
	// transaction; a link row never exists without at least one taglink at
	// creation time.
	CreateLink(ctx context.Context, link *domain.Link, tagLink *domain.TagLink) error
	GetLink(ctx context.Context, linkID string, filter domain.AccountFilter) (*domain.Link, error)
	ListLinks(ctx context.Context, q LinkQuery, filter domain.AccountFilter) ([]*domain.Link, error)
	DeleteLink(ctx context.Context, linkID string) error
	DeleteLinksByAccount(ctx context.Context, accountID string) error

	// Tags.
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, tagID string, filter domain.AccountFilter) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name, accountID string) (*domain.Tag, error)
	ListTags(ctx context.Context, name string, filter domain.AccountFilter) ([]*domain.Tag, error)
	DeleteTag(ctx context.Context, tagID string) error
	DeleteTagsByAccount(ctx context.Context, accountID string) error

	// TagLinks. DeleteTagLinks removes every row matching the optional
	// tag/link ids under the filter and reports how many went; zero is fine.
	CreateTagLink(ctx context.Context, tagLink *domain.TagLink) error
	ListTagLinks(ctx context.Context, tagID, linkID string, filter domain.AccountFilter) ([]*domain.TagLink, error)
	DeleteTagLinks(ctx context.Context, tagID, linkID string, filter domain.AccountFilter) (int64, error)

	Close() error
}
