package service

import (
	"context"
	"log/slog"

	"github.com/linkstashapp/linkstash-server/internal/auth"
	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/errors"
	"github.com/linkstashapp/linkstash-server/internal/id"
	"github.com/linkstashapp/linkstash-server/internal/store"
)

// LinkService manages bookmarked links. Every link is created with an owning
// taglink; a bare link never exists.
type LinkService struct {
	store  store.Store
	guard  *auth.Guard
	logger *slog.Logger
}

// NewLinkService creates a new link service.
func NewLinkService(store store.Store, guard *auth.Guard, logger *slog.Logger) *LinkService {
	return &LinkService{
		store:  store,
		guard:  guard,
		logger: logger,
	}
}

// CreateLinkRequest contains the new link and its initial tag, named either
// by tag name (created on demand) or by existing tag id, never both.
type CreateLinkRequest struct {
	URL       string `json:"link" validate:"required,url"`
	Tag       string `json:"tag,omitempty"`
	TagID     string `json:"tag_id,omitempty"`
	AccountID string `json:"account_id,omitempty"`
}

// ListLinksQuery holds the optional link listing filters.
type ListLinksQuery struct {
	Tag       string
	TagID     string
	AccountID string
}

// Create stores a new link and its owning taglink in one transaction.
// A tag named by name is reused if the account already has it and created
// otherwise; a tag named by id must already belong to the account.
func (s *LinkService) Create(ctx context.Context, claims *auth.Claims, req CreateLinkRequest) (*domain.Link, error) {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, req.AccountID, true, auth.MismatchForbidden)
	if err != nil {
		return nil, err
	}

	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if (req.Tag == "") == (req.TagID == "") {
		return nil, errors.Unprocessable("Exactly one of the tag and tag_id fields must be provided")
	}

	accountID := filter.AccountID()

	tagID := req.TagID
	var newTag *domain.Tag
	if req.Tag != "" {
		existing, err := s.store.GetTagByName(ctx, req.Tag, accountID)
		switch {
		case err == nil:
			tagID = existing.ID
		case errors.Is(err, store.ErrNotFound):
			generated, err := id.Generate("tag")
			if err != nil {
				return nil, errors.Internal("generate tag ID").WithCause(err)
			}
			newTag = &domain.Tag{ID: generated, AccountID: accountID, Name: req.Tag}
			tagID = generated
		default:
			return nil, storageError(err)
		}
	} else {
		if _, err := s.store.GetTag(ctx, tagID, filter); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, errors.Unprocessablef("Tag with tag_id %s not found for account_id %s", tagID, accountID)
			}
			return nil, storageError(err)
		}
	}

	if newTag != nil {
		if err := s.store.CreateTag(ctx, newTag); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return nil, errors.Conflictf("Tag with name %s exists for account %s", req.Tag, accountID)
			}
			return nil, storageError(err)
		}
	}

	linkID, err := id.Generate("link")
	if err != nil {
		return nil, errors.Internal("generate link ID").WithCause(err)
	}

	link := &domain.Link{ID: linkID, AccountID: accountID, URL: req.URL}
	tagLink := &domain.TagLink{TagID: tagID, LinkID: linkID, AccountID: accountID}
	if err := s.store.CreateLink(ctx, link, tagLink); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.Conflictf("TagLink with tag_id %s and link_id %s exists", tagID, linkID)
		}
		return nil, storageError(err)
	}

	s.logger.Info("link created",
		"link_id", link.ID,
		"account_id", accountID,
		"tag_id", tagID,
	)

	return link, nil
}

// Get retrieves a link by id under the caller's effective filter.
func (s *LinkService) Get(ctx context.Context, claims *auth.Claims, linkID string) (*domain.Link, error) {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, "", false, auth.MismatchNotFound)
	if err != nil {
		return nil, err
	}

	link, err := s.store.GetLink(ctx, linkID, filter)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("Link with link_id %s not found", linkID)
		}
		return nil, storageError(err)
	}
	return link, nil
}

// List returns links matching the query under the caller's effective filter.
func (s *LinkService) List(ctx context.Context, claims *auth.Claims, q ListLinksQuery) ([]*domain.Link, error) {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, q.AccountID, false, auth.MismatchForbidden)
	if err != nil {
		return nil, err
	}

	links, err := s.store.ListLinks(ctx, store.LinkQuery{TagID: q.TagID, TagName: q.Tag}, filter)
	if err != nil {
		return nil, storageError(err)
	}
	return links, nil
}

// Delete removes a link and every taglink pointing at it.
func (s *LinkService) Delete(ctx context.Context, claims *auth.Claims, linkID string) error {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, "", false, auth.MismatchNotFound)
	if err != nil {
		return err
	}

	if _, err := s.store.GetLink(ctx, linkID, filter); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("Link with link_id %s not found", linkID)
		}
		return storageError(err)
	}

	// Referencing taglinks go first so the link never dangles.
	if _, err := s.store.DeleteTagLinks(ctx, "", linkID, filter); err != nil {
		return storageError(err)
	}
	if err := s.store.DeleteLink(ctx, linkID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("Link with link_id %s not found", linkID)
		}
		return storageError(err)
	}

	s.logger.Info("link deleted", "link_id", linkID)

	return nil
}
