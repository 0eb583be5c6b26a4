package service

import (
	"context"
	"log/slog"

	"github.com/linkstashapp/linkstash-server/internal/auth"
	"github.com/linkstashapp/linkstash-server/internal/domain"
	"github.com/linkstashapp/linkstash-server/internal/errors"
	"github.com/linkstashapp/linkstash-server/internal/store"
)

// TagLinkService manages tag/link associations.
type TagLinkService struct {
	store  store.Store
	guard  *auth.Guard
	logger *slog.Logger
}

// NewTagLinkService creates a new taglink service.
func NewTagLinkService(store store.Store, guard *auth.Guard, logger *slog.Logger) *TagLinkService {
	return &TagLinkService{
		store:  store,
		guard:  guard,
		logger: logger,
	}
}

// CreateTagLinkRequest names the tag and link to associate.
type CreateTagLinkRequest struct {
	TagID     string `json:"tag_id" validate:"required"`
	LinkID    string `json:"link_id" validate:"required"`
	AccountID string `json:"account_id,omitempty"`
}

// Create associates a tag with a link. Both must already belong to the
// caller's effective account; the tag is checked before the link, and a
// duplicate pair conflicts.
func (s *TagLinkService) Create(ctx context.Context, claims *auth.Claims, req CreateTagLinkRequest) (*domain.TagLink, error) {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, req.AccountID, true, auth.MismatchForbidden)
	if err != nil {
		return nil, err
	}

	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	accountID := filter.AccountID()

	if _, err := s.store.GetTag(ctx, req.TagID, filter); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.Unprocessablef("Tag with tag_id %s not found for account_id %s", req.TagID, accountID)
		}
		return nil, storageError(err)
	}
	if _, err := s.store.GetLink(ctx, req.LinkID, filter); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.Unprocessablef("Link with link_id %s not found for account_id %s", req.LinkID, accountID)
		}
		return nil, storageError(err)
	}

	tagLink := &domain.TagLink{TagID: req.TagID, LinkID: req.LinkID, AccountID: accountID}
	if err := s.store.CreateTagLink(ctx, tagLink); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.Conflictf("TagLink with tag_id %s and link_id %s exists", req.TagID, req.LinkID)
		}
		return nil, storageError(err)
	}

	s.logger.Info("taglink created",
		"tag_id", tagLink.TagID,
		"link_id", tagLink.LinkID,
		"account_id", accountID,
	)

	return tagLink, nil
}

// List returns associations matching the optional tag and link ids under
// the caller's effective filter.
func (s *TagLinkService) List(ctx context.Context, claims *auth.Claims, tagID, linkID, accountID string) ([]*domain.TagLink, error) {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, accountID, false, auth.MismatchForbidden)
	if err != nil {
		return nil, err
	}

	tagLinks, err := s.store.ListTagLinks(ctx, tagID, linkID, filter)
	if err != nil {
		return nil, storageError(err)
	}
	return tagLinks, nil
}

// Delete removes every association matching the tag and/or link ids and
// reports how many went. At least one id must be given; matching nothing
// deletes zero rows and is still success.
func (s *TagLinkService) Delete(ctx context.Context, claims *auth.Claims, tagID, linkID, accountID string) (int64, error) {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, accountID, false, auth.MismatchForbidden)
	if err != nil {
		return 0, err
	}

	if tagID == "" && linkID == "" {
		return 0, errors.Validation("At least one of the tag_id and link_id fields must be provided")
	}

	n, err := s.store.DeleteTagLinks(ctx, tagID, linkID, filter)
	if err != nil {
		return 0, storageError(err)
	}

	s.logger.Info("taglinks deleted",
		"tag_id", tagID,
		"link_id", linkID,
		"count", n,
	)

	return n, nil
}
