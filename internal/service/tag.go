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

// TagService manages per-account tags.
type TagService struct {
	store  store.Store
	guard  *auth.Guard
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, guard *auth.Guard, logger *slog.Logger) *TagService {
	return &TagService{
		store:  store,
		guard:  guard,
		logger: logger,
	}
}

// CreateTagRequest contains the new tag's name.
type CreateTagRequest struct {
	Name      string `json:"tag" validate:"required"`
	AccountID string `json:"account_id,omitempty"`
}

// Create stores a new tag. Tag names are unique per account.
func (s *TagService) Create(ctx context.Context, claims *auth.Claims, req CreateTagRequest) (*domain.Tag, error) {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, req.AccountID, true, auth.MismatchForbidden)
	if err != nil {
		return nil, err
	}

	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, errors.Internal("generate tag ID").WithCause(err)
	}

	tag := &domain.Tag{ID: tagID, AccountID: filter.AccountID(), Name: req.Name}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.Conflictf("Tag with name %s exists for account %s", req.Name, filter.AccountID())
		}
		return nil, storageError(err)
	}

	s.logger.Info("tag created",
		"tag_id", tag.ID,
		"account_id", tag.AccountID,
	)

	return tag, nil
}

// Get retrieves a tag by id under the caller's effective filter.
func (s *TagService) Get(ctx context.Context, claims *auth.Claims, tagID string) (*domain.Tag, error) {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, "", false, auth.MismatchNotFound)
	if err != nil {
		return nil, err
	}

	tag, err := s.store.GetTag(ctx, tagID, filter)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("Tag with tag_id %s not found", tagID)
		}
		return nil, storageError(err)
	}
	return tag, nil
}

// List returns tags matching the optional name filter under the caller's
// effective filter.
func (s *TagService) List(ctx context.Context, claims *auth.Claims, name, accountID string) ([]*domain.Tag, error) {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, accountID, false, auth.MismatchForbidden)
	if err != nil {
		return nil, err
	}

	tags, err := s.store.ListTags(ctx, name, filter)
	if err != nil {
		return nil, storageError(err)
	}
	return tags, nil
}

// Delete removes a tag and every taglink pointing at it.
func (s *TagService) Delete(ctx context.Context, claims *auth.Claims, tagID string) error {
	filter, err := s.guard.Resolve(ctx, claims, []auth.Scope{auth.ScopeAdmin, auth.ScopeAccount}, "", false, auth.MismatchNotFound)
	if err != nil {
		return err
	}

	if _, err := s.store.GetTag(ctx, tagID, filter); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("Tag with tag_id %s not found", tagID)
		}
		return storageError(err)
	}

	// Referencing taglinks go first so the tag never dangles.
	if _, err := s.store.DeleteTagLinks(ctx, tagID, "", filter); err != nil {
		return storageError(err)
	}
	if err := s.store.DeleteTag(ctx, tagID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("Tag with tag_id %s not found", tagID)
		}
		return storageError(err)
	}

	s.logger.Info("tag deleted", "tag_id", tagID)

	return nil
}
