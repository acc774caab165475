// Package suggestion implements suggestion CRUD and the vote toggle.
package suggestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ladle-cloud/ladle/internal/domain"
	domsug "github.com/ladle-cloud/ladle/internal/domain/suggestion"
)

// Config tunes pagination.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Service handles suggestion operations. Listing ranks by votes.
type Service struct {
	repo   Repository
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New creates a suggestion service.
func New(repo Repository, cfg Config, logger *zap.Logger) *Service {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &Service{repo: repo, cfg: cfg, logger: logger, now: time.Now, newID: uuid.NewString}
}

// Create validates and writes a new suggestion owned by groupID. Fresh
// suggestions always start unvoted and submitted.
func (s *Service) Create(ctx context.Context, groupID string, in *domsug.Suggestion) (*domsug.Suggestion, error) {
	if groupID == "" {
		return nil, domain.ErrMissingGroup
	}
	in.ResetLifecycle()
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	in.ID = s.newID()
	in.VariantOf = ""
	in.StampCreate(groupID, s.now())

	if err := s.repo.Put(ctx, in); err != nil {
		return nil, fmt.Errorf("create suggestion: %w", err)
	}
	return in, nil
}

// UpdateParams carries the fields to change. Nil means "leave as is".
type UpdateParams struct {
	Title           *string
	Description     *string
	Category        *domsug.Category
	Priority        *domsug.Priority
	Status          *domsug.Status
	RelatedRecipeID *string
}

// Update applies the provided fields to a suggestion the caller owns.
// Votes and the voter set are only reachable through Vote.
func (s *Service) Update(ctx context.Context, groupID, id string, p UpdateParams) (*domsug.Suggestion, error) {
	doc, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if groupID == "" {
		return nil, domain.ErrMissingGroup
	}
	if err := doc.RequireOwnership(groupID, domsug.EntityName, domsug.DuplicateOp); err != nil {
		return nil, err
	}

	if p.Title != nil {
		doc.Title = *p.Title
	}
	if p.Description != nil {
		doc.Description = *p.Description
	}
	if p.Category != nil {
		doc.Category = *p.Category
	}
	if p.Priority != nil {
		doc.Priority = *p.Priority
	}
	if p.Status != nil {
		doc.Status = *p.Status
	}
	if p.RelatedRecipeID != nil {
		doc.RelatedRecipeID = *p.RelatedRecipeID
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	doc.StampUpdate(groupID, s.now())
	if err := s.repo.Put(ctx, doc); err != nil {
		return nil, fmt.Errorf("update suggestion: %w", err)
	}
	return doc, nil
}

// Delete archives a suggestion the caller owns.
func (s *Service) Delete(ctx context.Context, groupID, id string) error {
	doc, err := s.loadActive(ctx, id)
	if err != nil {
		return err
	}
	if groupID == "" {
		return domain.ErrMissingGroup
	}
	if err := doc.RequireOwnership(groupID, domsug.EntityName, domsug.DuplicateOp); err != nil {
		return err
	}

	doc.IsArchived = true
	doc.StampUpdate(groupID, s.now())
	if err := s.repo.Put(ctx, doc); err != nil {
		return fmt.Errorf("archive suggestion: %w", err)
	}
	return nil
}

// Get returns an active suggestion. Reads are unrestricted.
func (s *Service) Get(ctx context.Context, id string) (*domsug.Suggestion, error) {
	return s.loadActive(ctx, id)
}

// List returns a page of active suggestions ranked by votes, and whether
// more pages exist.
func (s *Service) List(ctx context.Context, offset, limit int) ([]*domsug.Suggestion, bool, error) {
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.repo.ListActive(ctx, offset, limit)
	if err != nil {
		return nil, false, fmt.Errorf("list suggestions: %w", err)
	}
	return items, offset+len(items) < total, nil
}

// DuplicateOverrides carries optional replacements for the copy.
type DuplicateOverrides struct {
	Title           *string
	Description     *string
	Category        *domsug.Category
	Priority        *domsug.Priority
	RelatedRecipeID *string
}

// Duplicate forks a suggestion into a caller-owned copy. Review state
// never carries over: the copy starts submitted with zero votes.
func (s *Service) Duplicate(ctx context.Context, groupID, id string, ov DuplicateOverrides) (*domsug.Suggestion, error) {
	orig, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if groupID == "" {
		return nil, domain.ErrMissingGroup
	}

	dup := *orig
	if ov.Title != nil {
		dup.Title = *ov.Title
	}
	if ov.Description != nil {
		dup.Description = *ov.Description
	}
	if ov.Category != nil {
		dup.Category = *ov.Category
	}
	if ov.Priority != nil {
		dup.Priority = *ov.Priority
	}
	if ov.RelatedRecipeID != nil {
		dup.RelatedRecipeID = *ov.RelatedRecipeID
	}
	dup.ResetLifecycle()
	if err := dup.Validate(); err != nil {
		return nil, err
	}

	dup.ID = s.newID()
	dup.VariantOf = orig.ID
	dup.StampCreate(groupID, s.now())

	if err := s.repo.Put(ctx, &dup); err != nil {
		return nil, fmt.Errorf("duplicate suggestion: %w", err)
	}
	return &dup, nil
}

// Vote toggles the caller's vote on any active suggestion and returns
// the updated document plus the resulting membership state. No ownership
// check: voting is open to every group. The read-modify-write is not
// atomic; concurrent votes on one suggestion can lose an update.
func (s *Service) Vote(ctx context.Context, groupID, id string) (*domsug.Suggestion, bool, error) {
	doc, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if groupID == "" {
		return nil, false, domain.ErrMissingGroup
	}

	voted := doc.ToggleVote(groupID)
	doc.StampUpdate(groupID, s.now())

	if err := s.repo.Put(ctx, doc); err != nil {
		return nil, false, fmt.Errorf("save vote: %w", err)
	}
	return doc, voted, nil
}

// ArchiveBatch archives up to limit active suggestions, scoped to
// scopeGroup when non-empty. Admin wipe path; no ownership check.
func (s *Service) ArchiveBatch(ctx context.Context, scopeGroup, by string, limit int) (int, error) {
	ids, err := s.repo.ActiveIDs(ctx, scopeGroup, limit)
	if err != nil {
		return 0, fmt.Errorf("list suggestions for wipe: %w", err)
	}

	batch := make([]*domsug.Suggestion, 0, len(ids))
	for _, id := range ids {
		doc, err := s.repo.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return 0, fmt.Errorf("load suggestion %s for wipe: %w", id, err)
		}
		if doc.IsArchived {
			continue
		}
		doc.IsArchived = true
		doc.StampUpdate(by, s.now())
		batch = append(batch, doc)
	}

	if err := s.repo.PutAll(ctx, batch); err != nil {
		return 0, fmt.Errorf("archive suggestion batch: %w", err)
	}
	return len(batch), nil
}

func (s *Service) loadActive(ctx context.Context, id string) (*domsug.Suggestion, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get suggestion: %w", err)
	}
	if doc.IsArchived {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}
