// Package ingredient implements ingredient CRUD with the global-read,
// owner-write visibility model.
package ingredient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ladle-cloud/ladle/internal/domain"
	doming "github.com/ladle-cloud/ladle/internal/domain/ingredient"
	"github.com/ladle-cloud/ladle/internal/domain/slug"
	"github.com/ladle-cloud/ladle/internal/repository/indexes"
)

// Config tunes pagination and the resurrection policy.
type Config struct {
	DefaultPageSize   int
	MaxPageSize       int
	ResurrectArchived bool
}

// Service handles ingredient operations. The ingredient ID is its slug.
type Service struct {
	repo   Repository
	slugs  SlugAllocator
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// New creates an ingredient service.
func New(repo Repository, slugs SlugAllocator, cfg Config, logger *zap.Logger) *Service {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &Service{repo: repo, slugs: slugs, cfg: cfg, logger: logger, now: time.Now}
}

// Create validates and writes a new ingredient owned by groupID.
// With the resurrection policy enabled, a name slugifying to an archived
// ingredient's slug reactivates that ingredient under the caller's
// ownership instead of allocating a suffixed slug.
func (s *Service) Create(ctx context.Context, groupID string, in *doming.Ingredient) (*doming.Ingredient, error) {
	if groupID == "" {
		return nil, domain.ErrMissingGroup
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if s.cfg.ResurrectArchived {
		if doc, ok, err := s.resurrect(ctx, groupID, in); err != nil {
			return nil, err
		} else if ok {
			return doc, nil
		}
	}

	allocated, err := s.slugs.Allocate(ctx, indexes.Ingredients, in.Name, "")
	if err != nil {
		return nil, err
	}

	in.ID = allocated
	in.Slug = allocated
	in.VariantOf = ""
	in.StampCreate(groupID, s.now())

	if err := s.repo.Put(ctx, in); err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return in, nil
}

// resurrect reuses an archived ingredient's identity when its slug
// matches the new name's base form. The slug reservation is still held
// by the archived document, so no allocation happens.
func (s *Service) resurrect(ctx context.Context, groupID string, in *doming.Ingredient) (*doming.Ingredient, bool, error) {
	base := slug.Normalize(in.Name)
	if base == "" {
		return nil, false, fmt.Errorf("name %q yields an empty slug: %w", in.Name, domain.ErrValidation)
	}

	old, err := s.repo.FindArchivedBySlug(ctx, base)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("resurrection lookup: %w", err)
	}

	// The reservation must still name the tombstone. A mismatch means the
	// slug changed hands since archival; fall back to normal allocation.
	holder, err := s.slugs.Holder(ctx, indexes.Ingredients, base)
	if err != nil {
		return nil, false, fmt.Errorf("resurrection slug check: %w", err)
	}
	if holder != old.ID {
		s.logger.Warn("Archived ingredient no longer holds its slug, allocating fresh",
			zap.String("slug", base), zap.String("holder", holder))
		return nil, false, nil
	}

	in.ID = old.ID
	in.Slug = old.Slug
	in.VariantOf = ""
	in.StampCreate(groupID, s.now())

	if err := s.repo.Put(ctx, in); err != nil {
		return nil, false, fmt.Errorf("resurrect ingredient: %w", err)
	}
	s.logger.Info("Resurrected archived ingredient",
		zap.String("id", in.ID), zap.String("group", groupID))
	return in, true, nil
}

// UpdateParams carries the fields to change. Nil means "leave as is".
type UpdateParams struct {
	Name            *string
	Aliases         *[]string
	Categories      *[]string
	Allergens       *[]string
	Nutrition       *doming.Nutrition
	ClearNutrition  bool
	Metadata        *map[string]string
	SupportedUnits  *[]domain.Unit
	UnitConversions *[]doming.UnitConversion
}

// Update applies the provided fields to an ingredient the caller owns.
// The ID and slug never change, even when the name does.
func (s *Service) Update(ctx context.Context, groupID, id string, p UpdateParams) (*doming.Ingredient, error) {
	doc, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if groupID == "" {
		return nil, domain.ErrMissingGroup
	}
	if err := doc.RequireOwnership(groupID, doming.EntityName, doming.DuplicateOp); err != nil {
		return nil, err
	}

	applyParams(doc, p)
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	doc.StampUpdate(groupID, s.now())
	if err := s.repo.Put(ctx, doc); err != nil {
		return nil, fmt.Errorf("update ingredient: %w", err)
	}
	return doc, nil
}

// Delete archives an ingredient the caller owns. The slug reservation is
// kept so the tombstone's identity cannot be overwritten by a later
// create; only resurrection may reuse it.
func (s *Service) Delete(ctx context.Context, groupID, id string) error {
	doc, err := s.loadActive(ctx, id)
	if err != nil {
		return err
	}
	if groupID == "" {
		return domain.ErrMissingGroup
	}
	if err := doc.RequireOwnership(groupID, doming.EntityName, doming.DuplicateOp); err != nil {
		return err
	}

	doc.IsArchived = true
	doc.StampUpdate(groupID, s.now())
	if err := s.repo.Put(ctx, doc); err != nil {
		return fmt.Errorf("archive ingredient: %w", err)
	}
	return nil
}

// Get returns an active ingredient. Reads are unrestricted.
func (s *Service) Get(ctx context.Context, id string) (*doming.Ingredient, error) {
	return s.loadActive(ctx, id)
}

// List returns a page of active ingredients, newest update first, and
// whether more pages exist.
func (s *Service) List(ctx context.Context, offset, limit int) ([]*doming.Ingredient, bool, error) {
	limit = clampLimit(limit, s.cfg.DefaultPageSize, s.cfg.MaxPageSize)
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.repo.ListActive(ctx, offset, limit)
	if err != nil {
		return nil, false, fmt.Errorf("list ingredients: %w", err)
	}
	return items, offset+len(items) < total, nil
}

// DuplicateOverrides carries optional replacements for the copy. Nil
// means "inherit from the original"; a pointer to an empty slice is an
// explicit empty override.
type DuplicateOverrides struct {
	Name            *string
	Aliases         *[]string
	Categories      *[]string
	Allergens       *[]string
	Nutrition       *doming.Nutrition
	ClearNutrition  bool
	Metadata        *map[string]string
	SupportedUnits  *[]domain.Unit
	UnitConversions *[]doming.UnitConversion
}

// Duplicate forks an ingredient into a caller-owned copy with a fresh
// slug and variantOf lineage. The only sanctioned way to obtain an
// editable version of another group's ingredient.
func (s *Service) Duplicate(ctx context.Context, groupID, id string, ov DuplicateOverrides) (*doming.Ingredient, error) {
	orig, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if groupID == "" {
		return nil, domain.ErrMissingGroup
	}

	dup := *orig
	applyParams(&dup, UpdateParams(ov))
	if err := dup.Validate(); err != nil {
		return nil, err
	}

	allocated, err := s.slugs.Allocate(ctx, indexes.Ingredients, dup.Name, "")
	if err != nil {
		return nil, err
	}

	dup.ID = allocated
	dup.Slug = allocated
	dup.VariantOf = orig.ID
	dup.StampCreate(groupID, s.now())

	if err := s.repo.Put(ctx, &dup); err != nil {
		return nil, fmt.Errorf("duplicate ingredient: %w", err)
	}
	return &dup, nil
}

// ArchiveBatch archives up to limit active ingredients, scoped to
// scopeGroup when non-empty. Ownership is not checked here; the admin
// wipe is the only caller and enforces its own policy.
func (s *Service) ArchiveBatch(ctx context.Context, scopeGroup, by string, limit int) (int, error) {
	ids, err := s.repo.ActiveIDs(ctx, scopeGroup, limit)
	if err != nil {
		return 0, fmt.Errorf("list ingredients for wipe: %w", err)
	}

	batch := make([]*doming.Ingredient, 0, len(ids))
	for _, id := range ids {
		doc, err := s.repo.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return 0, fmt.Errorf("load ingredient %s for wipe: %w", id, err)
		}
		if doc.IsArchived {
			continue
		}
		doc.IsArchived = true
		doc.StampUpdate(by, s.now())
		batch = append(batch, doc)
	}

	if err := s.repo.PutAll(ctx, batch); err != nil {
		return 0, fmt.Errorf("archive ingredient batch: %w", err)
	}
	return len(batch), nil
}

func (s *Service) loadActive(ctx context.Context, id string) (*doming.Ingredient, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	if doc.IsArchived {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func applyParams(doc *doming.Ingredient, p UpdateParams) {
	if p.Name != nil {
		doc.Name = *p.Name
	}
	if p.Aliases != nil {
		doc.Aliases = *p.Aliases
	}
	if p.Categories != nil {
		doc.Categories = *p.Categories
	}
	if p.Allergens != nil {
		doc.Allergens = *p.Allergens
	}
	if p.ClearNutrition {
		doc.Nutrition = nil
	} else if p.Nutrition != nil {
		doc.Nutrition = p.Nutrition
	}
	if p.Metadata != nil {
		doc.Metadata = *p.Metadata
	}
	if p.SupportedUnits != nil {
		doc.SupportedUnits = *p.SupportedUnits
	}
	if p.UnitConversions != nil {
		doc.UnitConversions = *p.UnitConversions
	}
	doc.Normalize()
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
