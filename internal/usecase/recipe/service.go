// Package recipe implements recipe CRUD, array-delta updates, and the
// embedding and hero-image side effects of the write path.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ladle-cloud/ladle/internal/domain"
	domrec "github.com/ladle-cloud/ladle/internal/domain/recipe"
	"github.com/ladle-cloud/ladle/internal/repository/indexes"
)

// Config tunes pagination.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Service handles recipe operations. embedder and images may be nil when
// the AI features are disabled; writes then skip those side effects.
type Service struct {
	repo     Repository
	slugs    SlugAllocator
	embedder Embedder
	images   ImageGenerator
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// New creates a recipe service.
func New(
	repo Repository, slugs SlugAllocator,
	embedder Embedder, images ImageGenerator,
	cfg Config, logger *zap.Logger,
) *Service {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &Service{
		repo:     repo,
		slugs:    slugs,
		embedder: embedder,
		images:   images,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create validates and writes a new recipe owned by groupID. The
// embedding is derived from name and description; a hero image is
// generated only when the caller asks for one. An embedding or image
// failure aborts the whole create.
func (s *Service) Create(ctx context.Context, groupID string, in *domrec.Recipe, generateImage bool) (*domrec.Recipe, error) {
	if groupID == "" {
		return nil, domain.ErrMissingGroup
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	id := s.newID()
	allocated, err := s.slugs.Allocate(ctx, indexes.Recipes, in.Name, id)
	if err != nil {
		return nil, err
	}

	in.ID = id
	in.Slug = allocated
	in.VariantOf = ""

	if err := s.embed(ctx, in); err != nil {
		return nil, err
	}
	if generateImage {
		if err := s.generateImage(ctx, in); err != nil {
			return nil, err
		}
	}

	in.StampCreate(groupID, s.now())
	if err := s.repo.Put(ctx, in); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return in, nil
}

// UpdateParams carries the fields to change. Nil means "leave as is".
// Delta operations are mutually exclusive with the full-replacement field
// they touch; supplying both in one call is a conflict.
type UpdateParams struct {
	Name        *string
	Description *string
	Servings    *int
	Ingredients *[]domrec.Ingredient
	Steps       *[]domrec.Step
	Tags        *[]string
	Categories  *[]string
	SourceURL   *string

	Delta domrec.Delta

	// RegenerateImage requests a fresh hero image. Name or description
	// changes alone never retrigger generation.
	RegenerateImage bool
}

// conflict reports which array field is supplied both fully and as a delta.
func (p *UpdateParams) conflict() string {
	switch {
	case p.Tags != nil && p.Delta.TouchesTags():
		return "tags"
	case p.Categories != nil && p.Delta.TouchesCategories():
		return "categories"
	case p.Ingredients != nil && p.Delta.TouchesIngredients():
		return "ingredients"
	case p.Steps != nil && p.Delta.TouchesSteps():
		return "steps"
	}
	return ""
}

// Update applies the provided fields and delta operations to a recipe
// the caller owns. The embedding is regenerated when name or description
// changed; the slug never changes.
func (s *Service) Update(ctx context.Context, groupID, id string, p UpdateParams) (*domrec.Recipe, error) {
	if field := p.conflict(); field != "" {
		return nil, fmt.Errorf("field %q supplied both fully and as a delta: %w", field, domain.ErrConflict)
	}

	doc, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if groupID == "" {
		return nil, domain.ErrMissingGroup
	}
	if err := doc.RequireOwnership(groupID, domrec.EntityName, domrec.DuplicateOp); err != nil {
		return nil, err
	}

	textBefore := doc.EmbeddingText()

	if p.Name != nil {
		doc.Name = *p.Name
	}
	if p.Description != nil {
		doc.Description = *p.Description
	}
	if p.Servings != nil {
		doc.Servings = *p.Servings
	}
	if p.Ingredients != nil {
		doc.Ingredients = *p.Ingredients
	}
	if p.Steps != nil {
		doc.Steps = *p.Steps
	}
	if p.Tags != nil {
		doc.Tags = *p.Tags
	}
	if p.Categories != nil {
		doc.Categories = *p.Categories
	}
	if p.SourceURL != nil {
		doc.SourceURL = *p.SourceURL
	}
	p.Delta.Apply(doc)

	doc.Normalize()
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	if doc.EmbeddingText() != textBefore {
		if err := s.embed(ctx, doc); err != nil {
			return nil, err
		}
	}
	if p.RegenerateImage {
		if err := s.generateImage(ctx, doc); err != nil {
			return nil, err
		}
	}

	doc.StampUpdate(groupID, s.now())
	if err := s.repo.Put(ctx, doc); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return doc, nil
}

// Delete archives a recipe the caller owns and frees its slug for reuse.
func (s *Service) Delete(ctx context.Context, groupID, id string) error {
	doc, err := s.loadActive(ctx, id)
	if err != nil {
		return err
	}
	if groupID == "" {
		return domain.ErrMissingGroup
	}
	if err := doc.RequireOwnership(groupID, domrec.EntityName, domrec.DuplicateOp); err != nil {
		return err
	}

	doc.IsArchived = true
	doc.StampUpdate(groupID, s.now())
	if err := s.repo.Put(ctx, doc); err != nil {
		return fmt.Errorf("archive recipe: %w", err)
	}

	if err := s.slugs.Release(ctx, indexes.Recipes, doc.Slug); err != nil {
		// The document is already archived; a leaked reservation only
		// costs a suffix on the next create with this name.
		s.logger.Warn("Failed to release slug of archived recipe",
			zap.String("id", id), zap.String("slug", doc.Slug), zap.Error(err))
	}
	return nil
}

// Get returns an active recipe. Reads are unrestricted.
func (s *Service) Get(ctx context.Context, id string) (*domrec.Recipe, error) {
	return s.loadActive(ctx, id)
}

// List returns a page of active recipes, newest update first, and
// whether more pages exist.
func (s *Service) List(ctx context.Context, offset, limit int) ([]*domrec.Recipe, bool, error) {
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
		return nil, false, fmt.Errorf("list recipes: %w", err)
	}
	return items, offset+len(items) < total, nil
}

// DuplicateOverrides carries optional replacements for the copy. Nil
// means "inherit"; a pointer to an empty slice is an explicit empty
// override.
type DuplicateOverrides struct {
	Name        *string
	Description *string
	Servings    *int
	Ingredients *[]domrec.Ingredient
	Steps       *[]domrec.Step
	Tags        *[]string
	Categories  *[]string
	SourceURL   *string
}

// Duplicate forks a recipe into a caller-owned copy with a fresh id,
// fresh slug, and variantOf lineage. The embedding is recomputed for the
// possibly-overridden text; the hero image reference is inherited as is.
func (s *Service) Duplicate(ctx context.Context, groupID, id string, ov DuplicateOverrides) (*domrec.Recipe, error) {
	orig, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if groupID == "" {
		return nil, domain.ErrMissingGroup
	}

	dup := *orig
	if ov.Name != nil {
		dup.Name = *ov.Name
	}
	if ov.Description != nil {
		dup.Description = *ov.Description
	}
	if ov.Servings != nil {
		dup.Servings = *ov.Servings
	}
	if ov.Ingredients != nil {
		dup.Ingredients = *ov.Ingredients
	}
	if ov.Steps != nil {
		dup.Steps = *ov.Steps
	}
	if ov.Tags != nil {
		dup.Tags = *ov.Tags
	}
	if ov.Categories != nil {
		dup.Categories = *ov.Categories
	}
	if ov.SourceURL != nil {
		dup.SourceURL = *ov.SourceURL
	}
	dup.Normalize()
	if err := dup.Validate(); err != nil {
		return nil, err
	}

	newID := s.newID()
	allocated, err := s.slugs.Allocate(ctx, indexes.Recipes, dup.Name, newID)
	if err != nil {
		return nil, err
	}

	dup.ID = newID
	dup.Slug = allocated
	dup.VariantOf = orig.ID

	if err := s.embed(ctx, &dup); err != nil {
		return nil, err
	}

	dup.StampCreate(groupID, s.now())
	if err := s.repo.Put(ctx, &dup); err != nil {
		return nil, fmt.Errorf("duplicate recipe: %w", err)
	}
	return &dup, nil
}

// ArchiveBatch archives up to limit active recipes, scoped to scopeGroup
// when non-empty. Admin wipe path; no ownership check.
func (s *Service) ArchiveBatch(ctx context.Context, scopeGroup, by string, limit int) (int, error) {
	ids, err := s.repo.ActiveIDs(ctx, scopeGroup, limit)
	if err != nil {
		return 0, fmt.Errorf("list recipes for wipe: %w", err)
	}

	batch := make([]*domrec.Recipe, 0, len(ids))
	for _, id := range ids {
		doc, err := s.repo.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return 0, fmt.Errorf("load recipe %s for wipe: %w", id, err)
		}
		if doc.IsArchived {
			continue
		}
		doc.IsArchived = true
		doc.StampUpdate(by, s.now())
		batch = append(batch, doc)
	}

	if err := s.repo.PutAll(ctx, batch); err != nil {
		return 0, fmt.Errorf("archive recipe batch: %w", err)
	}
	for _, doc := range batch {
		if err := s.slugs.Release(ctx, indexes.Recipes, doc.Slug); err != nil {
			s.logger.Warn("Failed to release slug during wipe",
				zap.String("id", doc.ID), zap.String("slug", doc.Slug), zap.Error(err))
		}
	}
	return len(batch), nil
}

// embed refreshes the document embedding. A nil embedder disables the
// feature entirely.
func (s *Service) embed(ctx context.Context, doc *domrec.Recipe) error {
	if s.embedder == nil {
		return nil
	}
	result, err := s.embedder.Embed(ctx, doc.EmbeddingText())
	if err != nil {
		return fmt.Errorf("embed recipe text: %w", err)
	}
	doc.Embedding = result.Embedding
	return nil
}

func (s *Service) generateImage(ctx context.Context, doc *domrec.Recipe) error {
	if s.images == nil {
		return fmt.Errorf("image generation is not enabled: %w", domain.ErrValidation)
	}
	url, err := s.images.Generate(ctx, imagePrompt(doc))
	if err != nil {
		return fmt.Errorf("generate hero image: %w", err)
	}
	doc.ImageURL = url
	return nil
}

func imagePrompt(doc *domrec.Recipe) string {
	return fmt.Sprintf("Appetizing photo of the dish %q. %s", doc.Name, doc.Description)
}

func (s *Service) loadActive(ctx context.Context, id string) (*domrec.Recipe, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if doc.IsArchived {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}
