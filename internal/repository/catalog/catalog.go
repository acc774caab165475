// Package catalog exposes one typed repository per collection. Each wraps
// the generic document repo with the collection's filters and sort order,
// so the use case layer never sees FT query syntax.
package catalog

import (
	"context"
	"fmt"

	"github.com/ladle-cloud/ladle/internal/db"
	"github.com/ladle-cloud/ladle/internal/domain"
	"github.com/ladle-cloud/ladle/internal/domain/ingredient"
	"github.com/ladle-cloud/ladle/internal/domain/recipe"
	"github.com/ladle-cloud/ladle/internal/domain/suggestion"
	"github.com/ladle-cloud/ladle/internal/repository/docs"
	"github.com/ladle-cloud/ladle/internal/repository/indexes"
)

// Store is the consumer interface shared by all collection repos (ISP).
type Store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
}

// entityRepo is the shared half of every collection repo: active-only
// listing ordered by the collection's sort field.
type entityRepo[T any] struct {
	docs     *docs.Repo[T]
	sortBy   string
	sortDesc bool
}

// Get returns the document, archived or not. Callers decide visibility.
func (r *entityRepo[T]) Get(ctx context.Context, id string) (*T, error) {
	return r.docs.Get(ctx, id)
}

// ListActive returns one page of non-archived documents plus the exact
// total of active documents.
func (r *entityRepo[T]) ListActive(ctx context.Context, offset, limit int) ([]*T, int, error) {
	return r.docs.List(ctx, docs.ListSpec{
		Filter:   activeFilter(),
		SortBy:   r.sortBy,
		SortDesc: r.sortDesc,
		Offset:   offset,
		Limit:    limit,
	})
}

// ActiveIDs returns up to limit non-archived document IDs, optionally
// scoped to one owning group. Used by the wipe batches.
func (r *entityRepo[T]) ActiveIDs(ctx context.Context, groupID string, limit int) ([]string, error) {
	filter := activeFilter()
	if groupID != "" {
		filter += " " + db.TagFilter("createdByGroupId", groupID)
	}
	ids, _, err := r.docs.ListIDs(ctx, docs.ListSpec{Filter: filter, Limit: limit})
	return ids, err
}

// CountByGroup returns the number of active documents owned by a group.
func (r *entityRepo[T]) CountByGroup(ctx context.Context, groupID string) (int, error) {
	return r.docs.Count(ctx, activeFilter()+" "+db.TagFilter("createdByGroupId", groupID))
}

// findArchivedBySlug looks up an archived document holding the slug.
// Returns domain.ErrNotFound when no archived document has it.
func (r *entityRepo[T]) findArchivedBySlug(ctx context.Context, slug string) (*T, error) {
	out, _, err := r.docs.List(ctx, docs.ListSpec{
		Filter: db.TagFilter("slug", slug) + " " + db.TagFilter("isArchived", "true"),
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, domain.ErrNotFound
	}
	return out[0], nil
}

func activeFilter() string {
	return db.TagFilter("isArchived", "false")
}

// Ingredients is the ingredient collection repository.
type Ingredients struct {
	entityRepo[ingredient.Ingredient]
}

// NewIngredients creates the ingredient repository.
func NewIngredients(s Store, keyPrefix string) *Ingredients {
	return &Ingredients{entityRepo[ingredient.Ingredient]{
		docs:     docs.New[ingredient.Ingredient](s, keyPrefix, indexes.Ingredients),
		sortBy:   "updatedAt",
		sortDesc: true,
	}}
}

// Put writes the full ingredient document.
func (r *Ingredients) Put(ctx context.Context, doc *ingredient.Ingredient) error {
	if doc.ID == "" {
		return fmt.Errorf("ingredient has no id: %w", domain.ErrValidation)
	}
	return r.docs.Put(ctx, doc.ID, doc)
}

// PutAll writes a batch of ingredient documents in one round trip.
func (r *Ingredients) PutAll(ctx context.Context, batch []*ingredient.Ingredient) error {
	items, err := keyByID(batch, func(d *ingredient.Ingredient) string { return d.ID })
	if err != nil {
		return err
	}
	return r.docs.PutAll(ctx, items)
}

// FindArchivedBySlug returns the archived ingredient holding the slug,
// for the resurrection policy.
func (r *Ingredients) FindArchivedBySlug(ctx context.Context, slug string) (*ingredient.Ingredient, error) {
	return r.findArchivedBySlug(ctx, slug)
}

// Recipes is the recipe collection repository.
type Recipes struct {
	entityRepo[recipe.Recipe]
}

// NewRecipes creates the recipe repository.
func NewRecipes(s Store, keyPrefix string) *Recipes {
	return &Recipes{entityRepo[recipe.Recipe]{
		docs:     docs.New[recipe.Recipe](s, keyPrefix, indexes.Recipes),
		sortBy:   "updatedAt",
		sortDesc: true,
	}}
}

// Put writes the full recipe document.
func (r *Recipes) Put(ctx context.Context, doc *recipe.Recipe) error {
	if doc.ID == "" {
		return fmt.Errorf("recipe has no id: %w", domain.ErrValidation)
	}
	return r.docs.Put(ctx, doc.ID, doc)
}

// PutAll writes a batch of recipe documents in one round trip.
func (r *Recipes) PutAll(ctx context.Context, batch []*recipe.Recipe) error {
	items, err := keyByID(batch, func(d *recipe.Recipe) string { return d.ID })
	if err != nil {
		return err
	}
	return r.docs.PutAll(ctx, items)
}

// ListAllActive walks every non-archived recipe in pages. The keyword
// scorer needs the full candidate set, not one page.
func (r *Recipes) ListAllActive(ctx context.Context, pageSize int) ([]*recipe.Recipe, error) {
	if pageSize <= 0 {
		pageSize = 500
	}
	var all []*recipe.Recipe
	for offset := 0; ; offset += pageSize {
		page, total, err := r.ListActive(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize || len(all) >= total {
			return all, nil
		}
	}
}

// Suggestions is the suggestion collection repository. Listing orders by
// the rank field, a composite of votes and creation time, so one FT
// SORTBY yields votes-desc with newest-first ties.
type Suggestions struct {
	entityRepo[suggestion.Suggestion]
}

// NewSuggestions creates the suggestion repository.
func NewSuggestions(s Store, keyPrefix string) *Suggestions {
	return &Suggestions{entityRepo[suggestion.Suggestion]{
		docs:     docs.New[suggestion.Suggestion](s, keyPrefix, indexes.Suggestions),
		sortBy:   "rank",
		sortDesc: true,
	}}
}

// Put writes the full suggestion document, refreshing the rank key so
// the index never sees stale vote or creation-time ordering.
func (r *Suggestions) Put(ctx context.Context, doc *suggestion.Suggestion) error {
	if doc.ID == "" {
		return fmt.Errorf("suggestion has no id: %w", domain.ErrValidation)
	}
	doc.RecomputeRank()
	return r.docs.Put(ctx, doc.ID, doc)
}

// PutAll writes a batch of suggestion documents in one round trip.
func (r *Suggestions) PutAll(ctx context.Context, batch []*suggestion.Suggestion) error {
	for _, doc := range batch {
		doc.RecomputeRank()
	}
	items, err := keyByID(batch, func(d *suggestion.Suggestion) string { return d.ID })
	if err != nil {
		return err
	}
	return r.docs.PutAll(ctx, items)
}

// keyByID maps a document batch by ID, rejecting documents without one.
func keyByID[T any](batch []*T, id func(*T) string) (map[string]*T, error) {
	items := make(map[string]*T, len(batch))
	for _, doc := range batch {
		k := id(doc)
		if k == "" {
			return nil, fmt.Errorf("document has no id: %w", domain.ErrValidation)
		}
		items[k] = doc
	}
	return items, nil
}
