// Package indexes declares the FT index schemas for every collection and
// bootstraps them at startup.
package indexes

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ladle-cloud/ladle/internal/db"
)

// Collection names. Double as key segments and index name stems.
const (
	Ingredients = "ingredients"
	Recipes     = "recipes"
	Suggestions = "suggestions"
)

// HNSWConfig tunes the recipe vector index.
type HNSWConfig struct {
	Dim         int
	M           int
	EFConstruct int
}

// manager is the consumer interface for index bootstrap (ISP).
type manager interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// envelopeFields are indexed on every collection: soft-delete filtering,
// ownership filtering and count, and recency ordering.
func envelopeFields() []db.IndexField {
	return []db.IndexField{
		{Name: "$.isArchived", Alias: "isArchived", Type: db.IndexFieldTag},
		{Name: "$.createdByGroupId", Alias: "createdByGroupId", Type: db.IndexFieldTag},
		{Name: "$.updatedAt", Alias: "updatedAt", Type: db.IndexFieldNumeric, Sortable: true},
	}
}

// Ingredient index: envelope plus slug lookup.
func ingredientIndex(keyPrefix string) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     indexName(keyPrefix, Ingredients),
		Prefixes: []string{collectionPrefix(keyPrefix, Ingredients)},
		Fields: append(envelopeFields(),
			db.IndexField{Name: "$.slug", Alias: "slug", Type: db.IndexFieldTag},
		),
	}
}

// Recipe index: envelope, slug, and the HNSW vector for similarity search.
func recipeIndex(keyPrefix string, hnsw HNSWConfig) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     indexName(keyPrefix, Recipes),
		Prefixes: []string{collectionPrefix(keyPrefix, Recipes)},
		Fields: append(envelopeFields(),
			db.IndexField{Name: "$.slug", Alias: "slug", Type: db.IndexFieldTag},
			db.IndexField{
				Name:              "$.embedding",
				Alias:             "embedding",
				Type:              db.IndexFieldVector,
				VectorDim:         hnsw.Dim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           hnsw.M,
				VectorEFConstruct: hnsw.EFConstruct,
			},
		),
	}
}

// Suggestion index: envelope plus the composite rank key. Rank packs
// votes and creation time into one sortable numeric, since FT SORTBY
// takes a single field.
func suggestionIndex(keyPrefix string) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     indexName(keyPrefix, Suggestions),
		Prefixes: []string{collectionPrefix(keyPrefix, Suggestions)},
		Fields: append(envelopeFields(),
			db.IndexField{Name: "$.rank", Alias: "rank", Type: db.IndexFieldNumeric, Sortable: true},
		),
	}
}

// EnsureAll creates any missing collection index. Existing indexes are
// left untouched, schema migrations are a manual operation.
func EnsureAll(ctx context.Context, m manager, keyPrefix string, hnsw HNSWConfig, logger *zap.Logger) error {
	defs := []*db.IndexDefinition{
		ingredientIndex(keyPrefix),
		recipeIndex(keyPrefix, hnsw),
		suggestionIndex(keyPrefix),
	}

	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return fmt.Errorf("index %s: %w", def.Name, err)
		}

		exists, err := m.IndexExists(ctx, def.Name)
		if err != nil {
			return fmt.Errorf("check index %s: %w", def.Name, err)
		}
		if exists {
			logger.Debug("Index already exists", zap.String("index", def.Name))
			continue
		}

		if err := m.CreateIndex(ctx, def); err != nil {
			return fmt.Errorf("create index %s: %w", def.Name, err)
		}
		logger.Info("Created index", zap.String("index", def.Name))
	}
	return nil
}

func indexName(keyPrefix, collection string) string {
	return fmt.Sprintf("%s%s:idx", keyPrefix, collection)
}

func collectionPrefix(keyPrefix, collection string) string {
	return fmt.Sprintf("%s%s:", keyPrefix, collection)
}
