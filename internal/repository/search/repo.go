// Package search runs vector similarity queries against the recipe index.
package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ladle-cloud/ladle/internal/db"
	"github.com/ladle-cloud/ladle/internal/domain/recipe"
)

// Collection is the recipe collection name; the KNN index lives there.
const Collection = "recipes"

// store is the consumer interface for vector search (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Hit is a recipe matched by similarity, scored in [0,1] where 1 is an
// exact match.
type Hit struct {
	Recipe *recipe.Recipe
	Score  float64
}

// Repo implements the semantic search half of usecase/search.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a vector search repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// KNN returns the topK recipes nearest to the query vector. Archived
// recipes are excluded by the index pre-filter, so tombstones never rank.
func (r *Repo) KNN(ctx context.Context, vector []float32, topK int) ([]Hit, error) {
	q := &db.KNNQuery{
		IndexName:    fmt.Sprintf("%s%s:idx", r.keyPrefix, Collection),
		Filter:       db.TagFilter("isArchived", "false"),
		Vector:       vector,
		K:            topK,
		ReturnFields: []string{"$"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", Collection, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	hits := make([]Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		raw := entry.Fields["$"]
		if raw == "" {
			continue
		}
		var rec recipe.Recipe
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", entry.Key, err)
		}
		hits = append(hits, Hit{Recipe: &rec, Score: entry.Score})
	}
	return hits, nil
}
