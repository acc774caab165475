package search

import (
	"context"

	"github.com/ladle-cloud/ladle/internal/domain"
	domrec "github.com/ladle-cloud/ladle/internal/domain/recipe"
	repsearch "github.com/ladle-cloud/ladle/internal/repository/search"
)

// RecipeSource supplies the keyword candidate set.
type RecipeSource interface {
	ListAllActive(ctx context.Context, pageSize int) ([]*domrec.Recipe, error)
}

// VectorSearcher runs nearest-neighbor queries over the recipe index.
type VectorSearcher interface {
	KNN(ctx context.Context, vector []float32, topK int) ([]repsearch.Hit, error)
}

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
