package recipe

import (
	"context"

	"github.com/ladle-cloud/ladle/internal/domain"
	domrec "github.com/ladle-cloud/ladle/internal/domain/recipe"
)

// Repository defines the storage contract for recipes.
type Repository interface {
	Put(ctx context.Context, doc *domrec.Recipe) error
	PutAll(ctx context.Context, batch []*domrec.Recipe) error
	Get(ctx context.Context, id string) (*domrec.Recipe, error)
	ListActive(ctx context.Context, offset, limit int) ([]*domrec.Recipe, int, error)
	ActiveIDs(ctx context.Context, groupID string, limit int) ([]string, error)
}

// SlugAllocator reserves collection-unique slugs; archived recipes give
// theirs back.
type SlugAllocator interface {
	Allocate(ctx context.Context, collection, name, docID string) (string, error)
	Release(ctx context.Context, collection, slug string) error
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// ImageGenerator produces a hero image URL for a prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
