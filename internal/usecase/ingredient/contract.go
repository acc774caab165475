package ingredient

import (
	"context"

	doming "github.com/ladle-cloud/ladle/internal/domain/ingredient"
)

// Repository defines the storage contract for ingredients.
type Repository interface {
	Put(ctx context.Context, doc *doming.Ingredient) error
	PutAll(ctx context.Context, batch []*doming.Ingredient) error
	Get(ctx context.Context, id string) (*doming.Ingredient, error)
	ListActive(ctx context.Context, offset, limit int) ([]*doming.Ingredient, int, error)
	FindArchivedBySlug(ctx context.Context, slug string) (*doming.Ingredient, error)
	ActiveIDs(ctx context.Context, groupID string, limit int) ([]string, error)
}

// SlugAllocator reserves collection-unique slugs. Ingredient slugs are
// never released: the tombstone keeps its identity after archival.
// Holder reports which document owns a reservation; resurrection uses it
// to confirm the archived document still holds its slug.
type SlugAllocator interface {
	Allocate(ctx context.Context, collection, name, docID string) (string, error)
	Holder(ctx context.Context, collection, slug string) (string, error)
}
