package suggestion

import (
	"context"

	domsug "github.com/ladle-cloud/ladle/internal/domain/suggestion"
)

// Repository defines the storage contract for suggestions.
type Repository interface {
	Put(ctx context.Context, doc *domsug.Suggestion) error
	PutAll(ctx context.Context, batch []*domsug.Suggestion) error
	Get(ctx context.Context, id string) (*domsug.Suggestion, error)
	ListActive(ctx context.Context, offset, limit int) ([]*domsug.Suggestion, int, error)
	ActiveIDs(ctx context.Context, groupID string, limit int) ([]string, error)
}
