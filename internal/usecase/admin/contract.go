package admin

import "context"

// Archiver archives up to limit active documents in one collection.
// An empty scopeGroup spans every group. Returns the number archived.
type Archiver interface {
	ArchiveBatch(ctx context.Context, scopeGroup, by string, limit int) (int, error)
}

// Collection pairs an archiver with the name reported in wipe results.
type Collection struct {
	Name     string
	Archiver Archiver
}
