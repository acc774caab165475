// Package docs is the shared JSON document repository. One Repo instance
// serves one collection (ingredients, recipes, suggestions); the document
// type is a type parameter so callers get their own structs back without
// per-entity unmarshal plumbing.
package docs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ladle-cloud/ladle/internal/db"
	"github.com/ladle-cloud/ladle/internal/domain"
)

// store is the consumer interface for document storage (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
}

// ListSpec narrows and orders a List call. Filter is an FT query clause;
// empty means match everything.
type ListSpec struct {
	Filter   string
	SortBy   string
	SortDesc bool
	Offset   int
	Limit    int
}

// Repo stores documents of type T under {prefix}{collection}:{id} and
// lists them through the collection's FT index.
type Repo[T any] struct {
	store      store
	collection string
	keyPrefix  string
}

// New creates a document repository for one collection.
func New[T any](s store, keyPrefix, collection string) *Repo[T] {
	return &Repo[T]{store: s, collection: collection, keyPrefix: keyPrefix}
}

// Put writes the full document at its key.
func (r *Repo[T]) Put(ctx context.Context, id string, doc *T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", r.collection, id, err)
	}
	key := r.Key(id)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// PutAll writes every document in one pipelined round trip, keyed by
// document ID. Batch archival goes through here so a wipe touching
// hundreds of documents is not hundreds of JSON.SET calls.
func (r *Repo[T]) PutAll(ctx context.Context, items map[string]*T) error {
	if len(items) == 0 {
		return nil
	}
	batch := make([]db.JSONSetItem, 0, len(items))
	for id, doc := range items {
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", r.collection, id, err)
		}
		batch = append(batch, db.JSONSetItem{Key: r.Key(id), Path: "$", Data: data})
	}
	if err := r.store.JSONSetMulti(ctx, batch); err != nil {
		return fmt.Errorf("json.set multi %s: %w", r.collection, err)
	}
	return nil
}

// Get returns the document by ID. Missing keys map to domain.ErrNotFound;
// archived documents are returned as stored, visibility is the caller's
// concern.
func (r *Repo[T]) Get(ctx context.Context, id string) (*T, error) {
	key := r.Key(id)
	raw, err := r.store.JSONGet(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("json.get %s: %w", key, err)
	}

	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return &doc, nil
}

// Exists reports whether the document key is present, archived or not.
func (r *Repo[T]) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.store.Exists(ctx, r.Key(id))
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", r.Key(id), err)
	}
	return ok, nil
}

// Remove hard-deletes the document. Soft delete is an update with
// isArchived=true and goes through Put.
func (r *Repo[T]) Remove(ctx context.Context, id string) error {
	key := r.Key(id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// List returns one page of documents plus the total match count.
func (r *Repo[T]) List(ctx context.Context, spec ListSpec) ([]*T, int, error) {
	q := &db.ListQuery{
		IndexName:    r.IndexName(),
		Query:        orAll(spec.Filter),
		SortBy:       spec.SortBy,
		SortDesc:     spec.SortDesc,
		Offset:       spec.Offset,
		Limit:        spec.Limit,
		ReturnFields: []string{"$"},
	}

	sr, err := r.store.SearchList(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("search list %s: %w", r.collection, err)
	}
	if sr == nil {
		return nil, 0, nil
	}

	out := make([]*T, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		raw := entry.Fields["$"]
		if raw == "" {
			continue
		}
		var doc T
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, 0, fmt.Errorf("unmarshal %s: %w", entry.Key, err)
		}
		out = append(out, &doc)
	}
	return out, sr.Total, nil
}

// ListIDs returns one page of document IDs matching the filter. Used by
// batch operations that do not need document bodies.
func (r *Repo[T]) ListIDs(ctx context.Context, spec ListSpec) ([]string, int, error) {
	q := &db.ListQuery{
		IndexName: r.IndexName(),
		Query:     orAll(spec.Filter),
		SortBy:    spec.SortBy,
		SortDesc:  spec.SortDesc,
		Offset:    spec.Offset,
		Limit:     spec.Limit,
	}

	sr, err := r.store.SearchList(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("search ids %s: %w", r.collection, err)
	}
	if sr == nil {
		return nil, 0, nil
	}

	ids := make([]string, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		ids = append(ids, r.trimKey(entry.Key))
	}
	return ids, sr.Total, nil
}

// Count returns the number of documents matching the filter.
func (r *Repo[T]) Count(ctx context.Context, filter string) (int, error) {
	n, err := r.store.SearchCount(ctx, r.IndexName(), orAll(filter))
	if err != nil {
		return 0, fmt.Errorf("search count %s: %w", r.collection, err)
	}
	return n, nil
}

// Key returns the storage key for a document ID.
func (r *Repo[T]) Key(id string) string {
	return fmt.Sprintf("%s%s:%s", r.keyPrefix, r.collection, id)
}

// IndexName returns the FT index name for this collection.
func (r *Repo[T]) IndexName() string {
	return fmt.Sprintf("%s%s:idx", r.keyPrefix, r.collection)
}

func (r *Repo[T]) trimKey(key string) string {
	return strings.TrimPrefix(key, fmt.Sprintf("%s%s:", r.keyPrefix, r.collection))
}

func orAll(filter string) string {
	if filter == "" {
		return "*"
	}
	return filter
}
