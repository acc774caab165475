// Package slugs reserves slugs atomically so two concurrent creates can
// never claim the same slug. A reservation is a plain key holding the
// owning document ID; SET NX is the claim, DEL is the release.
package slugs

import (
	"context"
	"errors"
	"fmt"

	"github.com/ladle-cloud/ladle/internal/db"
	"github.com/ladle-cloud/ladle/internal/domain"
	"github.com/ladle-cloud/ladle/internal/domain/slug"
)

// maxCandidates bounds the suffix probe. Hitting it means thousands of
// live documents share one name, treat that as a validation failure.
const maxCandidates = 1000

// store is the consumer interface for slug reservations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetNX(ctx context.Context, key string, value []byte) (bool, error)
	Del(ctx context.Context, key string) error
}

// Repo manages slug reservation keys under {prefix}slug:{collection}:{slug}.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a slug reservation repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Allocate derives a slug from name and claims the first free candidate:
// the base form, then -2, -3 suffixes. When docID is empty the slug
// doubles as the document ID and is stored as its own reservation value.
func (r *Repo) Allocate(ctx context.Context, collection, name, docID string) (string, error) {
	base := slug.Normalize(name)
	if base == "" {
		return "", fmt.Errorf("name %q yields an empty slug: %w", name, domain.ErrValidation)
	}

	for n := 1; n <= maxCandidates; n++ {
		candidate := slug.Candidate(base, n)
		value := docID
		if value == "" {
			value = candidate
		}
		ok, err := r.Reserve(ctx, collection, candidate, value)
		if err != nil {
			return "", err
		}
		if ok {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free slug for %q after %d candidates: %w", name, maxCandidates, domain.ErrValidation)
}

// Reserve claims the slug for docID. Returns false when the slug is
// already held, by anyone, including docID itself.
func (r *Repo) Reserve(ctx context.Context, collection, slug, docID string) (bool, error) {
	ok, err := r.store.SetNX(ctx, r.key(collection, slug), []byte(docID))
	if err != nil {
		return false, fmt.Errorf("reserve slug %q: %w", slug, err)
	}
	return ok, nil
}

// Release frees the slug. Releasing an unreserved slug is a no-op.
func (r *Repo) Release(ctx context.Context, collection, slug string) error {
	if err := r.store.Del(ctx, r.key(collection, slug)); err != nil {
		return fmt.Errorf("release slug %q: %w", slug, err)
	}
	return nil
}

// Holder returns the document ID holding the slug, or "" when the slug
// is free.
func (r *Repo) Holder(ctx context.Context, collection, slug string) (string, error) {
	data, err := r.store.Get(ctx, r.key(collection, slug))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("lookup slug %q: %w", slug, err)
	}
	return string(data), nil
}

func (r *Repo) key(collection, slug string) string {
	return fmt.Sprintf("%sslug:%s:%s", r.keyPrefix, collection, slug)
}
