package docs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ladle-cloud/ladle/internal/db"
	"github.com/ladle-cloud/ladle/internal/domain"
)

func TestPut_WritesFullDocument(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey, gotPath string
	var gotData []byte
	ms.jsonSetFn = func(ctx context.Context, key, path string, data []byte) error {
		gotKey, gotPath, gotData = key, path, data
		return nil
	}

	err := repo.Put(context.Background(), "r-1", &testDoc{ID: "r-1", Name: "soup"})
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if gotKey != "ladle:recipes:r-1" {
		t.Errorf("key = %q, want %q", gotKey, "ladle:recipes:r-1")
	}
	if gotPath != "$" {
		t.Errorf("path = %q, want $", gotPath)
	}
	var round testDoc
	if err := json.Unmarshal(gotData, &round); err != nil || round.Name != "soup" {
		t.Errorf("stored data = %s (err=%v)", gotData, err)
	}
}

func TestPutAll_PipelinesBatch(t *testing.T) {
	repo, ms := newTestRepo(t)

	var got []db.JSONSetItem
	ms.jsonSetMultiFn = func(ctx context.Context, items []db.JSONSetItem) error {
		got = items
		return nil
	}

	err := repo.PutAll(context.Background(), map[string]*testDoc{
		"a": {ID: "a", Name: "first"},
		"b": {ID: "b", Name: "second"},
	})
	if err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("items = %d, want 2", len(got))
	}
	keys := map[string]bool{}
	for _, it := range got {
		keys[it.Key] = true
	}
	if !keys["ladle:recipes:a"] || !keys["ladle:recipes:b"] {
		t.Errorf("keys = %v", keys)
	}
}

func TestPutAll_EmptyBatchSkipsStore(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonSetMultiFn = func(ctx context.Context, items []db.JSONSetItem) error {
		t.Error("store called for an empty batch")
		return nil
	}
	if err := repo.PutAll(context.Background(), nil); err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}
}

func TestGet(t *testing.T) {
	repo, ms := newTestRepo(t)

	t.Run("found", func(t *testing.T) {
		ms.jsonGetFn = func(ctx context.Context, key string, paths ...string) ([]byte, error) {
			if key != "ladle:recipes:r-1" {
				t.Errorf("key = %q", key)
			}
			return []byte(`{"id":"r-1","name":"soup"}`), nil
		}
		doc, err := repo.Get(context.Background(), "r-1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if doc.Name != "soup" {
			t.Errorf("Name = %q, want soup", doc.Name)
		}
	})

	t.Run("missing maps to not found", func(t *testing.T) {
		ms.jsonGetFn = func(ctx context.Context, key string, paths ...string) ([]byte, error) {
			return nil, db.ErrKeyNotFound
		}
		_, err := repo.Get(context.Background(), "nope")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("store failure passes through", func(t *testing.T) {
		boom := errors.New("connection reset")
		ms.jsonGetFn = func(ctx context.Context, key string, paths ...string) ([]byte, error) {
			return nil, boom
		}
		_, err := repo.Get(context.Background(), "r-1")
		if !errors.Is(err, boom) {
			t.Fatalf("Get() error = %v, want wrapped store error", err)
		}
	})
}

func TestList(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotQuery *db.ListQuery
	ms.searchListFn = func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		gotQuery = q
		return &db.SearchResult{
			Total: 3,
			Entries: []db.SearchEntry{
				{Key: "ladle:recipes:a", Fields: map[string]string{"$": `{"id":"a","name":"first"}`}},
				{Key: "ladle:recipes:b", Fields: map[string]string{"$": `{"id":"b","name":"second"}`}},
			},
		}, nil
	}

	out, total, err := repo.List(context.Background(), ListSpec{
		Filter:   "@isArchived:{false}",
		SortBy:   "updatedAt",
		SortDesc: true,
		Limit:    2,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(out) != 2 || out[0].Name != "first" || out[1].Name != "second" {
		t.Errorf("docs = %+v", out)
	}
	if gotQuery.IndexName != "ladle:recipes:idx" {
		t.Errorf("index = %q", gotQuery.IndexName)
	}
	if gotQuery.Query != "@isArchived:{false}" {
		t.Errorf("query = %q", gotQuery.Query)
	}
	if !gotQuery.SortDesc || gotQuery.SortBy != "updatedAt" {
		t.Errorf("sort = %q desc=%v", gotQuery.SortBy, gotQuery.SortDesc)
	}
}

func TestList_EmptyFilterMatchesAll(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchListFn = func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		if q.Query != "*" {
			t.Errorf("query = %q, want *", q.Query)
		}
		return &db.SearchResult{}, nil
	}
	if _, _, err := repo.List(context.Background(), ListSpec{Limit: 10}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
}

func TestListIDs_TrimsKeyPrefix(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchListFn = func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{Key: "ladle:recipes:a"},
				{Key: "ladle:recipes:b"},
			},
		}, nil
	}

	ids, total, err := repo.ListIDs(context.Background(), ListSpec{Limit: 100})
	if err != nil {
		t.Fatalf("ListIDs() error = %v", err)
	}
	if total != 2 || len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("ids = %v total = %d", ids, total)
	}
}

func TestCount(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchCountFn = func(ctx context.Context, index, query string) (int, error) {
		if index != "ladle:recipes:idx" {
			t.Errorf("index = %q", index)
		}
		if query != "@createdByGroupId:{g1}" {
			t.Errorf("query = %q", query)
		}
		return 7, nil
	}
	n, err := repo.Count(context.Background(), "@createdByGroupId:{g1}")
	if err != nil || n != 7 {
		t.Fatalf("Count() = %d, %v", n, err)
	}
}

func TestRemove(t *testing.T) {
	repo, ms := newTestRepo(t)
	var gotKey string
	ms.delFn = func(ctx context.Context, key string) error {
		gotKey = key
		return nil
	}
	if err := repo.Remove(context.Background(), "r-1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if gotKey != "ladle:recipes:r-1" {
		t.Errorf("key = %q", gotKey)
	}
}
