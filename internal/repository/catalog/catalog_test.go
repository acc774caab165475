package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ladle-cloud/ladle/internal/db"
	"github.com/ladle-cloud/ladle/internal/domain"
	"github.com/ladle-cloud/ladle/internal/domain/ingredient"
	"github.com/ladle-cloud/ladle/internal/domain/recipe"
	"github.com/ladle-cloud/ladle/internal/domain/suggestion"
)

// mockStore implements Store for tests.
type mockStore struct {
	jsonSetFn      func(ctx context.Context, key, path string, data []byte) error
	jsonSetMultiFn func(ctx context.Context, items []db.JSONSetItem) error
	jsonGetFn      func(ctx context.Context, key string, paths ...string) ([]byte, error)
	searchListFn   func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	searchCountFn  func(ctx context.Context, index, query string) (int, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error {
	if m.jsonSetMultiFn != nil {
		return m.jsonSetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error { return nil }

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) { return false, nil }

func (m *mockStore) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index, query string) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, query)
	}
	return 0, nil
}

func TestListActive_Query(t *testing.T) {
	ms := &mockStore{}
	repo := NewIngredients(ms, "ladle:")

	var got *db.ListQuery
	ms.searchListFn = func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		got = q
		return &db.SearchResult{}, nil
	}

	if _, _, err := repo.ListActive(context.Background(), 4, 2); err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if got.IndexName != "ladle:ingredients:idx" {
		t.Errorf("index = %q", got.IndexName)
	}
	if got.Query != "@isArchived:{false}" {
		t.Errorf("query = %q", got.Query)
	}
	if got.SortBy != "updatedAt" || !got.SortDesc {
		t.Errorf("sort = %q desc=%v", got.SortBy, got.SortDesc)
	}
	if got.Offset != 4 || got.Limit != 2 {
		t.Errorf("page = %d/%d", got.Offset, got.Limit)
	}
}

func TestSuggestions_SortByRank(t *testing.T) {
	ms := &mockStore{}
	repo := NewSuggestions(ms, "ladle:")

	var got *db.ListQuery
	ms.searchListFn = func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		got = q
		return &db.SearchResult{}, nil
	}

	if _, _, err := repo.ListActive(context.Background(), 0, 10); err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if got.SortBy != "rank" || !got.SortDesc {
		t.Errorf("sort = %q desc=%v, want rank desc", got.SortBy, got.SortDesc)
	}
}

func TestSuggestions_PutRefreshesRank(t *testing.T) {
	ms := &mockStore{}
	repo := NewSuggestions(ms, "ladle:")

	var stored []byte
	ms.jsonSetFn = func(ctx context.Context, key, path string, data []byte) error {
		stored = data
		return nil
	}

	doc := &suggestion.Suggestion{Title: "Dark mode", Votes: 3}
	doc.ID = "s-1"
	doc.CreatedAt = 1_700_000_000_000
	doc.Rank = 0 // stale on purpose
	if err := repo.Put(context.Background(), doc); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	want := int64(3)<<32 | 1_700_000_000
	if doc.Rank != want {
		t.Errorf("rank = %d, want %d", doc.Rank, want)
	}
	var persisted suggestion.Suggestion
	if err := json.Unmarshal(stored, &persisted); err != nil {
		t.Fatalf("unmarshal stored doc: %v", err)
	}
	if persisted.Rank != want {
		t.Errorf("persisted rank = %d, want %d", persisted.Rank, want)
	}
}

func TestActiveIDs_GroupScope(t *testing.T) {
	ms := &mockStore{}
	repo := NewRecipes(ms, "ladle:")

	var got *db.ListQuery
	ms.searchListFn = func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		got = q
		return &db.SearchResult{Entries: []db.SearchEntry{{Key: "ladle:recipes:r-1"}}}, nil
	}

	ids, err := repo.ActiveIDs(context.Background(), "kitchen-a", 100)
	if err != nil {
		t.Fatalf("ActiveIDs() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != "r-1" {
		t.Errorf("ids = %v", ids)
	}
	want := "@isArchived:{false} @createdByGroupId:{kitchen\\-a}"
	if got.Query != want {
		t.Errorf("query = %q, want %q", got.Query, want)
	}
}

func TestActiveIDs_AllGroups(t *testing.T) {
	ms := &mockStore{}
	repo := NewRecipes(ms, "ladle:")

	ms.searchListFn = func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		if q.Query != "@isArchived:{false}" {
			t.Errorf("query = %q", q.Query)
		}
		return &db.SearchResult{}, nil
	}
	if _, err := repo.ActiveIDs(context.Background(), "", 100); err != nil {
		t.Fatalf("ActiveIDs() error = %v", err)
	}
}

func TestFindArchivedBySlug(t *testing.T) {
	ms := &mockStore{}
	repo := NewIngredients(ms, "ladle:")

	t.Run("found", func(t *testing.T) {
		ms.searchListFn = func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
			want := "@slug:{egg} @isArchived:{true}"
			if q.Query != want {
				t.Errorf("query = %q, want %q", q.Query, want)
			}
			return &db.SearchResult{
				Total: 1,
				Entries: []db.SearchEntry{{
					Key:    "ladle:ingredients:egg",
					Fields: map[string]string{"$": `{"id":"egg","name":"Egg","slug":"egg","isArchived":true}`},
				}},
			}, nil
		}
		doc, err := repo.FindArchivedBySlug(context.Background(), "egg")
		if err != nil {
			t.Fatalf("FindArchivedBySlug() error = %v", err)
		}
		if doc.ID != "egg" || !doc.IsArchived {
			t.Errorf("doc = %+v", doc)
		}
	})

	t.Run("none", func(t *testing.T) {
		ms.searchListFn = func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
			return &db.SearchResult{}, nil
		}
		if _, err := repo.FindArchivedBySlug(context.Background(), "egg"); err != domain.ErrNotFound {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestPutAll_SingleRoundTrip(t *testing.T) {
	ms := &mockStore{}
	repo := NewRecipes(ms, "ladle:")

	var gotItems []db.JSONSetItem
	calls := 0
	ms.jsonSetMultiFn = func(ctx context.Context, items []db.JSONSetItem) error {
		calls++
		gotItems = items
		return nil
	}
	ms.jsonSetFn = func(ctx context.Context, key, path string, data []byte) error {
		t.Error("single-document JSONSet used for a batch write")
		return nil
	}

	a := &recipe.Recipe{Name: "Carbonara"}
	a.ID = "r-1"
	b := &recipe.Recipe{Name: "Cacio e Pepe"}
	b.ID = "r-2"
	if err := repo.PutAll(context.Background(), []*recipe.Recipe{a, b}); err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("round trips = %d, want 1", calls)
	}
	keys := map[string]bool{}
	for _, it := range gotItems {
		keys[it.Key] = true
		if it.Path != "$" {
			t.Errorf("path = %q", it.Path)
		}
	}
	if !keys["ladle:recipes:r-1"] || !keys["ladle:recipes:r-2"] {
		t.Errorf("keys = %v", keys)
	}
}

func TestPutAll_RequiresID(t *testing.T) {
	ms := &mockStore{}
	repo := NewRecipes(ms, "ladle:")

	if err := repo.PutAll(context.Background(), []*recipe.Recipe{{Name: "No ID"}}); err == nil {
		t.Fatal("PutAll() accepted a document without an id")
	}
}

func TestPut_RequiresID(t *testing.T) {
	ms := &mockStore{}
	repo := NewIngredients(ms, "ladle:")

	doc := &ingredient.Ingredient{Name: "Egg"}
	if err := repo.Put(context.Background(), doc); err == nil {
		t.Fatal("Put() accepted a document without an id")
	}
}

func TestListAllActive_Pages(t *testing.T) {
	ms := &mockStore{}
	repo := NewRecipes(ms, "ladle:")

	pages := [][]db.SearchEntry{
		{
			{Key: "ladle:recipes:a", Fields: map[string]string{"$": `{"id":"a"}`}},
			{Key: "ladle:recipes:b", Fields: map[string]string{"$": `{"id":"b"}`}},
		},
		{
			{Key: "ladle:recipes:c", Fields: map[string]string{"$": `{"id":"c"}`}},
		},
	}
	call := 0
	ms.searchListFn = func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		entries := pages[call]
		call++
		return &db.SearchResult{Total: 3, Entries: entries}, nil
	}

	all, err := repo.ListAllActive(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListAllActive() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if call != 2 {
		t.Errorf("pages fetched = %d, want 2", call)
	}
}
