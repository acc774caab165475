package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	doming "github.com/ladle-cloud/ladle/internal/domain/ingredient"
	domrec "github.com/ladle-cloud/ladle/internal/domain/recipe"
	domsug "github.com/ladle-cloud/ladle/internal/domain/suggestion"
	adminuc "github.com/ladle-cloud/ladle/internal/usecase/admin"
	healthuc "github.com/ladle-cloud/ladle/internal/usecase/health"
	ingredientuc "github.com/ladle-cloud/ladle/internal/usecase/ingredient"
	recipeuc "github.com/ladle-cloud/ladle/internal/usecase/recipe"
	searchuc "github.com/ladle-cloud/ladle/internal/usecase/search"
	suggestionuc "github.com/ladle-cloud/ladle/internal/usecase/suggestion"
)

// --- Mocks ---

type mockIngredients struct {
	createFn    func(ctx context.Context, groupID string, in *doming.Ingredient) (*doming.Ingredient, error)
	getFn       func(ctx context.Context, id string) (*doming.Ingredient, error)
	updateFn    func(ctx context.Context, groupID, id string, p ingredientuc.UpdateParams) (*doming.Ingredient, error)
	deleteFn    func(ctx context.Context, groupID, id string) error
	listFn      func(ctx context.Context, offset, limit int) ([]*doming.Ingredient, bool, error)
	duplicateFn func(ctx context.Context, groupID, id string, ov ingredientuc.DuplicateOverrides) (*doming.Ingredient, error)
}

func (m *mockIngredients) Create(ctx context.Context, groupID string, in *doming.Ingredient) (*doming.Ingredient, error) {
	return m.createFn(ctx, groupID, in)
}

func (m *mockIngredients) Get(ctx context.Context, id string) (*doming.Ingredient, error) {
	return m.getFn(ctx, id)
}

func (m *mockIngredients) Update(ctx context.Context, groupID, id string, p ingredientuc.UpdateParams) (*doming.Ingredient, error) {
	return m.updateFn(ctx, groupID, id, p)
}

func (m *mockIngredients) Delete(ctx context.Context, groupID, id string) error {
	return m.deleteFn(ctx, groupID, id)
}

func (m *mockIngredients) List(ctx context.Context, offset, limit int) ([]*doming.Ingredient, bool, error) {
	return m.listFn(ctx, offset, limit)
}

func (m *mockIngredients) Duplicate(ctx context.Context, groupID, id string, ov ingredientuc.DuplicateOverrides) (*doming.Ingredient, error) {
	return m.duplicateFn(ctx, groupID, id, ov)
}

type mockRecipes struct {
	createFn    func(ctx context.Context, groupID string, in *domrec.Recipe, generateImage bool) (*domrec.Recipe, error)
	getFn       func(ctx context.Context, id string) (*domrec.Recipe, error)
	updateFn    func(ctx context.Context, groupID, id string, p recipeuc.UpdateParams) (*domrec.Recipe, error)
	deleteFn    func(ctx context.Context, groupID, id string) error
	listFn      func(ctx context.Context, offset, limit int) ([]*domrec.Recipe, bool, error)
	duplicateFn func(ctx context.Context, groupID, id string, ov recipeuc.DuplicateOverrides) (*domrec.Recipe, error)
}

func (m *mockRecipes) Create(ctx context.Context, groupID string, in *domrec.Recipe, generateImage bool) (*domrec.Recipe, error) {
	return m.createFn(ctx, groupID, in, generateImage)
}

func (m *mockRecipes) Get(ctx context.Context, id string) (*domrec.Recipe, error) {
	return m.getFn(ctx, id)
}

func (m *mockRecipes) Update(ctx context.Context, groupID, id string, p recipeuc.UpdateParams) (*domrec.Recipe, error) {
	return m.updateFn(ctx, groupID, id, p)
}

func (m *mockRecipes) Delete(ctx context.Context, groupID, id string) error {
	return m.deleteFn(ctx, groupID, id)
}

func (m *mockRecipes) List(ctx context.Context, offset, limit int) ([]*domrec.Recipe, bool, error) {
	return m.listFn(ctx, offset, limit)
}

func (m *mockRecipes) Duplicate(ctx context.Context, groupID, id string, ov recipeuc.DuplicateOverrides) (*domrec.Recipe, error) {
	return m.duplicateFn(ctx, groupID, id, ov)
}

type mockSuggestions struct {
	createFn    func(ctx context.Context, groupID string, in *domsug.Suggestion) (*domsug.Suggestion, error)
	getFn       func(ctx context.Context, id string) (*domsug.Suggestion, error)
	updateFn    func(ctx context.Context, groupID, id string, p suggestionuc.UpdateParams) (*domsug.Suggestion, error)
	deleteFn    func(ctx context.Context, groupID, id string) error
	listFn      func(ctx context.Context, offset, limit int) ([]*domsug.Suggestion, bool, error)
	duplicateFn func(ctx context.Context, groupID, id string, ov suggestionuc.DuplicateOverrides) (*domsug.Suggestion, error)
	voteFn      func(ctx context.Context, groupID, id string) (*domsug.Suggestion, bool, error)
}

func (m *mockSuggestions) Create(ctx context.Context, groupID string, in *domsug.Suggestion) (*domsug.Suggestion, error) {
	return m.createFn(ctx, groupID, in)
}

func (m *mockSuggestions) Get(ctx context.Context, id string) (*domsug.Suggestion, error) {
	return m.getFn(ctx, id)
}

func (m *mockSuggestions) Update(ctx context.Context, groupID, id string, p suggestionuc.UpdateParams) (*domsug.Suggestion, error) {
	return m.updateFn(ctx, groupID, id, p)
}

func (m *mockSuggestions) Delete(ctx context.Context, groupID, id string) error {
	return m.deleteFn(ctx, groupID, id)
}

func (m *mockSuggestions) List(ctx context.Context, offset, limit int) ([]*domsug.Suggestion, bool, error) {
	return m.listFn(ctx, offset, limit)
}

func (m *mockSuggestions) Duplicate(ctx context.Context, groupID, id string, ov suggestionuc.DuplicateOverrides) (*domsug.Suggestion, error) {
	return m.duplicateFn(ctx, groupID, id, ov)
}

func (m *mockSuggestions) Vote(ctx context.Context, groupID, id string) (*domsug.Suggestion, bool, error) {
	return m.voteFn(ctx, groupID, id)
}

type mockSearch struct {
	keywordFn  func(ctx context.Context, p searchuc.KeywordParams) (*searchuc.KeywordResult, error)
	semanticFn func(ctx context.Context, query string, topK int) (*searchuc.SemanticResult, error)
}

func (m *mockSearch) Keyword(ctx context.Context, p searchuc.KeywordParams) (*searchuc.KeywordResult, error) {
	return m.keywordFn(ctx, p)
}

func (m *mockSearch) Semantic(ctx context.Context, query string, topK int) (*searchuc.SemanticResult, error) {
	return m.semanticFn(ctx, query, topK)
}

type mockAdmin struct {
	wipeFn func(ctx context.Context, groupID string, confirm bool) (*adminuc.WipeResult, error)
}

func (m *mockAdmin) Wipe(ctx context.Context, groupID string, confirm bool) (*adminuc.WipeResult, error) {
	return m.wipeFn(ctx, groupID, confirm)
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	return m.report
}

// --- Helpers ---

type testServer struct {
	ingredients *mockIngredients
	recipes     *mockRecipes
	suggestions *mockSuggestions
	search      *mockSearch
	admin       *mockAdmin
	health      *mockHealth
	handler     http.Handler
}

func newTestServer() *testServer {
	ts := &testServer{
		ingredients: &mockIngredients{},
		recipes:     &mockRecipes{},
		suggestions: &mockSuggestions{},
		search:      &mockSearch{},
		admin:       &mockAdmin{},
		health: &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		}},
	}
	srv := NewServer(
		ts.ingredients, ts.recipes, ts.suggestions,
		ts.search, ts.admin, ts.health,
		nil, zap.NewNop(),
	)
	ts.handler = srv.Routes()
	return ts
}

// post performs a JSON POST against the test router.
func (ts *testServer) post(t *testing.T, path, group string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	if group != "" {
		req.Header.Set(GroupIDHeader, group)
	}
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}
