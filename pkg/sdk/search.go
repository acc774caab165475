package ladle

import "context"

// SearchService queries the recipe catalog.
type SearchService struct {
	c *Client
}

// KeywordQuery is a keyword search with optional filters. Filters are
// combined with AND; values within one filter with OR.
type KeywordQuery struct {
	Query       string   `json:"query"`
	Ingredients []string `json:"ingredients,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Limit       int      `json:"limit,omitempty"`
}

// KeywordHit is a recipe with its occurrence score.
type KeywordHit struct {
	Recipe
	Score int `json:"score"`
}

// KeywordResult is one page of keyword hits. Total counts every match,
// not just the returned page.
type KeywordResult struct {
	Items []KeywordHit `json:"items"`
	Total int          `json:"total"`
	Query string       `json:"query"`
}

// Keyword runs an occurrence-scored keyword search over active recipes.
func (s *SearchService) Keyword(ctx context.Context, q KeywordQuery) (KeywordResult, error) {
	var out KeywordResult
	err := s.c.post(ctx, "/api/v1/search/keyword", q, &out)
	return out, err
}

// SemanticQuery is a vector similarity search.
type SemanticQuery struct {
	Query string `json:"query"`
	TopK  int    `json:"topK,omitempty"`
}

// SemanticHit is a recipe with its similarity score.
type SemanticHit struct {
	Recipe
	Score float64 `json:"score"`
}

// SemanticResult holds the nearest recipes for a query.
type SemanticResult struct {
	Items []SemanticHit `json:"items"`
	Query string        `json:"query"`
	TopK  int           `json:"topK"`
}

// Semantic runs a vector search. Fails with a 400 when the server has
// embeddings disabled.
func (s *SearchService) Semantic(ctx context.Context, q SemanticQuery) (SemanticResult, error) {
	var out SemanticResult
	err := s.c.post(ctx, "/api/v1/search/semantic", q, &out)
	return out, err
}
