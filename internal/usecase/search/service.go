package search

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/ladle-cloud/ladle/internal/domain"
	domrec "github.com/ladle-cloud/ladle/internal/domain/recipe"
)

const (
	// Keyword result limits.
	DefaultLimit = 20
	MaxLimit     = 50

	// Semantic result limits.
	DefaultTopK = 8
	MaxTopK     = 50

	// scanPageSize bounds each page of the keyword candidate scan.
	scanPageSize = 500
)

// Config tunes search behavior.
type Config struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
	DefaultTopK  int `yaml:"default_top_k"`
	MaxTopK      int `yaml:"max_top_k"`
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.DefaultLimit <= 0 {
		out.DefaultLimit = DefaultLimit
	}
	if out.MaxLimit <= 0 {
		out.MaxLimit = MaxLimit
	}
	if out.DefaultTopK <= 0 {
		out.DefaultTopK = DefaultTopK
	}
	if out.MaxTopK <= 0 {
		out.MaxTopK = MaxTopK
	}
	return out
}

// Service answers keyword and semantic recipe searches. Keyword search
// scores candidates in memory; semantic search embeds the query and
// delegates to the vector index. A nil embedder or vector searcher
// disables semantic search.
type Service struct {
	recipes  RecipeSource
	vectors  VectorSearcher
	embedder Embedder
	cfg      Config
	logger   *zap.Logger
}

func New(recipes RecipeSource, vectors VectorSearcher, embedder Embedder, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		recipes:  recipes,
		vectors:  vectors,
		embedder: embedder,
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}
}

// KeywordParams narrows and ranks the keyword candidate set.
type KeywordParams struct {
	Query       string
	Ingredients []string
	Tags        []string
	Categories  []string
	Limit       int
}

// ScoredRecipe pairs a keyword hit with its occurrence score.
type ScoredRecipe struct {
	Recipe *domrec.Recipe
	Score  int
}

// KeywordResult is a ranked page of keyword hits. Total counts every
// match, not just the returned page.
type KeywordResult struct {
	Items []ScoredRecipe
	Total int
}

// Keyword ranks active recipes by term occurrence. Terms are OR'ed;
// the ingredient, tag and category filters are AND'ed with the query
// and with each other. Equal scores keep store order.
func (s *Service) Keyword(ctx context.Context, p KeywordParams) (*KeywordResult, error) {
	terms := queryTerms(p.Query)
	if len(terms) == 0 {
		return nil, fmt.Errorf("query is required: %w", domain.ErrValidation)
	}
	limit := s.clampLimit(p.Limit)

	candidates, err := s.recipes.ListAllActive(ctx, scanPageSize)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	matches := make([]ScoredRecipe, 0, len(candidates))
	for _, r := range candidates {
		score := keywordScore(r, terms)
		if score == 0 {
			continue
		}
		if !matchesIngredients(r, p.Ingredients) {
			continue
		}
		if !matchesAnyValue(r.Tags, p.Tags) {
			continue
		}
		if !matchesAnyValue(r.Categories, p.Categories) {
			continue
		}
		matches = append(matches, ScoredRecipe{Recipe: r, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	total := len(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	s.logger.Debug("Keyword search",
		zap.Int("terms", len(terms)),
		zap.Int("candidates", len(candidates)),
		zap.Int("total", total),
	)
	return &KeywordResult{Items: matches, Total: total}, nil
}

// SemanticHit pairs a vector hit with its similarity score.
type SemanticHit struct {
	Recipe *domrec.Recipe
	Score  float64
}

// SemanticResult holds the nearest hits plus the effective topK after
// defaulting and clamping, which is what responses echo back.
type SemanticResult struct {
	Items []SemanticHit
	TopK  int
}

// Semantic embeds the query and returns the nearest active recipes.
func (s *Service) Semantic(ctx context.Context, query string, topK int) (*SemanticResult, error) {
	if s.embedder == nil || s.vectors == nil {
		return nil, fmt.Errorf("semantic search is not enabled: %w", domain.ErrValidation)
	}
	if query == "" {
		return nil, fmt.Errorf("query is required: %w", domain.ErrValidation)
	}
	topK = s.clampTopK(topK)

	emb, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.vectors.KNN(ctx, emb.Embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	out := make([]SemanticHit, 0, len(hits))
	for _, h := range hits {
		out = append(out, SemanticHit{Recipe: h.Recipe, Score: h.Score})
	}
	return &SemanticResult{Items: out, TopK: topK}, nil
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return limit
}

func (s *Service) clampTopK(topK int) int {
	if topK <= 0 {
		return s.cfg.DefaultTopK
	}
	if topK > s.cfg.MaxTopK {
		return s.cfg.MaxTopK
	}
	return topK
}
