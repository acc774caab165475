// Package chi implements the HTTP transport: every catalog operation is
// a POST with the full payload, id included, in a JSON body.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	doming "github.com/ladle-cloud/ladle/internal/domain/ingredient"
	domrec "github.com/ladle-cloud/ladle/internal/domain/recipe"
	domsug "github.com/ladle-cloud/ladle/internal/domain/suggestion"
	"github.com/ladle-cloud/ladle/internal/metrics"
	adminuc "github.com/ladle-cloud/ladle/internal/usecase/admin"
	healthuc "github.com/ladle-cloud/ladle/internal/usecase/health"
	ingredientuc "github.com/ladle-cloud/ladle/internal/usecase/ingredient"
	recipeuc "github.com/ladle-cloud/ladle/internal/usecase/recipe"
	searchuc "github.com/ladle-cloud/ladle/internal/usecase/search"
	suggestionuc "github.com/ladle-cloud/ladle/internal/usecase/suggestion"
)

// IngredientService is the ingredient use case surface the server needs.
type IngredientService interface {
	Create(ctx context.Context, groupID string, in *doming.Ingredient) (*doming.Ingredient, error)
	Get(ctx context.Context, id string) (*doming.Ingredient, error)
	Update(ctx context.Context, groupID, id string, p ingredientuc.UpdateParams) (*doming.Ingredient, error)
	Delete(ctx context.Context, groupID, id string) error
	List(ctx context.Context, offset, limit int) ([]*doming.Ingredient, bool, error)
	Duplicate(ctx context.Context, groupID, id string, ov ingredientuc.DuplicateOverrides) (*doming.Ingredient, error)
}

// RecipeService is the recipe use case surface the server needs.
type RecipeService interface {
	Create(ctx context.Context, groupID string, in *domrec.Recipe, generateImage bool) (*domrec.Recipe, error)
	Get(ctx context.Context, id string) (*domrec.Recipe, error)
	Update(ctx context.Context, groupID, id string, p recipeuc.UpdateParams) (*domrec.Recipe, error)
	Delete(ctx context.Context, groupID, id string) error
	List(ctx context.Context, offset, limit int) ([]*domrec.Recipe, bool, error)
	Duplicate(ctx context.Context, groupID, id string, ov recipeuc.DuplicateOverrides) (*domrec.Recipe, error)
}

// SuggestionService is the suggestion use case surface the server needs.
type SuggestionService interface {
	Create(ctx context.Context, groupID string, in *domsug.Suggestion) (*domsug.Suggestion, error)
	Get(ctx context.Context, id string) (*domsug.Suggestion, error)
	Update(ctx context.Context, groupID, id string, p suggestionuc.UpdateParams) (*domsug.Suggestion, error)
	Delete(ctx context.Context, groupID, id string) error
	List(ctx context.Context, offset, limit int) ([]*domsug.Suggestion, bool, error)
	Duplicate(ctx context.Context, groupID, id string, ov suggestionuc.DuplicateOverrides) (*domsug.Suggestion, error)
	Vote(ctx context.Context, groupID, id string) (*domsug.Suggestion, bool, error)
}

// SearchService is the search use case surface the server needs.
type SearchService interface {
	Keyword(ctx context.Context, p searchuc.KeywordParams) (*searchuc.KeywordResult, error)
	Semantic(ctx context.Context, query string, topK int) (*searchuc.SemanticResult, error)
}

// AdminService is the admin use case surface the server needs.
type AdminService interface {
	Wipe(ctx context.Context, groupID string, confirm bool) (*adminuc.WipeResult, error)
}

// HealthService is the health use case surface the server needs.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// Server is the catalog HTTP API.
type Server struct {
	ingredients IngredientService
	recipes     RecipeService
	suggestions SuggestionService
	search      SearchService
	admin       AdminService
	health      HealthService
	apiKeys     []string
	logger      *zap.Logger
}

// NewServer creates the HTTP API server. apiKeys empty disables auth.
func NewServer(
	ingredients IngredientService,
	recipes RecipeService,
	suggestions SuggestionService,
	search SearchService,
	admin AdminService,
	health HealthService,
	apiKeys []string,
	logger *zap.Logger,
) *Server {
	return &Server{
		ingredients: ingredients,
		recipes:     recipes,
		suggestions: suggestions,
		search:      search,
		admin:       admin,
		health:      health,
		apiKeys:     apiKeys,
		logger:      logger,
	}
}

// Routes builds the chi router with the full middleware chain.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(metrics.Middleware())
	r.Use(s.jsonRecoverer)
	r.Use(BearerAuthMiddleware(s.apiKeys))

	r.MethodNotAllowed(s.methodNotAllowed)
	r.NotFound(s.notFound)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/ingredients", func(r chi.Router) {
			r.Post("/create", s.ingredientsCreate)
			r.Post("/get", s.ingredientsGet)
			r.Post("/update", s.ingredientsUpdate)
			r.Post("/delete", s.ingredientsDelete)
			r.Post("/list", s.ingredientsList)
			r.Post("/duplicate", s.ingredientsDuplicate)
		})
		r.Route("/recipes", func(r chi.Router) {
			r.Post("/create", s.recipesCreate)
			r.Post("/get", s.recipesGet)
			r.Post("/update", s.recipesUpdate)
			r.Post("/delete", s.recipesDelete)
			r.Post("/list", s.recipesList)
			r.Post("/duplicate", s.recipesDuplicate)
		})
		r.Route("/suggestions", func(r chi.Router) {
			r.Post("/create", s.suggestionsCreate)
			r.Post("/get", s.suggestionsGet)
			r.Post("/update", s.suggestionsUpdate)
			r.Post("/delete", s.suggestionsDelete)
			r.Post("/list", s.suggestionsList)
			r.Post("/duplicate", s.suggestionsDuplicate)
			r.Post("/vote", s.suggestionsVote)
		})
		r.Route("/search", func(r chi.Router) {
			r.Post("/keyword", s.searchKeyword)
			r.Post("/semantic", s.searchSemantic)
		})
		r.Post("/admin/wipe", s.adminWipe)
	})

	return r
}

// handleHealth reports component health; anything short of fully
// healthy returns 503 so load balancers drain the instance.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, healthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

type healthResponse struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method "+r.Method+" is not allowed on "+r.URL.Path)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "no such endpoint: "+r.URL.Path)
}

// decode reads a JSON request body. An empty body decodes to the zero
// request so list-style endpoints work without one.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
