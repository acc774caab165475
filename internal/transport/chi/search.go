package chi

import (
	"net/http"

	searchuc "github.com/ladle-cloud/ladle/internal/usecase/search"
)

type keywordSearchRequest struct {
	Query       string   `json:"query"`
	Ingredients []string `json:"ingredients"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
	Limit       int      `json:"limit"`
}

type keywordHitDTO struct {
	recipeDTO
	Score int `json:"score"`
}

type keywordSearchResponse struct {
	Items []keywordHitDTO `json:"items"`
	Total int             `json:"total"`
	Query string          `json:"query"`
}

func (s *Server) searchKeyword(w http.ResponseWriter, r *http.Request) {
	var req keywordSearchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := s.search.Keyword(r.Context(), searchuc.KeywordParams{
		Query:       req.Query,
		Ingredients: req.Ingredients,
		Tags:        req.Tags,
		Categories:  req.Categories,
		Limit:       req.Limit,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	caller := groupID(r)
	items := make([]keywordHitDTO, len(res.Items))
	for i, hit := range res.Items {
		items[i] = keywordHitDTO{
			recipeDTO: recipeToDTO(hit.Recipe, caller),
			Score:     hit.Score,
		}
	}

	writeJSON(w, http.StatusOK, keywordSearchResponse{
		Items: items,
		Total: res.Total,
		Query: req.Query,
	})
}

type semanticSearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"topK"`
}

type semanticHitDTO struct {
	recipeDTO
	Score float64 `json:"score"`
}

type semanticSearchResponse struct {
	Items []semanticHitDTO `json:"items"`
	Query string           `json:"query"`
	TopK  int              `json:"topK"`
}

func (s *Server) searchSemantic(w http.ResponseWriter, r *http.Request) {
	var req semanticSearchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := s.search.Semantic(r.Context(), req.Query, req.TopK)
	if err != nil {
		s.handleError(w, err)
		return
	}

	caller := groupID(r)
	items := make([]semanticHitDTO, len(res.Items))
	for i, hit := range res.Items {
		items[i] = semanticHitDTO{
			recipeDTO: recipeToDTO(hit.Recipe, caller),
			Score:     hit.Score,
		}
	}

	// TopK echoes the effective value after defaulting and clamping.
	writeJSON(w, http.StatusOK, semanticSearchResponse{
		Items: items,
		Query: req.Query,
		TopK:  res.TopK,
	})
}
