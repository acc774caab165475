package chi

import (
	"net/http"

	domrec "github.com/ladle-cloud/ladle/internal/domain/recipe"
	recipeuc "github.com/ladle-cloud/ladle/internal/usecase/recipe"
)

type recipeCreateRequest struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Servings      int                 `json:"servings"`
	Ingredients   []domrec.Ingredient `json:"ingredients"`
	Steps         []domrec.Step       `json:"steps"`
	Tags          []string            `json:"tags"`
	Categories    []string            `json:"categories"`
	SourceURL     string              `json:"sourceUrl"`
	GenerateImage bool                `json:"generateImage"`
}

func (s *Server) recipesCreate(w http.ResponseWriter, r *http.Request) {
	var req recipeCreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	in := &domrec.Recipe{
		Name:        req.Name,
		Description: req.Description,
		Servings:    req.Servings,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		Tags:        req.Tags,
		Categories:  req.Categories,
		SourceURL:   req.SourceURL,
	}

	caller := groupID(r)
	doc, err := s.recipes.Create(r.Context(), caller, in, req.GenerateImage)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeToDTO(doc, caller))
}

func (s *Server) recipesGet(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	doc, err := s.recipes.Get(r.Context(), req.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeToDTO(doc, groupID(r)))
}

// recipeUpdateRequest carries full-field replacements, array deltas, or
// a mix; supplying both forms for the same array is a conflict.
type recipeUpdateRequest struct {
	ID          string               `json:"id"`
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Servings    *int                 `json:"servings"`
	Ingredients *[]domrec.Ingredient `json:"ingredients"`
	Steps       *[]domrec.Step       `json:"steps"`
	Tags        *[]string            `json:"tags"`
	Categories  *[]string            `json:"categories"`
	SourceURL   *string              `json:"sourceUrl"`

	AddTags           []string            `json:"addTags"`
	RemoveTags        []string            `json:"removeTags"`
	AddCategories     []string            `json:"addCategories"`
	RemoveCategories  []string            `json:"removeCategories"`
	UpsertIngredients []domrec.Ingredient `json:"upsertIngredients"`
	RemoveIngredients []string            `json:"removeIngredients"`
	RemoveStepIndexes []int               `json:"removeStepIndexes"`
	AddSteps          []domrec.Step       `json:"addSteps"`

	RegenerateImage bool `json:"regenerateImage"`
}

func (s *Server) recipesUpdate(w http.ResponseWriter, r *http.Request) {
	var req recipeUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	params := recipeuc.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Servings:    req.Servings,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		Tags:        req.Tags,
		Categories:  req.Categories,
		SourceURL:   req.SourceURL,
		Delta: domrec.Delta{
			AddTags:           req.AddTags,
			RemoveTags:        req.RemoveTags,
			AddCategories:     req.AddCategories,
			RemoveCats:        req.RemoveCategories,
			UpsertIngredients: req.UpsertIngredients,
			RemoveIngredients: req.RemoveIngredients,
			RemoveStepIndexes: req.RemoveStepIndexes,
			AddSteps:          req.AddSteps,
		},
		RegenerateImage: req.RegenerateImage,
	}

	caller := groupID(r)
	doc, err := s.recipes.Update(r.Context(), caller, req.ID, params)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeToDTO(doc, caller))
}

func (s *Server) recipesDelete(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.recipes.Delete(r.Context(), groupID(r), req.ID); err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "recipe " + req.ID + " archived"})
}

func (s *Server) recipesList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	docs, hasMore, err := s.recipes.List(r.Context(), req.Offset, req.Limit)
	if err != nil {
		s.handleError(w, err)
		return
	}

	caller := groupID(r)
	items := make([]recipeDTO, len(docs))
	for i, d := range docs {
		items[i] = recipeToDTO(d, caller)
	}

	writeJSON(w, http.StatusOK, listResponse[recipeDTO]{Items: items, HasMore: hasMore})
}

type recipeDuplicateRequest struct {
	ID          string               `json:"id"`
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Servings    *int                 `json:"servings"`
	Ingredients *[]domrec.Ingredient `json:"ingredients"`
	Steps       *[]domrec.Step       `json:"steps"`
	Tags        *[]string            `json:"tags"`
	Categories  *[]string            `json:"categories"`
	SourceURL   *string              `json:"sourceUrl"`
}

func (s *Server) recipesDuplicate(w http.ResponseWriter, r *http.Request) {
	var req recipeDuplicateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	overrides := recipeuc.DuplicateOverrides{
		Name:        req.Name,
		Description: req.Description,
		Servings:    req.Servings,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		Tags:        req.Tags,
		Categories:  req.Categories,
		SourceURL:   req.SourceURL,
	}

	caller := groupID(r)
	doc, err := s.recipes.Duplicate(r.Context(), caller, req.ID, overrides)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeToDTO(doc, caller))
}
