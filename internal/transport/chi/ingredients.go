package chi

import (
	"net/http"

	"github.com/ladle-cloud/ladle/internal/domain"
	doming "github.com/ladle-cloud/ladle/internal/domain/ingredient"
	ingredientuc "github.com/ladle-cloud/ladle/internal/usecase/ingredient"
)

type ingredientCreateRequest struct {
	Name            string                  `json:"name"`
	Aliases         []string                `json:"aliases"`
	Categories      []string                `json:"categories"`
	Allergens       []string                `json:"allergens"`
	Nutrition       *doming.Nutrition       `json:"nutrition"`
	Metadata        map[string]string       `json:"metadata"`
	SupportedUnits  []domain.Unit           `json:"supportedUnits"`
	UnitConversions []doming.UnitConversion `json:"unitConversions"`
}

func (s *Server) ingredientsCreate(w http.ResponseWriter, r *http.Request) {
	var req ingredientCreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	in := &doming.Ingredient{
		Name:            req.Name,
		Aliases:         req.Aliases,
		Categories:      req.Categories,
		Allergens:       req.Allergens,
		Nutrition:       req.Nutrition,
		Metadata:        req.Metadata,
		SupportedUnits:  req.SupportedUnits,
		UnitConversions: req.UnitConversions,
	}

	caller := groupID(r)
	doc, err := s.ingredients.Create(r.Context(), caller, in)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingredientToDTO(doc, caller))
}

func (s *Server) ingredientsGet(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	doc, err := s.ingredients.Get(r.Context(), req.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingredientToDTO(doc, groupID(r)))
}

type ingredientUpdateRequest struct {
	ID              string                   `json:"id"`
	Name            *string                  `json:"name"`
	Aliases         *[]string                `json:"aliases"`
	Categories      *[]string                `json:"categories"`
	Allergens       *[]string                `json:"allergens"`
	Nutrition       *doming.Nutrition        `json:"nutrition"`
	ClearNutrition  bool                     `json:"clearNutrition"`
	Metadata        *map[string]string       `json:"metadata"`
	SupportedUnits  *[]domain.Unit           `json:"supportedUnits"`
	UnitConversions *[]doming.UnitConversion `json:"unitConversions"`
}

func (s *Server) ingredientsUpdate(w http.ResponseWriter, r *http.Request) {
	var req ingredientUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	params := ingredientuc.UpdateParams{
		Name:            req.Name,
		Aliases:         req.Aliases,
		Categories:      req.Categories,
		Allergens:       req.Allergens,
		Nutrition:       req.Nutrition,
		ClearNutrition:  req.ClearNutrition,
		Metadata:        req.Metadata,
		SupportedUnits:  req.SupportedUnits,
		UnitConversions: req.UnitConversions,
	}

	caller := groupID(r)
	doc, err := s.ingredients.Update(r.Context(), caller, req.ID, params)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingredientToDTO(doc, caller))
}

func (s *Server) ingredientsDelete(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.ingredients.Delete(r.Context(), groupID(r), req.ID); err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "ingredient " + req.ID + " archived"})
}

func (s *Server) ingredientsList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	docs, hasMore, err := s.ingredients.List(r.Context(), req.Offset, req.Limit)
	if err != nil {
		s.handleError(w, err)
		return
	}

	caller := groupID(r)
	items := make([]ingredientDTO, len(docs))
	for i, d := range docs {
		items[i] = ingredientToDTO(d, caller)
	}

	writeJSON(w, http.StatusOK, listResponse[ingredientDTO]{Items: items, HasMore: hasMore})
}

type ingredientDuplicateRequest struct {
	ID              string                   `json:"id"`
	Name            *string                  `json:"name"`
	Aliases         *[]string                `json:"aliases"`
	Categories      *[]string                `json:"categories"`
	Allergens       *[]string                `json:"allergens"`
	Nutrition       *doming.Nutrition        `json:"nutrition"`
	ClearNutrition  bool                     `json:"clearNutrition"`
	Metadata        *map[string]string       `json:"metadata"`
	SupportedUnits  *[]domain.Unit           `json:"supportedUnits"`
	UnitConversions *[]doming.UnitConversion `json:"unitConversions"`
}

func (s *Server) ingredientsDuplicate(w http.ResponseWriter, r *http.Request) {
	var req ingredientDuplicateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	overrides := ingredientuc.DuplicateOverrides{
		Name:            req.Name,
		Aliases:         req.Aliases,
		Categories:      req.Categories,
		Allergens:       req.Allergens,
		Nutrition:       req.Nutrition,
		ClearNutrition:  req.ClearNutrition,
		Metadata:        req.Metadata,
		SupportedUnits:  req.SupportedUnits,
		UnitConversions: req.UnitConversions,
	}

	caller := groupID(r)
	doc, err := s.ingredients.Duplicate(r.Context(), caller, req.ID, overrides)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingredientToDTO(doc, caller))
}
