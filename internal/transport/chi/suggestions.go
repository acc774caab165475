package chi

import (
	"net/http"

	domsug "github.com/ladle-cloud/ladle/internal/domain/suggestion"
	suggestionuc "github.com/ladle-cloud/ladle/internal/usecase/suggestion"
)

type suggestionCreateRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Category        domsug.Category `json:"category"`
	Priority        domsug.Priority `json:"priority"`
	RelatedRecipeID string          `json:"relatedRecipeId"`
}

func (s *Server) suggestionsCreate(w http.ResponseWriter, r *http.Request) {
	var req suggestionCreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	in := &domsug.Suggestion{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Priority:        req.Priority,
		RelatedRecipeID: req.RelatedRecipeID,
	}

	caller := groupID(r)
	doc, err := s.suggestions.Create(r.Context(), caller, in)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionToDTO(doc, caller))
}

func (s *Server) suggestionsGet(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	doc, err := s.suggestions.Get(r.Context(), req.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionToDTO(doc, groupID(r)))
}

type suggestionUpdateRequest struct {
	ID              string           `json:"id"`
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	Category        *domsug.Category `json:"category"`
	Priority        *domsug.Priority `json:"priority"`
	Status          *domsug.Status   `json:"status"`
	RelatedRecipeID *string          `json:"relatedRecipeId"`
}

func (s *Server) suggestionsUpdate(w http.ResponseWriter, r *http.Request) {
	var req suggestionUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	params := suggestionuc.UpdateParams{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Priority:        req.Priority,
		Status:          req.Status,
		RelatedRecipeID: req.RelatedRecipeID,
	}

	caller := groupID(r)
	doc, err := s.suggestions.Update(r.Context(), caller, req.ID, params)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionToDTO(doc, caller))
}

func (s *Server) suggestionsDelete(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.suggestions.Delete(r.Context(), groupID(r), req.ID); err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "suggestion " + req.ID + " archived"})
}

func (s *Server) suggestionsList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	docs, hasMore, err := s.suggestions.List(r.Context(), req.Offset, req.Limit)
	if err != nil {
		s.handleError(w, err)
		return
	}

	caller := groupID(r)
	items := make([]suggestionDTO, len(docs))
	for i, d := range docs {
		items[i] = suggestionToDTO(d, caller)
	}

	writeJSON(w, http.StatusOK, listResponse[suggestionDTO]{Items: items, HasMore: hasMore})
}

type suggestionDuplicateRequest struct {
	ID              string           `json:"id"`
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	Category        *domsug.Category `json:"category"`
	Priority        *domsug.Priority `json:"priority"`
	RelatedRecipeID *string          `json:"relatedRecipeId"`
}

func (s *Server) suggestionsDuplicate(w http.ResponseWriter, r *http.Request) {
	var req suggestionDuplicateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	overrides := suggestionuc.DuplicateOverrides{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Priority:        req.Priority,
		RelatedRecipeID: req.RelatedRecipeID,
	}

	caller := groupID(r)
	doc, err := s.suggestions.Duplicate(r.Context(), caller, req.ID, overrides)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionToDTO(doc, caller))
}

// suggestionVoteResponse reports the document plus the caller's
// resulting membership in the voter set.
type suggestionVoteResponse struct {
	suggestionDTO
	Voted bool `json:"voted"`
}

func (s *Server) suggestionsVote(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	caller := groupID(r)
	doc, voted, err := s.suggestions.Vote(r.Context(), caller, req.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionVoteResponse{
		suggestionDTO: suggestionToDTO(doc, caller),
		Voted:         voted,
	})
}
