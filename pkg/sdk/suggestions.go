package ladle

import "context"

// SuggestionsService manages feature suggestions and their votes.
type SuggestionsService struct {
	c *Client
}

// SuggestionCreate is the payload for filing a suggestion.
type SuggestionCreate struct {
	Title           string             `json:"title"`
	Description     string             `json:"description,omitempty"`
	Category        SuggestionCategory `json:"category,omitempty"`
	Priority        SuggestionPriority `json:"priority,omitempty"`
	RelatedRecipeID string             `json:"relatedRecipeId,omitempty"`
}

// SuggestionPatch carries partial changes; nil fields keep the current
// value. Status transitions go through Update.
type SuggestionPatch struct {
	Title           *string             `json:"title,omitempty"`
	Description     *string             `json:"description,omitempty"`
	Category        *SuggestionCategory `json:"category,omitempty"`
	Priority        *SuggestionPriority `json:"priority,omitempty"`
	Status          *SuggestionStatus   `json:"status,omitempty"`
	RelatedRecipeID *string             `json:"relatedRecipeId,omitempty"`
}

type suggestionWriteRequest struct {
	ID string `json:"id"`
	SuggestionPatch
}

// VoteResult is a suggestion plus the caller's vote state after the
// toggle.
type VoteResult struct {
	Suggestion
	Voted bool `json:"voted"`
}

// Create files a new suggestion owned by the client's group.
func (s *SuggestionsService) Create(ctx context.Context, in SuggestionCreate) (Suggestion, error) {
	var out Suggestion
	err := s.c.post(ctx, "/api/v1/suggestions/create", in, &out)
	return out, err
}

// Get fetches one suggestion by id, archived ones excluded.
func (s *SuggestionsService) Get(ctx context.Context, id string) (Suggestion, error) {
	var out Suggestion
	err := s.c.post(ctx, "/api/v1/suggestions/get", idBody{ID: id}, &out)
	return out, err
}

// Update applies a partial change. Only the owning group may update.
func (s *SuggestionsService) Update(ctx context.Context, id string, patch SuggestionPatch) (Suggestion, error) {
	var out Suggestion
	err := s.c.post(ctx, "/api/v1/suggestions/update", suggestionWriteRequest{ID: id, SuggestionPatch: patch}, &out)
	return out, err
}

// Duplicate copies a suggestion into the client's group. The copy
// starts fresh: submitted, zero votes. Status cannot be overridden.
func (s *SuggestionsService) Duplicate(ctx context.Context, id string, overrides SuggestionPatch) (Suggestion, error) {
	overrides.Status = nil
	var out Suggestion
	err := s.c.post(ctx, "/api/v1/suggestions/duplicate", suggestionWriteRequest{ID: id, SuggestionPatch: overrides}, &out)
	return out, err
}

// Delete archives a suggestion. Only the owning group may delete.
func (s *SuggestionsService) Delete(ctx context.Context, id string) error {
	return s.c.post(ctx, "/api/v1/suggestions/delete", idBody{ID: id}, nil)
}

// List returns one page of active suggestions ranked by votes.
func (s *SuggestionsService) List(ctx context.Context, page Page) (List[Suggestion], error) {
	var out List[Suggestion]
	err := s.c.post(ctx, "/api/v1/suggestions/list", page, &out)
	return out, err
}

// Vote toggles the client group's vote on a suggestion.
func (s *SuggestionsService) Vote(ctx context.Context, id string) (VoteResult, error) {
	var out VoteResult
	err := s.c.post(ctx, "/api/v1/suggestions/vote", idBody{ID: id}, &out)
	return out, err
}
