package chi

import (
	"time"

	"github.com/ladle-cloud/ladle/internal/domain"
	doming "github.com/ladle-cloud/ladle/internal/domain/ingredient"
	domrec "github.com/ladle-cloud/ladle/internal/domain/recipe"
	domsug "github.com/ladle-cloud/ladle/internal/domain/suggestion"
)

// envelopeDTO is the audit part of every entity response. Timestamps
// are RFC3339; canBeEditedByYou is computed against the caller's group.
type envelopeDTO struct {
	ID               string `json:"id"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
	CreatedByGroupID string `json:"createdByGroupId"`
	UpdatedByGroupID string `json:"updatedByGroupId"`
	VariantOf        string `json:"variantOf,omitempty"`
	CanBeEditedByYou bool   `json:"canBeEditedByYou"`
}

func envelopeToDTO(e domain.Envelope, callerGroup string) envelopeDTO {
	return envelopeDTO{
		ID:               e.ID,
		CreatedAt:        time.UnixMilli(e.CreatedAt).UTC().Format(time.RFC3339),
		UpdatedAt:        time.UnixMilli(e.UpdatedAt).UTC().Format(time.RFC3339),
		CreatedByGroupID: e.CreatedByGroupID,
		UpdatedByGroupID: e.UpdatedByGroupID,
		VariantOf:        e.VariantOf,
		CanBeEditedByYou: e.CanEdit(callerGroup),
	}
}

type ingredientDTO struct {
	envelopeDTO

	Name            string                  `json:"name"`
	Slug            string                  `json:"slug"`
	Aliases         []string                `json:"aliases"`
	Categories      []string                `json:"categories"`
	Allergens       []string                `json:"allergens"`
	Nutrition       *doming.Nutrition       `json:"nutrition,omitempty"`
	Metadata        map[string]string       `json:"metadata,omitempty"`
	SupportedUnits  []domain.Unit           `json:"supportedUnits,omitempty"`
	UnitConversions []doming.UnitConversion `json:"unitConversions,omitempty"`
}

func ingredientToDTO(i *doming.Ingredient, callerGroup string) ingredientDTO {
	return ingredientDTO{
		envelopeDTO:     envelopeToDTO(i.Envelope, callerGroup),
		Name:            i.Name,
		Slug:            i.Slug,
		Aliases:         i.Aliases,
		Categories:      i.Categories,
		Allergens:       i.Allergens,
		Nutrition:       i.Nutrition,
		Metadata:        i.Metadata,
		SupportedUnits:  i.SupportedUnits,
		UnitConversions: i.UnitConversions,
	}
}

type recipeDTO struct {
	envelopeDTO

	Name        string              `json:"name"`
	Description string              `json:"description"`
	Slug        string              `json:"slug"`
	Servings    int                 `json:"servings"`
	Ingredients []domrec.Ingredient `json:"ingredients"`
	Steps       []domrec.Step       `json:"steps"`
	Tags        []string            `json:"tags"`
	Categories  []string            `json:"categories"`
	SourceURL   string              `json:"sourceUrl,omitempty"`
	ImageURL    string              `json:"imageUrl,omitempty"`
}

func recipeToDTO(r *domrec.Recipe, callerGroup string) recipeDTO {
	return recipeDTO{
		envelopeDTO: envelopeToDTO(r.Envelope, callerGroup),
		Name:        r.Name,
		Description: r.Description,
		Slug:        r.Slug,
		Servings:    r.Servings,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		Tags:        r.Tags,
		Categories:  r.Categories,
		SourceURL:   r.SourceURL,
		ImageURL:    r.ImageURL,
	}
}

type suggestionDTO struct {
	envelopeDTO

	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Category        domsug.Category `json:"category"`
	Priority        domsug.Priority `json:"priority"`
	Status          domsug.Status   `json:"status"`
	Votes           int             `json:"votes"`
	VotedByGroups   []string        `json:"votedByGroups"`
	RelatedRecipeID string          `json:"relatedRecipeId,omitempty"`
}

func suggestionToDTO(s *domsug.Suggestion, callerGroup string) suggestionDTO {
	return suggestionDTO{
		envelopeDTO:     envelopeToDTO(s.Envelope, callerGroup),
		Title:           s.Title,
		Description:     s.Description,
		Category:        s.Category,
		Priority:        s.Priority,
		Status:          s.Status,
		Votes:           s.Votes,
		VotedByGroups:   s.VotedByGroups,
		RelatedRecipeID: s.RelatedRecipeID,
	}
}

// listResponse is the common list envelope.
type listResponse[T any] struct {
	Items   []T  `json:"items"`
	HasMore bool `json:"hasMore"`
}

// messageResponse acknowledges deletes.
type messageResponse struct {
	Message string `json:"message"`
}

// idRequest is the body of get/delete/vote style operations.
type idRequest struct {
	ID string `json:"id"`
}

// listRequest is the body of list operations.
type listRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
