// Package recipe defines the Recipe document, its validation, and the pure
// array-delta update semantics.
package recipe

import (
	"fmt"

	"github.com/ladle-cloud/ladle/internal/domain"
)

// Entity and operation names used in ownership errors.
const (
	EntityName  = "recipe"
	DuplicateOp = "recipesDuplicate"
)

// Ingredient is one line of a recipe's ingredient list, referencing an
// ingredient document by id. With UnitFreeText, QuantityText is the
// authoritative amount and Quantity is ignored.
type Ingredient struct {
	IngredientID string      `json:"ingredientId"`
	Quantity     *float64    `json:"quantity,omitempty"`
	Unit         domain.Unit `json:"unit"`
	QuantityText string      `json:"quantityText,omitempty"`
	Note         string      `json:"note,omitempty"`
}

// Step is one ordered preparation step.
type Step struct {
	Text      string   `json:"text"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
}

// Recipe is a catalog recipe document. The id is an opaque generated id;
// Slug is the separate human-readable identifier, unique among
// non-archived recipes.
type Recipe struct {
	domain.Envelope

	Name        string       `json:"name"`
	Description string       `json:"description"`
	Slug        string       `json:"slug"`
	Servings    int          `json:"servings"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	Tags        []string     `json:"tags"`
	Categories  []string     `json:"categories"`
	SourceURL   string       `json:"sourceUrl,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Embedding   []float32    `json:"embedding,omitempty"`
}

// EmbeddingText is the text the recipe embedding is derived from.
func (r *Recipe) EmbeddingText() string {
	return r.Name + " " + r.Description
}

// Validate checks required fields and nested shapes.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if r.Description == "" {
		return fmt.Errorf("description is required: %w", domain.ErrValidation)
	}
	if r.Servings < 1 {
		return fmt.Errorf("servings must be at least 1: %w", domain.ErrValidation)
	}
	for idx, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return fmt.Errorf("ingredients[%d]: %w", idx, err)
		}
	}
	for idx, st := range r.Steps {
		if st.Text == "" {
			return fmt.Errorf("steps[%d]: text is required: %w", idx, domain.ErrValidation)
		}
	}
	return nil
}

// Validate checks a single ingredient line.
func (i *Ingredient) Validate() error {
	if i.IngredientID == "" {
		return fmt.Errorf("ingredientId is required: %w", domain.ErrValidation)
	}
	if !i.Unit.Valid() {
		return fmt.Errorf("unsupported unit %q: %w", i.Unit, domain.ErrValidation)
	}
	if i.Unit == domain.UnitFreeText && i.QuantityText == "" {
		return fmt.Errorf("quantityText is required with unit free_text: %w", domain.ErrValidation)
	}
	return nil
}

// Normalize fills nil slices so stored documents always carry arrays.
func (r *Recipe) Normalize() {
	if r.Ingredients == nil {
		r.Ingredients = []Ingredient{}
	}
	if r.Steps == nil {
		r.Steps = []Step{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if r.Categories == nil {
		r.Categories = []string{}
	}
}
