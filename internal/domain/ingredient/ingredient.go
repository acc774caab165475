// Package ingredient defines the Ingredient document and its validation.
package ingredient

import (
	"fmt"

	"github.com/ladle-cloud/ladle/internal/domain"
)

// Entity and operation names used in ownership errors.
const (
	EntityName  = "ingredient"
	DuplicateOp = "ingredientsDuplicate"
)

// Nutrition holds macro values per 100g.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// UnitConversion declares a factor between two supported units.
type UnitConversion struct {
	From   domain.Unit `json:"from"`
	To     domain.Unit `json:"to"`
	Factor float64     `json:"factor"`
}

// Ingredient is a catalog ingredient document. The id is the slugified
// name, unique among non-archived ingredients; Slug repeats the id so
// every collection indexes slugs the same way.
type Ingredient struct {
	domain.Envelope

	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	Aliases         []string          `json:"aliases"`
	Categories      []string          `json:"categories"`
	Allergens       []string          `json:"allergens"`
	Nutrition       *Nutrition        `json:"nutrition,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	SupportedUnits  []domain.Unit     `json:"supportedUnits,omitempty"`
	UnitConversions []UnitConversion  `json:"unitConversions,omitempty"`
	Embedding       []float32         `json:"embedding,omitempty"`
}

// Validate checks required fields and enum values.
func (i *Ingredient) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	for _, u := range i.SupportedUnits {
		if !u.Valid() {
			return fmt.Errorf("unsupported unit %q: %w", u, domain.ErrValidation)
		}
	}
	for _, c := range i.UnitConversions {
		if !c.From.Valid() || !c.To.Valid() {
			return fmt.Errorf("unit conversion %s->%s uses an unsupported unit: %w",
				c.From, c.To, domain.ErrValidation)
		}
		if c.Factor <= 0 {
			return fmt.Errorf("unit conversion %s->%s requires a positive factor: %w",
				c.From, c.To, domain.ErrValidation)
		}
	}
	return nil
}

// Normalize fills nil slices so stored documents always carry arrays.
func (i *Ingredient) Normalize() {
	if i.Aliases == nil {
		i.Aliases = []string{}
	}
	if i.Categories == nil {
		i.Categories = []string{}
	}
	if i.Allergens == nil {
		i.Allergens = []string{}
	}
}
