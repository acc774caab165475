package ladle

import "context"

// IngredientsService manages catalog ingredients.
type IngredientsService struct {
	c *Client
}

// IngredientCreate is the payload for creating an ingredient.
type IngredientCreate struct {
	Name            string            `json:"name"`
	Aliases         []string          `json:"aliases,omitempty"`
	Categories      []string          `json:"categories,omitempty"`
	Allergens       []string          `json:"allergens,omitempty"`
	Nutrition       *Nutrition        `json:"nutrition,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	SupportedUnits  []Unit            `json:"supportedUnits,omitempty"`
	UnitConversions []UnitConversion  `json:"unitConversions,omitempty"`
}

// IngredientPatch carries partial changes. Nil fields keep the current
// value; ClearNutrition removes nutrition entirely.
type IngredientPatch struct {
	Name            *string            `json:"name,omitempty"`
	Aliases         *[]string          `json:"aliases,omitempty"`
	Categories      *[]string          `json:"categories,omitempty"`
	Allergens       *[]string          `json:"allergens,omitempty"`
	Nutrition       *Nutrition         `json:"nutrition,omitempty"`
	ClearNutrition  bool               `json:"clearNutrition,omitempty"`
	Metadata        *map[string]string `json:"metadata,omitempty"`
	SupportedUnits  *[]Unit            `json:"supportedUnits,omitempty"`
	UnitConversions *[]UnitConversion  `json:"unitConversions,omitempty"`
}

type ingredientWriteRequest struct {
	ID string `json:"id"`
	IngredientPatch
}

// Create registers a new ingredient owned by the client's group.
func (s *IngredientsService) Create(ctx context.Context, in IngredientCreate) (Ingredient, error) {
	var out Ingredient
	err := s.c.post(ctx, "/api/v1/ingredients/create", in, &out)
	return out, err
}

// Get fetches one ingredient by id, archived ones excluded.
func (s *IngredientsService) Get(ctx context.Context, id string) (Ingredient, error) {
	var out Ingredient
	err := s.c.post(ctx, "/api/v1/ingredients/get", idBody{ID: id}, &out)
	return out, err
}

// Update applies a partial change. Only the owning group may update.
func (s *IngredientsService) Update(ctx context.Context, id string, patch IngredientPatch) (Ingredient, error) {
	var out Ingredient
	err := s.c.post(ctx, "/api/v1/ingredients/update", ingredientWriteRequest{ID: id, IngredientPatch: patch}, &out)
	return out, err
}

// Duplicate copies an ingredient into the client's group, applying the
// patch as overrides. The copy records its origin in VariantOf.
func (s *IngredientsService) Duplicate(ctx context.Context, id string, overrides IngredientPatch) (Ingredient, error) {
	var out Ingredient
	err := s.c.post(ctx, "/api/v1/ingredients/duplicate", ingredientWriteRequest{ID: id, IngredientPatch: overrides}, &out)
	return out, err
}

// Delete archives an ingredient. Only the owning group may delete.
func (s *IngredientsService) Delete(ctx context.Context, id string) error {
	return s.c.post(ctx, "/api/v1/ingredients/delete", idBody{ID: id}, nil)
}

// List returns one page of active ingredients.
func (s *IngredientsService) List(ctx context.Context, page Page) (List[Ingredient], error) {
	var out List[Ingredient]
	err := s.c.post(ctx, "/api/v1/ingredients/list", page, &out)
	return out, err
}

// idBody is the shared single-id request payload.
type idBody struct {
	ID string `json:"id"`
}
