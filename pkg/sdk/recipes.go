package ladle

import "context"

// RecipesService manages catalog recipes.
type RecipesService struct {
	c *Client
}

// RecipeCreate is the payload for creating a recipe.
type RecipeCreate struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Servings    int                `json:"servings,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty"`
	Steps       []Step             `json:"steps,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	Categories  []string           `json:"categories,omitempty"`
	SourceURL   string             `json:"sourceUrl,omitempty"`

	// GenerateImage asks the server to produce a hero image. Ignored
	// when image generation is disabled server-side.
	GenerateImage bool `json:"generateImage,omitempty"`
}

// RecipePatch carries partial changes. Nil full-field values keep the
// current value; the Add/Remove fields apply array deltas instead. The
// server rejects a patch that replaces and deltas the same array.
type RecipePatch struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	Servings    *int                `json:"servings,omitempty"`
	Ingredients *[]RecipeIngredient `json:"ingredients,omitempty"`
	Steps       *[]Step             `json:"steps,omitempty"`
	Tags        *[]string           `json:"tags,omitempty"`
	Categories  *[]string           `json:"categories,omitempty"`
	SourceURL   *string             `json:"sourceUrl,omitempty"`

	AddTags           []string           `json:"addTags,omitempty"`
	RemoveTags        []string           `json:"removeTags,omitempty"`
	AddCategories     []string           `json:"addCategories,omitempty"`
	RemoveCategories  []string           `json:"removeCategories,omitempty"`
	UpsertIngredients []RecipeIngredient `json:"upsertIngredients,omitempty"`
	RemoveIngredients []string           `json:"removeIngredients,omitempty"`
	RemoveStepIndexes []int              `json:"removeStepIndexes,omitempty"`
	AddSteps          []Step             `json:"addSteps,omitempty"`

	RegenerateImage bool `json:"regenerateImage,omitempty"`
}

type recipeUpdateRequest struct {
	ID string `json:"id"`
	RecipePatch
}

// RecipeOverrides replaces fields on a duplicated recipe. Nil fields
// copy the source value.
type RecipeOverrides struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	Servings    *int                `json:"servings,omitempty"`
	Ingredients *[]RecipeIngredient `json:"ingredients,omitempty"`
	Steps       *[]Step             `json:"steps,omitempty"`
	Tags        *[]string           `json:"tags,omitempty"`
	Categories  *[]string           `json:"categories,omitempty"`
	SourceURL   *string             `json:"sourceUrl,omitempty"`
}

type recipeDuplicateRequest struct {
	ID string `json:"id"`
	RecipeOverrides
}

// Create registers a new recipe owned by the client's group.
func (s *RecipesService) Create(ctx context.Context, in RecipeCreate) (Recipe, error) {
	var out Recipe
	err := s.c.post(ctx, "/api/v1/recipes/create", in, &out)
	return out, err
}

// Get fetches one recipe by id, archived ones excluded.
func (s *RecipesService) Get(ctx context.Context, id string) (Recipe, error) {
	var out Recipe
	err := s.c.post(ctx, "/api/v1/recipes/get", idBody{ID: id}, &out)
	return out, err
}

// Update applies a partial change. Only the owning group may update.
func (s *RecipesService) Update(ctx context.Context, id string, patch RecipePatch) (Recipe, error) {
	var out Recipe
	err := s.c.post(ctx, "/api/v1/recipes/update", recipeUpdateRequest{ID: id, RecipePatch: patch}, &out)
	return out, err
}

// Duplicate copies a recipe into the client's group. The copy records
// its origin in VariantOf.
func (s *RecipesService) Duplicate(ctx context.Context, id string, overrides RecipeOverrides) (Recipe, error) {
	var out Recipe
	err := s.c.post(ctx, "/api/v1/recipes/duplicate", recipeDuplicateRequest{ID: id, RecipeOverrides: overrides}, &out)
	return out, err
}

// Delete archives a recipe. Only the owning group may delete.
func (s *RecipesService) Delete(ctx context.Context, id string) error {
	return s.c.post(ctx, "/api/v1/recipes/delete", idBody{ID: id}, nil)
}

// List returns one page of active recipes, newest first.
func (s *RecipesService) List(ctx context.Context, page Page) (List[Recipe], error) {
	var out List[Recipe]
	err := s.c.post(ctx, "/api/v1/recipes/list", page, &out)
	return out, err
}
