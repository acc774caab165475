package ladle

// Unit is a measurement unit accepted by the catalog.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitCup        Unit = "cup"
	UnitPiece      Unit = "piece"
	UnitFreeText   Unit = "free_text"
)

// Envelope is the audit part of every catalog entity.
type Envelope struct {
	ID               string `json:"id"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
	CreatedByGroupID string `json:"createdByGroupId"`
	UpdatedByGroupID string `json:"updatedByGroupId"`
	VariantOf        string `json:"variantOf,omitempty"`
	CanBeEditedByYou bool   `json:"canBeEditedByYou"`
}

// Nutrition holds per-100g nutritional values.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// UnitConversion declares a factor between two supported units.
type UnitConversion struct {
	From   Unit    `json:"from"`
	To     Unit    `json:"to"`
	Factor float64 `json:"factor"`
}

// Ingredient is a catalog ingredient as returned by the API.
type Ingredient struct {
	Envelope

	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	Aliases         []string          `json:"aliases"`
	Categories      []string          `json:"categories"`
	Allergens       []string          `json:"allergens"`
	Nutrition       *Nutrition        `json:"nutrition,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	SupportedUnits  []Unit            `json:"supportedUnits,omitempty"`
	UnitConversions []UnitConversion  `json:"unitConversions,omitempty"`
}

// RecipeIngredient references a catalog ingredient inside a recipe.
type RecipeIngredient struct {
	IngredientID string   `json:"ingredientId"`
	Quantity     *float64 `json:"quantity,omitempty"`
	Unit         Unit     `json:"unit"`
	QuantityText string   `json:"quantityText,omitempty"`
	Note         string   `json:"note,omitempty"`
}

// Step is one ordered preparation step.
type Step struct {
	Text      string   `json:"text"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
}

// Recipe is a catalog recipe as returned by the API.
type Recipe struct {
	Envelope

	Name        string             `json:"name"`
	Description string             `json:"description"`
	Slug        string             `json:"slug"`
	Servings    int                `json:"servings"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Steps       []Step             `json:"steps"`
	Tags        []string           `json:"tags"`
	Categories  []string           `json:"categories"`
	SourceURL   string             `json:"sourceUrl,omitempty"`
	ImageURL    string             `json:"imageUrl,omitempty"`
}

// SuggestionCategory classifies a suggestion.
type SuggestionCategory string

const (
	CategoryFeature     SuggestionCategory = "feature"
	CategoryBug         SuggestionCategory = "bug"
	CategoryImprovement SuggestionCategory = "improvement"
	CategoryOther       SuggestionCategory = "other"
)

// SuggestionPriority ranks a suggestion.
type SuggestionPriority string

const (
	PriorityLow    SuggestionPriority = "low"
	PriorityMedium SuggestionPriority = "medium"
	PriorityHigh   SuggestionPriority = "high"
)

// SuggestionStatus tracks a suggestion through review.
type SuggestionStatus string

const (
	StatusSubmitted   SuggestionStatus = "submitted"
	StatusUnderReview SuggestionStatus = "under-review"
	StatusAccepted    SuggestionStatus = "accepted"
	StatusRejected    SuggestionStatus = "rejected"
	StatusImplemented SuggestionStatus = "implemented"
)

// Suggestion is a feature suggestion as returned by the API.
type Suggestion struct {
	Envelope

	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Category        SuggestionCategory `json:"category"`
	Priority        SuggestionPriority `json:"priority"`
	Status          SuggestionStatus   `json:"status"`
	Votes           int                `json:"votes"`
	VotedByGroups   []string           `json:"votedByGroups"`
	RelatedRecipeID string             `json:"relatedRecipeId,omitempty"`
}

// List is one page of entities plus a flag for further pages.
type List[T any] struct {
	Items   []T  `json:"items"`
	HasMore bool `json:"hasMore"`
}

// Page selects a window of a list operation. The zero value asks for
// the server's default page.
type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
