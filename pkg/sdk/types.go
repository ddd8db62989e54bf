package mealdex

import (
	"time"

	domrecipe "github.com/mealdex/mealdex/internal/domain/recipe"
	"github.com/mealdex/mealdex/internal/domain/search/result"
)

// SearchMode controls the search algorithm.
type SearchMode string

// Search mode constants.
const (
	ModeHybrid   SearchMode = "hybrid"
	ModeSemantic SearchMode = "semantic"
	ModeText     SearchMode = "text"
)

// Difficulty tiers accepted for a recipe.
const (
	DifficultyEasy   = domrecipe.DifficultyEasy
	DifficultyMedium = domrecipe.DifficultyMedium
	DifficultyHard   = domrecipe.DifficultyHard
)

// Ingredient is a single structured ingredient entry.
type Ingredient struct {
	Name     string
	Quantity string
	Unit     string
}

// Recipe is a user-owned recipe document.
type Recipe struct {
	ID           string
	UserID       string
	Title        string
	Description  string
	Ingredients  []Ingredient
	Instructions []string
	PrepTimeMin  int
	CookTimeMin  int
	Servings     int
	Difficulty   string
	Cuisine      string
	DietaryTags  []string
	Rating       *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SearchRequest describes one search call. UserID and Query are required;
// Mode defaults to hybrid, Limit to 10.
type SearchRequest struct {
	UserID string
	Query  string
	Mode   SearchMode
	Limit  int
}

// SearchResult is a single ranked hit: the recipe plus its combined score.
// Similarity and Rank carry the raw per-signal components when the producing
// mode supplies them.
type SearchResult struct {
	Recipe     Recipe
	Score      float64
	Similarity *float64
	Rank       *float64
}

// SearchResponse is a ranked search outcome. SearchType reports the mode that
// actually produced the results; it degrades to "text" when the embedding
// provider was unavailable.
type SearchResponse struct {
	Results    []SearchResult
	SearchType SearchMode
}

// Preferences filters recommendations. Empty fields match everything;
// dietary tags match on any overlap.
type Preferences struct {
	Cuisine     string
	Difficulty  string
	DietaryTags []string
}

// RecipePage is a paginated recipe list.
type RecipePage struct {
	Recipes    []Recipe
	NextCursor string
}

func recipeToDomain(r *Recipe) domrecipe.Recipe {
	var ingredients []domrecipe.Ingredient
	if len(r.Ingredients) > 0 {
		ingredients = make([]domrecipe.Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			ingredients[i] = domrecipe.Ingredient(ing)
		}
	}
	return domrecipe.Recipe{
		ID:           r.ID,
		UserID:       r.UserID,
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  ingredients,
		Instructions: r.Instructions,
		PrepTimeMin:  r.PrepTimeMin,
		CookTimeMin:  r.CookTimeMin,
		Servings:     r.Servings,
		Difficulty:   r.Difficulty,
		Cuisine:      r.Cuisine,
		DietaryTags:  r.DietaryTags,
		Rating:       r.Rating,
	}
}

func recipeFromDomain(r *domrecipe.Recipe) Recipe {
	var ingredients []Ingredient
	if len(r.Ingredients) > 0 {
		ingredients = make([]Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			ingredients[i] = Ingredient(ing)
		}
	}
	return Recipe{
		ID:           r.ID,
		UserID:       r.UserID,
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  ingredients,
		Instructions: r.Instructions,
		PrepTimeMin:  r.PrepTimeMin,
		CookTimeMin:  r.CookTimeMin,
		Servings:     r.Servings,
		Difficulty:   r.Difficulty,
		Cuisine:      r.Cuisine,
		DietaryTags:  r.DietaryTags,
		Rating:       r.Rating,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func resultFromDomain(res *result.Result) SearchResult {
	rec := res.Recipe()
	return SearchResult{
		Recipe:     recipeFromDomain(&rec),
		Score:      res.Score(),
		Similarity: res.Similarity(),
		Rank:       res.Rank(),
	}
}
