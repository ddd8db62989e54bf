package chi

import (
	"time"

	domrecipe "github.com/mealdex/mealdex/internal/domain/recipe"
	"github.com/mealdex/mealdex/internal/domain/search/result"
)

// Error codes returned in the {code, message} error body.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeRecipeNotFound   = "recipe_not_found"
	codeEmbeddingError   = "embedding_provider_error"
	codeUnauthorized     = "unauthorized"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type searchRequest struct {
	Query      string `json:"query"`
	UserID     string `json:"userId"`
	Limit      int    `json:"limit,omitempty"`
	SearchType string `json:"searchType,omitempty"`
}

type ingredientSearchRequest struct {
	Ingredients []string `json:"ingredients"`
	UserID      string   `json:"userId"`
	Limit       int      `json:"limit,omitempty"`
}

type recommendationsRequest struct {
	UserID      string   `json:"userId"`
	Cuisine     string   `json:"cuisine,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	DietaryTags []string `json:"dietaryTags,omitempty"`
	Limit       int      `json:"limit,omitempty"`
}

type ingredientPayload struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

type recipePayload struct {
	ID           string              `json:"id"`
	UserID       string              `json:"userId"`
	Title        string              `json:"title"`
	Description  string              `json:"description,omitempty"`
	Ingredients  []ingredientPayload `json:"ingredients,omitempty"`
	Instructions []string            `json:"instructions,omitempty"`
	PrepTimeMin  int                 `json:"prepTimeMinutes,omitempty"`
	CookTimeMin  int                 `json:"cookTimeMinutes,omitempty"`
	Servings     int                 `json:"servings,omitempty"`
	Difficulty   string              `json:"difficulty,omitempty"`
	Cuisine      string              `json:"cuisine,omitempty"`
	DietaryTags  []string            `json:"dietaryTags,omitempty"`
	Rating       *float64            `json:"rating,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

type searchResultItem struct {
	recipePayload
	Score           float64  `json:"score"`
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
	RankScore       *float64 `json:"rank_score,omitempty"`
}

type searchResponse struct {
	Results    []searchResultItem `json:"results"`
	Total      int                `json:"total"`
	SearchType string             `json:"searchType"`
	Query      string             `json:"query"`
}

type recommendationsResponse struct {
	Results []recipePayload `json:"results"`
	Total   int             `json:"total"`
}

type recipeListResponse struct {
	Recipes    []recipePayload `json:"recipes"`
	NextCursor string          `json:"nextCursor,omitempty"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func recipeToPayload(rec *domrecipe.Recipe) recipePayload {
	var ingredients []ingredientPayload
	if len(rec.Ingredients) > 0 {
		ingredients = make([]ingredientPayload, len(rec.Ingredients))
		for i, ing := range rec.Ingredients {
			ingredients[i] = ingredientPayload(ing)
		}
	}

	return recipePayload{
		ID:           rec.ID,
		UserID:       rec.UserID,
		Title:        rec.Title,
		Description:  rec.Description,
		Ingredients:  ingredients,
		Instructions: rec.Instructions,
		PrepTimeMin:  rec.PrepTimeMin,
		CookTimeMin:  rec.CookTimeMin,
		Servings:     rec.Servings,
		Difficulty:   rec.Difficulty,
		Cuisine:      rec.Cuisine,
		DietaryTags:  rec.DietaryTags,
		Rating:       rec.Rating,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func recipeFromPayload(p *recipePayload) domrecipe.Recipe {
	var ingredients []domrecipe.Ingredient
	if len(p.Ingredients) > 0 {
		ingredients = make([]domrecipe.Ingredient, len(p.Ingredients))
		for i, ing := range p.Ingredients {
			ingredients[i] = domrecipe.Ingredient(ing)
		}
	}

	return domrecipe.Recipe{
		ID:           p.ID,
		UserID:       p.UserID,
		Title:        p.Title,
		Description:  p.Description,
		Ingredients:  ingredients,
		Instructions: p.Instructions,
		PrepTimeMin:  p.PrepTimeMin,
		CookTimeMin:  p.CookTimeMin,
		Servings:     p.Servings,
		Difficulty:   p.Difficulty,
		Cuisine:      p.Cuisine,
		DietaryTags:  p.DietaryTags,
		Rating:       p.Rating,
	}
}

func searchResultToItem(res *result.Result) searchResultItem {
	rec := res.Recipe()
	return searchResultItem{
		recipePayload:   recipeToPayload(&rec),
		Score:           res.Score(),
		SimilarityScore: res.Similarity(),
		RankScore:       res.Rank(),
	}
}
