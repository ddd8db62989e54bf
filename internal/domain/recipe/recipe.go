package recipe

import (
	"fmt"
	"strings"
	"time"
)

// MaxTitleLength bounds the recipe title size.
const MaxTitleLength = 512

// Difficulty tiers accepted for a recipe.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Ingredient is a single structured ingredient entry.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// Recipe is a user-owned recipe document. Exactly one owner; search never
// crosses owner boundaries.
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

// Validate checks the fields a caller controls. Identity and timestamps are
// assigned by the service layer.
func (r *Recipe) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("user ID is required")
	}
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(r.Title) > MaxTitleLength {
		return fmt.Errorf("title too long (max %d)", MaxTitleLength)
	}
	for i, ing := range r.Ingredients {
		if ing.Name == "" {
			return fmt.Errorf("ingredient %d: name is required", i)
		}
	}
	switch r.Difficulty {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("difficulty must be easy, medium or hard, got %q", r.Difficulty)
	}
	if r.Rating != nil && (*r.Rating < 0 || *r.Rating > 5) {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	return nil
}

// SearchableText flattens title, description, ingredient names, and
// instructions into the lexical search document. This exact text is also what
// gets embedded, so semantic and lexical search observe the same content.
func (r *Recipe) SearchableText() string {
	var b strings.Builder
	b.WriteString(r.Title)
	if r.Description != "" {
		b.WriteString("\n")
		b.WriteString(r.Description)
	}
	for _, ing := range r.Ingredients {
		b.WriteString("\n")
		b.WriteString(ing.Name)
	}
	for _, step := range r.Instructions {
		b.WriteString("\n")
		b.WriteString(step)
	}
	return b.String()
}

// ContentEquals reports whether the fields that feed SearchableText are
// unchanged between two revisions. Attribute-only edits keep the stored
// embedding valid.
func (r *Recipe) ContentEquals(other *Recipe) bool {
	if r.Title != other.Title || r.Description != other.Description {
		return false
	}
	if len(r.Ingredients) != len(other.Ingredients) {
		return false
	}
	for i := range r.Ingredients {
		if r.Ingredients[i] != other.Ingredients[i] {
			return false
		}
	}
	if len(r.Instructions) != len(other.Instructions) {
		return false
	}
	for i := range r.Instructions {
		if r.Instructions[i] != other.Instructions[i] {
			return false
		}
	}
	return true
}

// Embedding is a derived vector artifact for one recipe. A recipe may carry
// zero or more embeddings; zero means it is skipped by semantic search.
type Embedding struct {
	RecipeID   string
	Kind       string
	Vector     []float32
	SourceText string
	CreatedAt  time.Time
}

// KindFullRecipe is the default embedding strategy: the whole searchable text.
const KindFullRecipe = "full_recipe"
