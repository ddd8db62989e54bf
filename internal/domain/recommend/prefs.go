// Package recommend holds the preference filter used by the recommendation
// path. Filtering is conjunctive and produces no relevance score; ordering is
// a static sort done by storage.
package recommend

import (
	"fmt"

	"github.com/mealdex/mealdex/internal/domain/recipe"
)

// DefaultLimit and MaxLimit bound the recommendation result size.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Prefs is a validated preference filter. Empty fields match everything;
// dietary tags match on any overlap with the recipe's tags.
type Prefs struct {
	userID      string
	cuisine     string
	difficulty  string
	dietaryTags []string
	limit       int
}

// New validates and normalizes a preference filter.
func New(userID, cuisine, difficulty string, dietaryTags []string, limit int) (Prefs, error) {
	if userID == "" {
		return Prefs{}, fmt.Errorf("user ID is required")
	}
	switch difficulty {
	case "", recipe.DifficultyEasy, recipe.DifficultyMedium, recipe.DifficultyHard:
	default:
		return Prefs{}, fmt.Errorf("difficulty must be easy, medium or hard, got %q", difficulty)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Prefs{
		userID:      userID,
		cuisine:     cuisine,
		difficulty:  difficulty,
		dietaryTags: dietaryTags,
		limit:       limit,
	}, nil
}

// UserID returns the scope identifier.
func (p *Prefs) UserID() string { return p.userID }

// Cuisine returns the cuisine filter ("" = any).
func (p *Prefs) Cuisine() string { return p.cuisine }

// Difficulty returns the difficulty filter ("" = any).
func (p *Prefs) Difficulty() string { return p.difficulty }

// DietaryTags returns the dietary tag filter (empty = any).
func (p *Prefs) DietaryTags() []string { return p.dietaryTags }

// Limit returns the maximum recipes to return.
func (p *Prefs) Limit() int { return p.limit }
