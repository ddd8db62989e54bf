// Package search implements recipe retrieval: the two underlying searchers
// are fused into a single ranking, results are hydrated with recipe fields,
// and provider failures degrade the mode instead of failing the request.
package search

import (
	"context"

	"github.com/mealdex/mealdex/internal/domain"
	"github.com/mealdex/mealdex/internal/domain/recipe"
	"github.com/mealdex/mealdex/internal/domain/search/candidate"
)

// Repository runs the underlying searchers (ISP - consumer defines interface).
type Repository interface {
	SearchVector(ctx context.Context, userID string, queryVec []float32, threshold float64, limit int) ([]candidate.Candidate, error)
	SearchText(ctx context.Context, userID, query string, limit int) ([]candidate.Candidate, error)
}

// RecipeReader hydrates ranked candidates with denormalized recipe fields.
type RecipeReader interface {
	GetByIDs(ctx context.Context, userID string, ids []string) (map[string]recipe.Recipe, error)
}

// Embedder turns query text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
