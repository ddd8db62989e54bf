package result

import (
	"github.com/mealdex/mealdex/internal/domain/recipe"
)

// Result is a single ranked search hit: the denormalized recipe plus one
// combined relevance score. The raw per-signal scores are kept so callers can
// see which signals produced the ranking.
type Result struct {
	recipe     recipe.Recipe
	score      float64
	similarity *float64
	rank       *float64
}

// New creates a search result with the combined score.
func New(r recipe.Recipe, score float64) Result {
	return Result{recipe: r, score: score}
}

// WithSimilarity returns a copy carrying the raw cosine similarity component.
func (r Result) WithSimilarity(s float64) Result {
	r.similarity = &s
	return r
}

// WithRank returns a copy carrying the raw lexical rank component.
func (r Result) WithRank(v float64) Result {
	r.rank = &v
	return r
}

// Recipe returns the denormalized recipe fields.
func (r *Result) Recipe() recipe.Recipe { return r.recipe }

// Score returns the combined relevance score used for ordering.
func (r *Result) Score() float64 { return r.score }

// Similarity returns the raw cosine similarity, or nil if the vector searcher
// did not produce this hit.
func (r *Result) Similarity() *float64 { return r.similarity }

// Rank returns the raw lexical rank score, or nil if the lexical searcher did
// not produce this hit.
func (r *Result) Rank() *float64 { return r.rank }
