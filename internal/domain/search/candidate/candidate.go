// Package candidate holds the ephemeral per-request output of a single
// underlying searcher, before fusion. Candidates are never persisted.
package candidate

// Candidate is one provisional hit from either the vector or the lexical
// searcher: a recipe identifier plus that searcher's raw score.
type Candidate struct {
	RecipeID string
	// Score is cosine similarity in [0,1] for vector candidates and a
	// non-negative ts_rank value for lexical candidates. The two scales are
	// deliberately not normalized; the fusion weights account for that.
	Score float64
}
