package search

import (
	"sort"

	"github.com/mealdex/mealdex/internal/domain/search/candidate"
)

// Fusion weights. Frozen: changing them changes every hybrid ranking, and raw
// ts_rank values are not on the similarity scale, so the weights also absorb
// the scale difference.
const (
	vectorWeight  = 0.7
	lexicalWeight = 0.3
)

// fused carries a recipe's combined score plus the raw per-signal components
// that produced it.
type fused struct {
	recipeID   string
	score      float64
	similarity *float64
	rank       *float64
}

// fuse merges the two candidate streams with a weighted additive union.
// Vector candidates enter with sim*0.7; lexical candidates add rank*0.3 to an
// existing entry or enter alone with rank*0.3. Each recipe appears at most
// once. Ordering is deterministic: score descending, then recipe ID ascending.
func fuse(vector, lexical []candidate.Candidate, limit int) []fused {
	merged := make(map[string]*fused, len(vector)+len(lexical))

	for _, c := range vector {
		sim := c.Score
		merged[c.RecipeID] = &fused{
			recipeID:   c.RecipeID,
			score:      sim * vectorWeight,
			similarity: &sim,
		}
	}

	for _, c := range lexical {
		rank := c.Score
		if f, ok := merged[c.RecipeID]; ok {
			f.score += rank * lexicalWeight
			f.rank = &rank
			continue
		}
		merged[c.RecipeID] = &fused{
			recipeID: c.RecipeID,
			score:    rank * lexicalWeight,
			rank:     &rank,
		}
	}

	out := make([]fused, 0, len(merged))
	for _, f := range merged {
		out = append(out, *f)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].recipeID < out[j].recipeID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
