package search

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/mealdex/mealdex/internal/domain/search/candidate"
)

// querier is the consumer interface over the pgx pool (ISP).
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repo runs the two underlying searchers against Postgres. Both queries carry
// the user_id predicate, so no candidate can ever cross a scope boundary.
type Repo struct {
	db querier
}

// New creates a search repository.
func New(db querier) *Repo {
	return &Repo{db: db}
}

// SearchVector returns candidates ranked by cosine similarity to queryVec,
// best embedding per recipe, at or above threshold. Exact nearest-neighbor:
// pgvector's <=> is cosine distance, similarity = 1 - distance.
func (r *Repo) SearchVector(
	ctx context.Context, userID string, queryVec []float32, threshold float64, limit int,
) ([]candidate.Candidate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT rec.id, 1 - MIN(e.embedding <=> $1) AS similarity
		FROM recipe_embeddings e
		JOIN recipes rec ON rec.id = e.recipe_id
		WHERE rec.user_id = $2
		GROUP BY rec.id
		HAVING 1 - MIN(e.embedding <=> $1) >= $3
		ORDER BY similarity DESC, rec.id
		LIMIT $4`,
		pgvector.NewVector(queryVec), userID, threshold, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

// SearchText returns candidates ranked by ts_rank over the stored searchable
// text. Terms are ORed; a recipe matching no term is excluded by the @@
// predicate, so a zero rank never produces a candidate.
func (r *Repo) SearchText(
	ctx context.Context, userID, query string, limit int,
) ([]candidate.Candidate, error) {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, ts_rank(search_tsv, query)::float8 AS rank
		FROM recipes, to_tsquery('english', $2) query
		WHERE user_id = $1 AND search_tsv @@ query
		ORDER BY rank DESC, id
		LIMIT $3`,
		userID, buildTsquery(tokens), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func scanCandidates(rows pgx.Rows) ([]candidate.Candidate, error) {
	var out []candidate.Candidate
	for rows.Next() {
		var c candidate.Candidate
		if err := rows.Scan(&c.RecipeID, &c.Score); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return out, nil
}
