package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"

	"github.com/mealdex/mealdex/internal/domain"
	domrecipe "github.com/mealdex/mealdex/internal/domain/recipe"
	"github.com/mealdex/mealdex/internal/domain/recommend"
)

// querier is the consumer interface over the pgx pool (ISP).
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repo stores recipes and their derived embeddings in Postgres.
type Repo struct {
	db querier
}

// New creates a recipe repository.
func New(db querier) *Repo {
	return &Repo{db: db}
}

const recipeColumns = `id, user_id, title, description, ingredients, instructions,
	prep_time_min, cook_time_min, servings, difficulty, cuisine, dietary_tags,
	rating, created_at, updated_at`

// Create inserts a recipe with its derived searchable text.
func (r *Repo) Create(ctx context.Context, rec *domrecipe.Recipe) error {
	ingredients, instructions, err := marshalContent(rec)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO recipes (id, user_id, title, description, ingredients, instructions,
			prep_time_min, cook_time_min, servings, difficulty, cuisine, dietary_tags,
			rating, searchable_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		rec.ID, rec.UserID, rec.Title, rec.Description, ingredients, instructions,
		rec.PrepTimeMin, rec.CookTimeMin, rec.Servings, rec.Difficulty, rec.Cuisine,
		rec.DietaryTags, rec.Rating, rec.SearchableText(), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recipe %s: %w", rec.ID, err)
	}
	return nil
}

// Update rewrites a recipe in place, scoped to its owner.
func (r *Repo) Update(ctx context.Context, rec *domrecipe.Recipe) error {
	ingredients, instructions, err := marshalContent(rec)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE recipes SET title = $3, description = $4, ingredients = $5,
			instructions = $6, prep_time_min = $7, cook_time_min = $8, servings = $9,
			difficulty = $10, cuisine = $11, dietary_tags = $12, rating = $13,
			searchable_text = $14, updated_at = $15
		WHERE id = $1 AND user_id = $2`,
		rec.ID, rec.UserID, rec.Title, rec.Description, ingredients, instructions,
		rec.PrepTimeMin, rec.CookTimeMin, rec.Servings, rec.Difficulty, rec.Cuisine,
		rec.DietaryTags, rec.Rating, rec.SearchableText(), rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update recipe %s: %w", rec.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// Get fetches one recipe within the caller's scope.
func (r *Repo) Get(ctx context.Context, userID, id string) (domrecipe.Recipe, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	rec, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domrecipe.Recipe{}, domain.ErrRecipeNotFound
		}
		return domrecipe.Recipe{}, fmt.Errorf("get recipe %s: %w", id, err)
	}
	return rec, nil
}

// GetByIDs hydrates search results: returns scoped recipes keyed by ID.
// IDs not owned by userID are silently absent from the map.
func (r *Repo) GetByIDs(ctx context.Context, userID string, ids []string) (map[string]domrecipe.Recipe, error) {
	if len(ids) == 0 {
		return map[string]domrecipe.Recipe{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE user_id = $1 AND id = ANY($2)`,
		userID, ids,
	)
	if err != nil {
		return nil, fmt.Errorf("get recipes by ids: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domrecipe.Recipe, len(ids))
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return out, nil
}

// List pages through a user's recipes by ID cursor.
func (r *Repo) List(ctx context.Context, userID, cursor string, limit int) ([]domrecipe.Recipe, string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+recipeColumns+` FROM recipes
		 WHERE user_id = $1 AND id > $2 ORDER BY id LIMIT $3`,
		userID, cursor, limit+1,
	)
	if err != nil {
		return nil, "", fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]domrecipe.Recipe, 0, limit)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, "", fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("iterate recipes: %w", err)
	}

	nextCursor := ""
	if len(recipes) > limit {
		recipes = recipes[:limit]
		nextCursor = recipes[len(recipes)-1].ID
	}
	return recipes, nextCursor, nil
}

// Delete removes a recipe; embeddings follow via ON DELETE CASCADE.
func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM recipes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete recipe %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// ListByPreferences filters a user's recipes conjunctively and applies the
// static recommendation sort: rating descending with unrated last, then
// recency descending.
func (r *Repo) ListByPreferences(ctx context.Context, prefs *recommend.Prefs) ([]domrecipe.Recipe, error) {
	tags := prefs.DietaryTags()
	if tags == nil {
		tags = []string{}
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+recipeColumns+` FROM recipes
		 WHERE user_id = $1
		   AND ($2 = '' OR cuisine = $2)
		   AND ($3 = '' OR difficulty = $3)
		   AND (cardinality($4::text[]) = 0 OR dietary_tags && $4::text[])
		 ORDER BY rating DESC NULLS LAST, created_at DESC
		 LIMIT $5`,
		prefs.UserID(), prefs.Cuisine(), prefs.Difficulty(), tags, prefs.Limit(),
	)
	if err != nil {
		return nil, fmt.Errorf("list by preferences: %w", err)
	}
	defer rows.Close()

	recipes := make([]domrecipe.Recipe, 0, prefs.Limit())
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return recipes, nil
}

// ReplaceEmbedding swaps the stored embedding of the given kind for a recipe.
// Regeneration is delete-then-insert so a recipe never carries two embeddings
// of the same kind.
func (r *Repo) ReplaceEmbedding(ctx context.Context, emb *domrecipe.Embedding) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM recipe_embeddings WHERE recipe_id = $1 AND kind = $2`,
		emb.RecipeID, emb.Kind,
	); err != nil {
		return fmt.Errorf("delete stale embedding: %w", err)
	}

	if _, err := r.db.Exec(ctx,
		`INSERT INTO recipe_embeddings (recipe_id, kind, embedding, source_text)
		 VALUES ($1, $2, $3, $4)`,
		emb.RecipeID, emb.Kind, pgvector.NewVector(emb.Vector), emb.SourceText,
	); err != nil {
		return fmt.Errorf("insert embedding for %s: %w", emb.RecipeID, err)
	}
	return nil
}

func marshalContent(rec *domrecipe.Recipe) (ingredients, instructions []byte, err error) {
	ings := rec.Ingredients
	if ings == nil {
		ings = []domrecipe.Ingredient{}
	}
	ingredients, err = json.Marshal(ings)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal ingredients: %w", err)
	}

	steps := rec.Instructions
	if steps == nil {
		steps = []string{}
	}
	instructions, err = json.Marshal(steps)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal instructions: %w", err)
	}
	return ingredients, instructions, nil
}

func scanRecipe(row pgx.Row) (domrecipe.Recipe, error) {
	var rec domrecipe.Recipe
	var ingredients, instructions []byte

	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Title, &rec.Description, &ingredients, &instructions,
		&rec.PrepTimeMin, &rec.CookTimeMin, &rec.Servings, &rec.Difficulty, &rec.Cuisine,
		&rec.DietaryTags, &rec.Rating, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return domrecipe.Recipe{}, err
	}

	if err := json.Unmarshal(ingredients, &rec.Ingredients); err != nil {
		return domrecipe.Recipe{}, fmt.Errorf("unmarshal ingredients: %w", err)
	}
	if err := json.Unmarshal(instructions, &rec.Instructions); err != nil {
		return domrecipe.Recipe{}, fmt.Errorf("unmarshal instructions: %w", err)
	}
	return rec, nil
}
