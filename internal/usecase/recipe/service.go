// Package recipe implements the recipe write path: CRUD with derived search
// artifacts. Saving a recipe also derives its searchable text and embedding;
// the embedding is best-effort, the recipe write is not.
package recipe

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mealdex/mealdex/internal/domain"
	domrecipe "github.com/mealdex/mealdex/internal/domain/recipe"
	"github.com/mealdex/mealdex/internal/logger"
)

// List pagination bounds.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// Store is the persistence surface the service needs (ISP).
type Store interface {
	Create(ctx context.Context, rec *domrecipe.Recipe) error
	Update(ctx context.Context, rec *domrecipe.Recipe) error
	Get(ctx context.Context, userID, id string) (domrecipe.Recipe, error)
	List(ctx context.Context, userID, cursor string, limit int) ([]domrecipe.Recipe, string, error)
	Delete(ctx context.Context, userID, id string) error
	ReplaceEmbedding(ctx context.Context, emb *domrecipe.Embedding) error
}

// Embedder turns recipe text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Service owns recipe writes and keeps the derived embedding in sync with the
// recipe content.
type Service struct {
	store    Store
	embedder Embedder
}

// NewService creates the recipe CRUD service.
func NewService(store Store, embedder Embedder) *Service {
	return &Service{store: store, embedder: embedder}
}

// Create validates and stores a new recipe, then embeds its searchable text.
// An embedding failure does not fail the create: the recipe is saved and will
// surface through lexical search until an embedding exists.
func (s *Service) Create(ctx context.Context, rec domrecipe.Recipe) (domrecipe.Recipe, error) {
	if err := rec.Validate(); err != nil {
		return domrecipe.Recipe{}, fmt.Errorf("%w: %s", domain.ErrInvalidRequest, err)
	}

	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if err := s.store.Create(ctx, &rec); err != nil {
		return domrecipe.Recipe{}, fmt.Errorf("create recipe: %w", err)
	}

	s.embedRecipe(ctx, &rec)
	return rec, nil
}

// Get returns a recipe scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, id string) (domrecipe.Recipe, error) {
	if userID == "" {
		return domrecipe.Recipe{}, fmt.Errorf("%w: user ID is required", domain.ErrInvalidRequest)
	}
	return s.store.Get(ctx, userID, id)
}

// List returns a page of the user's recipes and a cursor for the next page.
func (s *Service) List(ctx context.Context, userID, cursor string, limit int) ([]domrecipe.Recipe, string, error) {
	if userID == "" {
		return nil, "", fmt.Errorf("%w: user ID is required", domain.ErrInvalidRequest)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.store.List(ctx, userID, cursor, limit)
}

// Update replaces a recipe's caller-controlled fields. The embedding is
// regenerated only when content fields changed; attribute-only edits (rating,
// tags, timings) keep the stored embedding and skip the provider call.
func (s *Service) Update(ctx context.Context, rec domrecipe.Recipe) (domrecipe.Recipe, error) {
	if err := rec.Validate(); err != nil {
		return domrecipe.Recipe{}, fmt.Errorf("%w: %s", domain.ErrInvalidRequest, err)
	}

	existing, err := s.store.Get(ctx, rec.UserID, rec.ID)
	if err != nil {
		return domrecipe.Recipe{}, err
	}

	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, &rec); err != nil {
		return domrecipe.Recipe{}, fmt.Errorf("update recipe: %w", err)
	}

	if !rec.ContentEquals(&existing) {
		s.embedRecipe(ctx, &rec)
	}
	return rec, nil
}

// Delete removes a recipe; its embeddings go with it (cascade).
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return fmt.Errorf("%w: user ID is required", domain.ErrInvalidRequest)
	}
	return s.store.Delete(ctx, userID, id)
}

// embedRecipe derives and stores the recipe's embedding. Best-effort: a
// provider or storage failure is logged and the recipe stays without a vector.
func (s *Service) embedRecipe(ctx context.Context, rec *domrecipe.Recipe) {
	log := logger.FromContext(ctx).With(zap.String("recipe_id", rec.ID))

	text := rec.SearchableText()
	embRes, err := s.embedder.Embed(ctx, text)
	if err != nil {
		log.Warn("Embedding failed, recipe saved without vector", zap.Error(err))
		return
	}

	emb := &domrecipe.Embedding{
		RecipeID:   rec.ID,
		Kind:       domrecipe.KindFullRecipe,
		Vector:     embRes.Embedding,
		SourceText: text,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.ReplaceEmbedding(ctx, emb); err != nil {
		log.Warn("Storing embedding failed, recipe saved without vector", zap.Error(err))
	}
}
