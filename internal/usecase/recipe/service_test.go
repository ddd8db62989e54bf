package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/mealdex/mealdex/internal/domain"
	domrecipe "github.com/mealdex/mealdex/internal/domain/recipe"
)

type mockStore struct {
	recipes    map[string]domrecipe.Recipe
	createErr  error
	updateErr  error
	embeddings []*domrecipe.Embedding
	embedErr   error
}

func newMockStore() *mockStore {
	return &mockStore{recipes: make(map[string]domrecipe.Recipe)}
}

func (m *mockStore) Create(ctx context.Context, rec *domrecipe.Recipe) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.recipes[rec.ID] = *rec
	return nil
}

func (m *mockStore) Update(ctx context.Context, rec *domrecipe.Recipe) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.recipes[rec.ID]; !ok {
		return domain.ErrRecipeNotFound
	}
	m.recipes[rec.ID] = *rec
	return nil
}

func (m *mockStore) Get(ctx context.Context, userID, id string) (domrecipe.Recipe, error) {
	rec, ok := m.recipes[id]
	if !ok || rec.UserID != userID {
		return domrecipe.Recipe{}, domain.ErrRecipeNotFound
	}
	return rec, nil
}

func (m *mockStore) List(ctx context.Context, userID, cursor string, limit int) ([]domrecipe.Recipe, string, error) {
	var out []domrecipe.Recipe
	for _, rec := range m.recipes {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, "", nil
}

func (m *mockStore) Delete(ctx context.Context, userID, id string) error {
	rec, ok := m.recipes[id]
	if !ok || rec.UserID != userID {
		return domain.ErrRecipeNotFound
	}
	delete(m.recipes, id)
	return nil
}

func (m *mockStore) ReplaceEmbedding(ctx context.Context, emb *domrecipe.Embedding) error {
	if m.embedErr != nil {
		return m.embedErr
	}
	m.embeddings = append(m.embeddings, emb)
	return nil
}

type mockEmbedder struct {
	vec   []float32
	err   error
	calls int
	texts []string
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	m.texts = append(m.texts, text)
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func validRecipe() domrecipe.Recipe {
	return domrecipe.Recipe{
		UserID:      "u1",
		Title:       "Chicken Soup",
		Description: "A warming classic",
		Ingredients: []domrecipe.Ingredient{
			{Name: "chicken", Quantity: "500", Unit: "g"},
			{Name: "carrot", Quantity: "2"},
		},
		Instructions: []string{"Simmer for an hour"},
		Difficulty:   domrecipe.DifficultyEasy,
	}
}

func TestCreate_AssignsIdentityAndEmbeds(t *testing.T) {
	store := newMockStore()
	emb := &mockEmbedder{vec: []float32{0.1, 0.2}}
	svc := NewService(store, emb)

	created, err := svc.Create(context.Background(), validRecipe())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.ID == "" {
		t.Error("expected a generated ID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if _, ok := store.recipes[created.ID]; !ok {
		t.Fatal("recipe was not stored")
	}

	if len(store.embeddings) != 1 {
		t.Fatalf("expected 1 embedding, got %d", len(store.embeddings))
	}
	stored := store.embeddings[0]
	if stored.RecipeID != created.ID {
		t.Errorf("embedding recipe ID = %s, expected %s", stored.RecipeID, created.ID)
	}
	if stored.Kind != domrecipe.KindFullRecipe {
		t.Errorf("embedding kind = %s", stored.Kind)
	}
	if stored.SourceText != created.SearchableText() {
		t.Error("embedding source text must be the searchable text")
	}
}

func TestCreate_EmbedFailureDoesNotFailCreate(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, &mockEmbedder{err: errors.New("provider down")})

	created, err := svc.Create(context.Background(), validRecipe())
	if err != nil {
		t.Fatalf("create must succeed without an embedding: %v", err)
	}
	if _, ok := store.recipes[created.ID]; !ok {
		t.Fatal("recipe was not stored")
	}
	if len(store.embeddings) != 0 {
		t.Error("no embedding should be stored when the provider fails")
	}
}

func TestCreate_ValidationRejected(t *testing.T) {
	svc := NewService(newMockStore(), &mockEmbedder{})

	rec := validRecipe()
	rec.Title = ""
	_, err := svc.Create(context.Background(), rec)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUpdate_ContentChangeReembeds(t *testing.T) {
	store := newMockStore()
	emb := &mockEmbedder{vec: []float32{0.1}}
	svc := NewService(store, emb)

	created, err := svc.Create(context.Background(), validRecipe())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if emb.calls != 1 {
		t.Fatalf("expected 1 embed call after create, got %d", emb.calls)
	}

	created.Description = "Now with more garlic"
	updated, err := svc.Update(context.Background(), created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if emb.calls != 2 {
		t.Errorf("content change must re-embed, got %d calls", emb.calls)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Error("update must preserve the original creation time")
	}
}

func TestUpdate_AttributeOnlyChangeSkipsEmbedding(t *testing.T) {
	store := newMockStore()
	emb := &mockEmbedder{vec: []float32{0.1}}
	svc := NewService(store, emb)

	created, err := svc.Create(context.Background(), validRecipe())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rating := 4.5
	created.Rating = &rating
	created.DietaryTags = []string{"gluten-free"}
	if _, err := svc.Update(context.Background(), created); err != nil {
		t.Fatalf("update: %v", err)
	}

	if emb.calls != 1 {
		t.Errorf("attribute-only update must not call the provider, got %d calls", emb.calls)
	}
}

func TestUpdate_UnknownRecipe(t *testing.T) {
	svc := NewService(newMockStore(), &mockEmbedder{})

	rec := validRecipe()
	rec.ID = "missing"
	_, err := svc.Update(context.Background(), rec)
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestUpdate_CrossUserDenied(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, &mockEmbedder{vec: []float32{0.1}})

	created, err := svc.Create(context.Background(), validRecipe())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.UserID = "intruder"
	_, err = svc.Update(context.Background(), created)
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("cross-user update must look like a missing recipe, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, &mockEmbedder{vec: []float32{0.1}})

	created, err := svc.Create(context.Background(), validRecipe())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), "u1", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "u1", created.ID); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("second delete should be not-found, got %v", err)
	}
}

func TestGet_RequiresUserID(t *testing.T) {
	svc := NewService(newMockStore(), &mockEmbedder{})

	if _, err := svc.Get(context.Background(), "", "some-id"); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}
