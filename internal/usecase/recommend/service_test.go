package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/mealdex/mealdex/internal/domain/recipe"
	"github.com/mealdex/mealdex/internal/domain/recommend"
)

type mockLister struct {
	recipes   []recipe.Recipe
	err       error
	lastPrefs *recommend.Prefs
}

func (m *mockLister) ListByPreferences(ctx context.Context, prefs *recommend.Prefs) ([]recipe.Recipe, error) {
	m.lastPrefs = prefs
	return m.recipes, m.err
}

func TestRecommend_PassesPrefsThrough(t *testing.T) {
	lister := &mockLister{recipes: []recipe.Recipe{{ID: "r1", UserID: "u1"}}}
	svc := NewService(lister)

	prefs, err := recommend.New("u1", "italian", "easy", []string{"vegetarian"}, 5)
	if err != nil {
		t.Fatalf("prefs: %v", err)
	}

	out, err := svc.Recommend(context.Background(), prefs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "r1" {
		t.Errorf("unexpected result: %+v", out)
	}
	if lister.lastPrefs.UserID() != "u1" || lister.lastPrefs.Cuisine() != "italian" {
		t.Error("prefs must reach storage unchanged")
	}
}

func TestRecommend_StorageErrorPropagates(t *testing.T) {
	sentinel := errors.New("db down")
	svc := NewService(&mockLister{err: sentinel})

	prefs, err := recommend.New("u1", "", "", nil, 0)
	if err != nil {
		t.Fatalf("prefs: %v", err)
	}

	if _, err := svc.Recommend(context.Background(), prefs); !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped storage error, got %v", err)
	}
}

func TestRecommend_EmptyMatchIsNotAnError(t *testing.T) {
	svc := NewService(&mockLister{})

	prefs, err := recommend.New("u1", "thai", "", nil, 0)
	if err != nil {
		t.Fatalf("prefs: %v", err)
	}

	out, err := svc.Recommend(context.Background(), prefs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected no recipes, got %d", len(out))
	}
}
