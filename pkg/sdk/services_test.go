package mealdex

import (
	"context"
	"errors"
	"testing"

	domrecipe "github.com/mealdex/mealdex/internal/domain/recipe"
	domrecommend "github.com/mealdex/mealdex/internal/domain/recommend"
	"github.com/mealdex/mealdex/internal/domain/search/mode"
	"github.com/mealdex/mealdex/internal/domain/search/request"
	"github.com/mealdex/mealdex/internal/domain/search/result"
	healthuc "github.com/mealdex/mealdex/internal/usecase/health"
	searchuc "github.com/mealdex/mealdex/internal/usecase/search"
)

// --- Mocks ---

type mockSearchUC struct {
	resp    searchuc.Response
	err     error
	lastReq request.Request
}

func (m *mockSearchUC) Search(ctx context.Context, req request.Request) (searchuc.Response, error) {
	m.lastReq = req
	return m.resp, m.err
}

func (m *mockSearchUC) SearchByIngredients(ctx context.Context, userID string, names []string, limit int) (searchuc.Response, error) {
	return m.resp, m.err
}

type mockRecipeUC struct {
	recipe domrecipe.Recipe
	err    error
}

func (m *mockRecipeUC) Create(ctx context.Context, rec domrecipe.Recipe) (domrecipe.Recipe, error) {
	return m.recipe, m.err
}

func (m *mockRecipeUC) Get(ctx context.Context, userID, id string) (domrecipe.Recipe, error) {
	return m.recipe, m.err
}

func (m *mockRecipeUC) List(ctx context.Context, userID, cursor string, limit int) ([]domrecipe.Recipe, string, error) {
	return []domrecipe.Recipe{m.recipe}, "next", m.err
}

func (m *mockRecipeUC) Update(ctx context.Context, rec domrecipe.Recipe) (domrecipe.Recipe, error) {
	return m.recipe, m.err
}

func (m *mockRecipeUC) Delete(ctx context.Context, userID, id string) error {
	return m.err
}

type mockRecommendUC struct {
	recipes   []domrecipe.Recipe
	err       error
	lastPrefs domrecommend.Prefs
}

func (m *mockRecommendUC) Recommend(ctx context.Context, prefs domrecommend.Prefs) ([]domrecipe.Recipe, error) {
	m.lastPrefs = prefs
	return m.recipes, m.err
}

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.report
}

func newTestClient() (*Client, *mockSearchUC, *mockRecipeUC, *mockRecommendUC, *mockHealthUC) {
	search := &mockSearchUC{}
	recipes := &mockRecipeUC{}
	recommend := &mockRecommendUC{}
	health := &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
	}}
	c := &Client{
		searchSvc:    search,
		recipeSvc:    recipes,
		recommendSvc: recommend,
		healthSvc:    health,
	}
	return c, search, recipes, recommend, health
}

// --- Tests ---

func TestSearch_ConvertsResponse(t *testing.T) {
	c, search, _, _, _ := newTestClient()
	rec := domrecipe.Recipe{ID: "r1", UserID: "u1", Title: "Chicken Soup"}
	search.resp = searchuc.Response{
		Results:    []result.Result{result.New(rec, 0.645).WithSimilarity(0.75)},
		SearchType: mode.Hybrid,
	}

	resp, err := c.Search(context.Background(), SearchRequest{UserID: "u1", Query: "soup"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.SearchType != ModeHybrid {
		t.Errorf("SearchType = %s", resp.SearchType)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	hit := resp.Results[0]
	if hit.Recipe.ID != "r1" || hit.Score != 0.645 {
		t.Errorf("unexpected hit: %+v", hit)
	}
	if hit.Similarity == nil || *hit.Similarity != 0.75 {
		t.Error("expected similarity component")
	}
	if hit.Rank != nil {
		t.Error("no rank component expected")
	}

	if search.lastReq.Mode() != mode.Hybrid {
		t.Errorf("default mode = %s", search.lastReq.Mode())
	}
}

func TestSearch_InvalidRequest(t *testing.T) {
	c, _, _, _, _ := newTestClient()

	_, err := c.Search(context.Background(), SearchRequest{Query: "soup"})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for missing user ID, got %v", err)
	}
}

func TestCreateRecipe_RoundTrip(t *testing.T) {
	c, _, recipes, _, _ := newTestClient()
	recipes.recipe = domrecipe.Recipe{ID: "generated", UserID: "u1", Title: "Pad Thai"}

	created, err := c.CreateRecipe(context.Background(), Recipe{UserID: "u1", Title: "Pad Thai"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "generated" {
		t.Errorf("id = %s", created.ID)
	}
}

func TestGetRecipe_NotFound(t *testing.T) {
	c, _, recipes, _, _ := newTestClient()
	recipes.err = ErrRecipeNotFound

	_, err := c.GetRecipe(context.Background(), "u1", "missing")
	if !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestListRecipes_Pagination(t *testing.T) {
	c, _, recipes, _, _ := newTestClient()
	recipes.recipe = domrecipe.Recipe{ID: "r1", UserID: "u1", Title: "A"}

	page, err := c.ListRecipes(context.Background(), "u1", "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Recipes) != 1 || page.NextCursor != "next" {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestRecommend_ValidatesPrefs(t *testing.T) {
	c, _, _, _, _ := newTestClient()

	_, err := c.Recommend(context.Background(), "u1", Preferences{Difficulty: "nightmare"}, 10)
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestRecommend_ConvertsResults(t *testing.T) {
	c, _, _, recommend, _ := newTestClient()
	recommend.recipes = []domrecipe.Recipe{{ID: "r1", UserID: "u1", Cuisine: "thai"}}

	out, err := c.Recommend(context.Background(), "u1", Preferences{Cuisine: "thai"}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "r1" {
		t.Errorf("unexpected result: %+v", out)
	}
	if recommend.lastPrefs.Cuisine() != "thai" {
		t.Error("prefs must reach the use case")
	}
}

func TestHealth_ConvertsReport(t *testing.T) {
	c, _, _, _, health := newTestClient()
	health.report = healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{
			"database":  healthuc.CheckOK,
			"embedding": healthuc.CheckError,
		},
	}

	status := c.Health(context.Background())
	if status.Status != "degraded" {
		t.Errorf("status = %s", status.Status)
	}
	if status.Checks["embedding"] != "error" {
		t.Errorf("checks = %v", status.Checks)
	}
}
