// Package chi is the HTTP transport: JSON request/response mapping over the
// use case services, plus authentication and error translation.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mealdex/mealdex/internal/domain"
	domrecipe "github.com/mealdex/mealdex/internal/domain/recipe"
	"github.com/mealdex/mealdex/internal/domain/recommend"
	"github.com/mealdex/mealdex/internal/domain/search/mode"
	"github.com/mealdex/mealdex/internal/domain/search/request"
	healthuc "github.com/mealdex/mealdex/internal/usecase/health"
	searchuc "github.com/mealdex/mealdex/internal/usecase/search"
)

// Service interfaces are declared here, on the consumer side (ISP).

// SearchService executes search requests.
type SearchService interface {
	Search(ctx context.Context, req request.Request) (searchuc.Response, error)
	SearchByIngredients(ctx context.Context, userID string, names []string, limit int) (searchuc.Response, error)
}

// RecipeService owns the recipe write path.
type RecipeService interface {
	Create(ctx context.Context, rec domrecipe.Recipe) (domrecipe.Recipe, error)
	Get(ctx context.Context, userID, id string) (domrecipe.Recipe, error)
	List(ctx context.Context, userID, cursor string, limit int) ([]domrecipe.Recipe, string, error)
	Update(ctx context.Context, rec domrecipe.Recipe) (domrecipe.Recipe, error)
	Delete(ctx context.Context, userID, id string) error
}

// RecommendService resolves preference-based recommendations.
type RecommendService interface {
	Recommend(ctx context.Context, prefs recommend.Prefs) ([]domrecipe.Recipe, error)
}

// HealthService reports component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API server.
type Server struct {
	search        SearchService
	recipes       RecipeService
	recommend     RecommendService
	health        HealthService
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search SearchService,
	recipes RecipeService,
	recommend RecommendService,
	health HealthService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		recipes:   recipes,
		recommend: recommend,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrRecipeNotFound, http.StatusNotFound, codeRecipeNotFound),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingError),
		sentinelHandler(domain.ErrStorageUnavailable, http.StatusInternalServerError, codeInternalError),
	}
	return s
}

// Routes returns the route tree.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/search/ingredients", s.handleSearchByIngredients)
		r.Post("/recommendations", s.handleRecommendations)

		r.Route("/recipes", func(r chi.Router) {
			r.Post("/", s.handleCreateRecipe)
			r.Get("/", s.handleListRecipes)
			r.Get("/{id}", s.handleGetRecipe)
			r.Put("/{id}", s.handleUpdateRecipe)
			r.Delete("/{id}", s.handleDeleteRecipe)
		})
	})

	return r
}

// handleSearch handles POST /api/v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	domReq, err := request.New(req.Query, req.UserID, mode.Mode(req.SearchType), req.Limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), domReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseFrom(resp, req.Query))
}

// handleSearchByIngredients handles POST /api/v1/search/ingredients.
func (s *Server) handleSearchByIngredients(w http.ResponseWriter, r *http.Request) {
	var req ingredientSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "userId is required")
		return
	}
	if len(req.Ingredients) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "ingredients are required")
		return
	}

	resp, err := s.search.SearchByIngredients(r.Context(), req.UserID, req.Ingredients, req.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseFrom(resp, ""))
}

// handleRecommendations handles POST /api/v1/recommendations.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	prefs, err := recommend.New(req.UserID, req.Cuisine, req.Difficulty, req.DietaryTags, req.Limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	recipes, err := s.recommend.Recommend(r.Context(), prefs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]recipePayload, len(recipes))
	for i := range recipes {
		items[i] = recipeToPayload(&recipes[i])
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{Results: items, Total: len(items)})
}

// handleCreateRecipe handles POST /api/v1/recipes.
func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var payload recipePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := s.recipes.Create(r.Context(), recipeFromPayload(&payload))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, recipeToPayload(&created))
}

// handleGetRecipe handles GET /api/v1/recipes/{id}.
func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	rec, err := s.recipes.Get(r.Context(), r.URL.Query().Get("userId"), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipeToPayload(&rec))
}

// handleListRecipes handles GET /api/v1/recipes.
func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be an integer")
			return
		}
		limit = parsed
	}

	recipes, nextCursor, err := s.recipes.List(r.Context(), q.Get("userId"), q.Get("cursor"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]recipePayload, len(recipes))
	for i := range recipes {
		items[i] = recipeToPayload(&recipes[i])
	}
	writeJSON(w, http.StatusOK, recipeListResponse{Recipes: items, NextCursor: nextCursor})
}

// handleUpdateRecipe handles PUT /api/v1/recipes/{id}.
func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var payload recipePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	payload.ID = chi.URLParam(r, "id")

	updated, err := s.recipes.Update(r.Context(), recipeFromPayload(&payload))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeToPayload(&updated))
}

// handleDeleteRecipe handles DELETE /api/v1/recipes/{id}.
func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	err := s.recipes.Delete(r.Context(), r.URL.Query().Get("userId"), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func searchResponseFrom(resp searchuc.Response, query string) searchResponse {
	items := make([]searchResultItem, len(resp.Results))
	for i := range resp.Results {
		items[i] = searchResultToItem(&resp.Results[i])
	}
	return searchResponse{
		Results:    items,
		Total:      len(items),
		SearchType: string(resp.SearchType),
		Query:      query,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrRecipeNotFound,
		domain.ErrInvalidRequest,
		domain.ErrEmbeddingProviderError,
		domain.ErrStorageUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
