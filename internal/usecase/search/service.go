package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mealdex/mealdex/internal/domain/recipe"
	"github.com/mealdex/mealdex/internal/domain/search/candidate"
	"github.com/mealdex/mealdex/internal/domain/search/mode"
	"github.com/mealdex/mealdex/internal/domain/search/request"
	"github.com/mealdex/mealdex/internal/domain/search/result"
	"github.com/mealdex/mealdex/internal/logger"
	"github.com/mealdex/mealdex/internal/metrics"
)

// Response is a ranked, hydrated search outcome. SearchType reports the mode
// that actually produced the results, which differs from the requested mode
// when the request degraded.
type Response struct {
	Results    []result.Result
	SearchType mode.Mode
}

// Service is the retrieval facade: it dispatches on mode, degrades to lexical
// search when the embedding provider is unavailable, and hydrates the ranked
// candidates with recipe fields.
type Service struct {
	repo      Repository
	recipes   RecipeReader
	embedder  Embedder
	threshold float64
}

// NewService creates the retrieval facade. threshold is the minimum cosine
// similarity for vector candidates.
func NewService(repo Repository, recipes RecipeReader, embedder Embedder, threshold float64) *Service {
	return &Service{
		repo:      repo,
		recipes:   recipes,
		embedder:  embedder,
		threshold: threshold,
	}
}

// Search executes a search request. The embedding provider being down never
// fails a request: semantic and hybrid degrade to text mode. Lexical storage
// failure is fatal, there is nothing left to degrade to.
func (s *Service) Search(ctx context.Context, req request.Request) (Response, error) {
	start := time.Now()
	requested := req.Mode()

	resp, err := s.search(ctx, req)

	metrics.SearchDuration.WithLabelValues(string(requested)).Observe(time.Since(start).Seconds())
	switch {
	case err != nil:
		metrics.SearchRequestsTotal.WithLabelValues(string(requested), "error").Inc()
	case resp.SearchType != requested:
		metrics.SearchRequestsTotal.WithLabelValues(string(requested), "degraded").Inc()
	default:
		metrics.SearchRequestsTotal.WithLabelValues(string(requested), "ok").Inc()
	}

	return resp, err
}

func (s *Service) search(ctx context.Context, req request.Request) (Response, error) {
	switch req.Mode() {
	case mode.Text:
		return s.searchText(ctx, req)
	case mode.Semantic:
		return s.searchSemantic(ctx, req)
	default:
		return s.searchHybrid(ctx, req)
	}
}

func (s *Service) searchText(ctx context.Context, req request.Request) (Response, error) {
	cands, err := s.repo.SearchText(ctx, req.UserID(), req.Query(), req.Limit())
	if err != nil {
		return Response{}, fmt.Errorf("text search: %w", err)
	}

	results, err := s.hydrateCandidates(ctx, req.UserID(), cands, func(c candidate.Candidate, rec recipe.Recipe) result.Result {
		return result.New(rec, c.Score).WithRank(c.Score)
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Results: results, SearchType: mode.Text}, nil
}

func (s *Service) searchSemantic(ctx context.Context, req request.Request) (Response, error) {
	emb, err := s.embedder.Embed(ctx, req.Query())
	if err != nil {
		logger.FromContext(ctx).Warn("Embedding failed, degrading semantic search to text",
			zap.Error(err))
		return s.searchText(ctx, req)
	}

	cands, err := s.repo.SearchVector(ctx, req.UserID(), emb.Embedding, s.threshold, req.Limit())
	if err != nil {
		return Response{}, fmt.Errorf("vector search: %w", err)
	}

	results, err := s.hydrateCandidates(ctx, req.UserID(), cands, func(c candidate.Candidate, rec recipe.Recipe) result.Result {
		return result.New(rec, c.Score).WithSimilarity(c.Score)
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Results: results, SearchType: mode.Semantic}, nil
}

func (s *Service) searchHybrid(ctx context.Context, req request.Request) (Response, error) {
	emb, embErr := s.embedder.Embed(ctx, req.Query())
	if embErr != nil {
		logger.FromContext(ctx).Warn("Embedding failed, degrading hybrid search to text",
			zap.Error(embErr))
		return s.searchText(ctx, req)
	}

	var (
		vectorCands  []candidate.Candidate
		lexicalCands []candidate.Candidate
		vectorErr    error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Vector branch failure is non-fatal: lexical results flow alone.
		vectorCands, vectorErr = s.repo.SearchVector(gctx, req.UserID(), emb.Embedding, s.threshold, req.Limit())
		return nil
	})
	g.Go(func() error {
		var err error
		lexicalCands, err = s.repo.SearchText(gctx, req.UserID(), req.Query(), req.Limit())
		if err != nil {
			return fmt.Errorf("text search: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Response{}, err
	}

	searchType := mode.Hybrid
	if vectorErr != nil {
		logger.FromContext(ctx).Warn("Vector search failed, returning lexical results only",
			zap.Error(vectorErr))
		vectorCands = nil
		searchType = mode.Text
	}

	ranked := fuse(vectorCands, lexicalCands, req.Limit())

	results, err := s.hydrateFused(ctx, req.UserID(), ranked)
	if err != nil {
		return Response{}, err
	}
	return Response{Results: results, SearchType: searchType}, nil
}

// SearchByIngredients finds recipes containing any of the given ingredient
// names. The names are joined into one query and run through the lexical
// searcher, so matching behaves exactly like a text search for the same words.
func (s *Service) SearchByIngredients(ctx context.Context, userID string, names []string, limit int) (Response, error) {
	trimmed := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			trimmed = append(trimmed, n)
		}
	}
	if len(trimmed) == 0 {
		return Response{}, fmt.Errorf("at least one ingredient is required")
	}

	req, err := request.New(strings.Join(trimmed, " "), userID, mode.Text, limit)
	if err != nil {
		return Response{}, err
	}
	return s.Search(ctx, req)
}

// hydrateCandidates fetches recipe fields for single-searcher results in one
// scoped query, preserving candidate order. A recipe deleted between ranking
// and hydration is silently dropped.
func (s *Service) hydrateCandidates(
	ctx context.Context, userID string, cands []candidate.Candidate,
	build func(candidate.Candidate, recipe.Recipe) result.Result,
) ([]result.Result, error) {
	if len(cands) == 0 {
		return nil, nil
	}

	ids := make([]string, len(cands))
	for i, c := range cands {
		ids[i] = c.RecipeID
	}
	recipes, err := s.recipes.GetByIDs(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate results: %w", err)
	}

	results := make([]result.Result, 0, len(cands))
	for _, c := range cands {
		rec, ok := recipes[c.RecipeID]
		if !ok {
			continue
		}
		results = append(results, build(c, rec))
	}
	return results, nil
}

func (s *Service) hydrateFused(ctx context.Context, userID string, ranked []fused) ([]result.Result, error) {
	if len(ranked) == 0 {
		return nil, nil
	}

	ids := make([]string, len(ranked))
	for i, f := range ranked {
		ids[i] = f.recipeID
	}
	recipes, err := s.recipes.GetByIDs(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate results: %w", err)
	}

	results := make([]result.Result, 0, len(ranked))
	for _, f := range ranked {
		rec, ok := recipes[f.recipeID]
		if !ok {
			continue
		}
		res := result.New(rec, f.score)
		if f.similarity != nil {
			res = res.WithSimilarity(*f.similarity)
		}
		if f.rank != nil {
			res = res.WithRank(*f.rank)
		}
		results = append(results, res)
	}
	return results, nil
}
